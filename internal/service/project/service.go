package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/project"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

type ProjectServiceImpl struct {
	db *database.DB
	project.ProjectRepository
}

func NewProjectService(db *database.DB, projectRepository project.ProjectRepository) project.ProjectService {
	return &ProjectServiceImpl{
		db:                db,
		ProjectRepository: projectRepository,
	}
}

// List implements project.ProjectService.
func (s *ProjectServiceImpl) List(ctx context.Context, scope access.Scope, query project.ListProjectsQuery) ([]project.ProjectResponse, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}

	base := access.NewFilter()
	if query.Status != nil {
		base = base.And("status = ?", *query.Status)
	}
	if query.Search != "" {
		base = base.And("name ILIKE ?", "%"+query.Search+"%")
	}
	filter := access.ScopeQuery(scope, access.CollectionProjects, base)

	projects, total, err := s.ProjectRepository.List(ctx, filter, query.Page, query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return project.ToResponses(projects), total, nil
}

// Get implements project.ProjectService.
func (s *ProjectServiceImpl) Get(ctx context.Context, scope access.Scope, id string) (project.ProjectResponse, error) {
	found, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return project.ProjectResponse{}, err
	}
	return project.ToResponse(found), nil
}

// Create implements project.ProjectService.
func (s *ProjectServiceImpl) Create(ctx context.Context, scope access.Scope, req project.CreateProjectRequest) (project.ProjectResponse, error) {
	assignedTo := scope.DefaultAssignee(req.AssignedTo)
	ownership := access.Ownership{
		AssignedTo:   assignedTo,
		TeamMembers:  req.TeamMembers,
		ContactEmail: req.ContactEmail,
	}
	if !scope.AllowsMutation(access.CollectionProjects, ownership) {
		return project.ProjectResponse{}, access.ErrOwnershipViolation
	}

	created, err := s.ProjectRepository.Create(ctx, project.Project{
		Name:         req.Name,
		Description:  req.Description,
		Status:       project.StatusPlanned,
		AccountID:    req.AccountID,
		ContactEmail: req.ContactEmail,
		TeamMembers:  req.TeamMembers,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		AssignedTo:   assignedTo,
		CreatedBy:    scope.UserID,
	})
	if err != nil {
		return project.ProjectResponse{}, fmt.Errorf("failed to create project: %w", err)
	}

	return project.ToResponse(created), nil
}

// Update implements project.ProjectService.
func (s *ProjectServiceImpl) Update(ctx context.Context, scope access.Scope, req project.UpdateProjectRequest) (project.ProjectResponse, error) {
	current, err := s.getScoped(ctx, scope, req.ID)
	if err != nil {
		return project.ProjectResponse{}, err
	}
	if !scope.AllowsMutation(access.CollectionProjects, ownershipOf(current)) {
		return project.ProjectResponse{}, access.ErrOwnershipViolation
	}

	updated, err := s.ProjectRepository.Update(ctx, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.ProjectResponse{}, project.ErrProjectNotFound
		}
		return project.ProjectResponse{}, fmt.Errorf("failed to update project: %w", err)
	}

	return project.ToResponse(updated), nil
}

// Delete implements project.ProjectService.
func (s *ProjectServiceImpl) Delete(ctx context.Context, scope access.Scope, id string) error {
	current, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return err
	}
	if !scope.AllowsMutation(access.CollectionProjects, ownershipOf(current)) {
		return access.ErrOwnershipViolation
	}

	return s.ProjectRepository.Delete(ctx, id)
}

func (s *ProjectServiceImpl) getScoped(ctx context.Context, scope access.Scope, id string) (project.Project, error) {
	filter := access.ScopeQuery(scope, access.CollectionProjects, access.NewFilter().And("id = ?", id))

	found, err := s.ProjectRepository.GetByID(ctx, filter)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, fmt.Errorf("failed to get project: %w", err)
	}
	return found, nil
}

func ownershipOf(p project.Project) access.Ownership {
	return access.Ownership{
		AssignedTo:   p.AssignedTo,
		TeamMembers:  p.TeamMembers,
		ContactEmail: p.ContactEmail,
	}
}
