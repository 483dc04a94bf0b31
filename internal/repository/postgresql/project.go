package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/project"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

const projectColumns = `id, name, description, status, account_id, contact_email, team_members,
	start_date, end_date, assigned_to, created_by, created_at, updated_at`

type projectRepositoryImpl struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

func scanProject(row interface{ Scan(dest ...any) error }) (project.Project, error) {
	var p project.Project
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Status,
		&p.AccountID,
		&p.ContactEmail,
		&p.TeamMembers,
		&p.StartDate,
		&p.EndDate,
		&p.AssignedTo,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// List implements project.ProjectRepository.
func (r *projectRepositoryImpl) List(ctx context.Context, filter access.Filter, page, limit int) ([]project.Project, int64, error) {
	q := GetQuerier(ctx, r.db)

	clause, args := filter.Clause()

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM projects `+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := filter.Len()
	listQuery := fmt.Sprintf(
		`SELECT `+projectColumns+` FROM projects %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		clause, n+1, n+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// GetByID implements project.ProjectRepository.
func (r *projectRepositoryImpl) GetByID(ctx context.Context, filter access.Filter) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	clause, args := filter.Clause()
	query := `SELECT ` + projectColumns + ` FROM projects ` + clause

	return scanProject(q.QueryRow(ctx, query, args...))
}

// Create implements project.ProjectRepository.
func (r *projectRepositoryImpl) Create(ctx context.Context, p project.Project) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.TeamMembers == nil {
		p.TeamMembers = []string{}
	}

	query := `
		INSERT INTO projects (id, name, description, status, account_id, contact_email,
			team_members, start_date, end_date, assigned_to, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + projectColumns

	return scanProject(q.QueryRow(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Status,
		p.AccountID,
		p.ContactEmail,
		p.TeamMembers,
		p.StartDate,
		p.EndDate,
		p.AssignedTo,
		p.CreatedBy,
	))
}

// Update implements project.ProjectRepository.
func (r *projectRepositoryImpl) Update(ctx context.Context, req project.UpdateProjectRequest) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE projects
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			status = COALESCE($3, status),
			account_id = COALESCE($4, account_id),
			contact_email = COALESCE($5, contact_email),
			team_members = COALESCE($6, team_members),
			start_date = COALESCE($7, start_date),
			end_date = COALESCE($8, end_date),
			assigned_to = COALESCE($9, assigned_to),
			updated_at = NOW()
		WHERE id = $10
		RETURNING ` + projectColumns

	var membersArg any
	if req.TeamMembers != nil {
		members := *req.TeamMembers
		if members == nil {
			members = []string{}
		}
		membersArg = members
	}

	return scanProject(q.QueryRow(ctx, query,
		req.Name,
		req.Description,
		req.Status,
		req.AccountID,
		req.ContactEmail,
		membersArg,
		req.StartDate,
		req.EndDate,
		req.AssignedTo,
		req.ID,
	))
}

// Delete implements project.ProjectRepository.
func (r *projectRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return project.ErrProjectNotFound
	}
	return nil
}
