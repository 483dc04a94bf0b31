package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/task"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

type TaskServiceImpl struct {
	db *database.DB
	task.TaskRepository
}

func NewTaskService(db *database.DB, taskRepository task.TaskRepository) task.TaskService {
	return &TaskServiceImpl{
		db:             db,
		TaskRepository: taskRepository,
	}
}

// List implements task.TaskService.
func (s *TaskServiceImpl) List(ctx context.Context, scope access.Scope, query task.ListTasksQuery) ([]task.TaskResponse, int64, error) {
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
		base = base.And("title ILIKE ?", "%"+query.Search+"%")
	}
	filter := access.ScopeQuery(scope, access.CollectionTasks, base)

	tasks, total, err := s.TaskRepository.List(ctx, filter, query.Page, query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return task.ToResponses(tasks), total, nil
}

// Get implements task.TaskService.
func (s *TaskServiceImpl) Get(ctx context.Context, scope access.Scope, id string) (task.TaskResponse, error) {
	found, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.ToResponse(found), nil
}

// Create implements task.TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, scope access.Scope, req task.CreateTaskRequest) (task.TaskResponse, error) {
	assignedTo := scope.DefaultAssignee(req.AssignedTo)
	if !scope.AllowsMutation(access.CollectionTasks, access.Ownership{AssignedTo: assignedTo}) {
		return task.TaskResponse{}, access.ErrOwnershipViolation
	}

	created, err := s.TaskRepository.Create(ctx, task.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      task.StatusTodo,
		DueDate:     req.DueDate,
		RelatedType: req.RelatedType,
		RelatedID:   req.RelatedID,
		AssignedTo:  assignedTo,
		CreatedBy:   scope.UserID,
	})
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to create task: %w", err)
	}

	return task.ToResponse(created), nil
}

// Update implements task.TaskService.
func (s *TaskServiceImpl) Update(ctx context.Context, scope access.Scope, req task.UpdateTaskRequest) (task.TaskResponse, error) {
	current, err := s.getScoped(ctx, scope, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}
	if !scope.AllowsMutation(access.CollectionTasks, access.Ownership{AssignedTo: current.AssignedTo}) {
		return task.TaskResponse{}, access.ErrOwnershipViolation
	}

	updated, err := s.TaskRepository.Update(ctx, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.TaskResponse{}, task.ErrTaskNotFound
		}
		return task.TaskResponse{}, fmt.Errorf("failed to update task: %w", err)
	}

	return task.ToResponse(updated), nil
}

// Delete implements task.TaskService.
func (s *TaskServiceImpl) Delete(ctx context.Context, scope access.Scope, id string) error {
	current, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return err
	}
	if !scope.AllowsMutation(access.CollectionTasks, access.Ownership{AssignedTo: current.AssignedTo}) {
		return access.ErrOwnershipViolation
	}

	return s.TaskRepository.Delete(ctx, id)
}

func (s *TaskServiceImpl) getScoped(ctx context.Context, scope access.Scope, id string) (task.Task, error) {
	filter := access.ScopeQuery(scope, access.CollectionTasks, access.NewFilter().And("id = ?", id))

	found, err := s.TaskRepository.GetByID(ctx, filter)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return found, nil
}
