package task

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type TaskService interface {
	List(ctx context.Context, scope access.Scope, query ListTasksQuery) ([]TaskResponse, int64, error)
	Get(ctx context.Context, scope access.Scope, id string) (TaskResponse, error)
	Create(ctx context.Context, scope access.Scope, req CreateTaskRequest) (TaskResponse, error)
	Update(ctx context.Context, scope access.Scope, req UpdateTaskRequest) (TaskResponse, error)
	Delete(ctx context.Context, scope access.Scope, id string) error
}
