package task

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type TaskRepository interface {
	List(ctx context.Context, filter access.Filter, page, limit int) ([]Task, int64, error)
	GetByID(ctx context.Context, filter access.Filter) (Task, error)
	Create(ctx context.Context, t Task) (Task, error)
	Update(ctx context.Context, req UpdateTaskRequest) (Task, error)
	Delete(ctx context.Context, id string) error
}
