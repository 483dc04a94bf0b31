package project

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type ProjectRepository interface {
	List(ctx context.Context, filter access.Filter, page, limit int) ([]Project, int64, error)
	GetByID(ctx context.Context, filter access.Filter) (Project, error)
	Create(ctx context.Context, p Project) (Project, error)
	Update(ctx context.Context, req UpdateProjectRequest) (Project, error)
	Delete(ctx context.Context, id string) error
}
