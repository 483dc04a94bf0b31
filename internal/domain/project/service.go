package project

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type ProjectService interface {
	List(ctx context.Context, scope access.Scope, query ListProjectsQuery) ([]ProjectResponse, int64, error)
	Get(ctx context.Context, scope access.Scope, id string) (ProjectResponse, error)
	Create(ctx context.Context, scope access.Scope, req CreateProjectRequest) (ProjectResponse, error)
	Update(ctx context.Context, scope access.Scope, req UpdateProjectRequest) (ProjectResponse, error)
	Delete(ctx context.Context, scope access.Scope, id string) error
}
