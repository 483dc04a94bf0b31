package dashboard

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type DashboardService interface {
	Summary(ctx context.Context, scope access.Scope) (Summary, error)
}
