package dashboard

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type DashboardRepository interface {
	CountLeadsByStatus(ctx context.Context, filter access.Filter) (map[string]int64, error)
	CountOpenDeals(ctx context.Context, filter access.Filter) (int64, float64, error)
	CountOpenTickets(ctx context.Context, filter access.Filter) (int64, error)
	CountActiveProjects(ctx context.Context, filter access.Filter) (int64, error)
	CountTasksDue(ctx context.Context, filter access.Filter) (int64, error)
	CountPendingApprovals(ctx context.Context) (int64, error)
}
