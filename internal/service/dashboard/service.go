package dashboard

import (
	"context"
	"fmt"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/dashboard"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

type DashboardServiceImpl struct {
	db *database.DB
	dashboard.DashboardRepository
}

func NewDashboardService(db *database.DB, dashboardRepository dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		db:                  db,
		DashboardRepository: dashboardRepository,
	}
}

// Summary implements dashboard.DashboardService. Every count runs through
// the caller's ownership scope, so the snapshot matches what the list pages
// would show them.
func (s *DashboardServiceImpl) Summary(ctx context.Context, scope access.Scope) (dashboard.Summary, error) {
	var summary dashboard.Summary
	var err error

	summary.LeadsByStatus, err = s.DashboardRepository.CountLeadsByStatus(ctx,
		access.ScopeQuery(scope, access.CollectionLeads, access.NewFilter()))
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to count leads: %w", err)
	}
	if summary.LeadsByStatus == nil {
		summary.LeadsByStatus = map[string]int64{}
	}

	summary.OpenDeals, summary.PipelineValue, err = s.DashboardRepository.CountOpenDeals(ctx,
		access.ScopeQuery(scope, access.CollectionDeals, access.NewFilter()))
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to count deals: %w", err)
	}

	summary.OpenTickets, err = s.DashboardRepository.CountOpenTickets(ctx,
		access.ScopeQuery(scope, access.CollectionTickets, access.NewFilter()))
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to count tickets: %w", err)
	}

	summary.ActiveProjects, err = s.DashboardRepository.CountActiveProjects(ctx,
		access.ScopeQuery(scope, access.CollectionProjects, access.NewFilter()))
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to count projects: %w", err)
	}

	summary.TasksDue, err = s.DashboardRepository.CountTasksDue(ctx,
		access.ScopeQuery(scope, access.CollectionTasks, access.NewFilter()))
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to count tasks: %w", err)
	}

	if scope.Role == user.RoleAdmin || scope.Role == user.RoleSuperAdmin {
		pending, err := s.DashboardRepository.CountPendingApprovals(ctx)
		if err != nil {
			return dashboard.Summary{}, fmt.Errorf("failed to count pending approvals: %w", err)
		}
		summary.PendingApprovals = &pending
	}

	return summary, nil
}
