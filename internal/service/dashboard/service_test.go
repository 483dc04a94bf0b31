package dashboard

import (
	"context"
	"testing"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardRepo struct {
	leadFilter      access.Filter
	approvalsQuery  bool
	pendingApproval int64
}

func (r *fakeDashboardRepo) CountLeadsByStatus(ctx context.Context, filter access.Filter) (map[string]int64, error) {
	r.leadFilter = filter
	return map[string]int64{"new": 3, "qualified": 1}, nil
}

func (r *fakeDashboardRepo) CountOpenDeals(ctx context.Context, filter access.Filter) (int64, float64, error) {
	return 2, 15000, nil
}

func (r *fakeDashboardRepo) CountOpenTickets(ctx context.Context, filter access.Filter) (int64, error) {
	return 5, nil
}

func (r *fakeDashboardRepo) CountActiveProjects(ctx context.Context, filter access.Filter) (int64, error) {
	return 1, nil
}

func (r *fakeDashboardRepo) CountTasksDue(ctx context.Context, filter access.Filter) (int64, error) {
	return 4, nil
}

func (r *fakeDashboardRepo) CountPendingApprovals(ctx context.Context) (int64, error) {
	r.approvalsQuery = true
	return r.pendingApproval, nil
}

func TestDashboardService_Summary_AdminSeesPendingApprovals(t *testing.T) {
	repo := &fakeDashboardRepo{pendingApproval: 7}
	service := NewDashboardService(nil, repo)

	scope := access.Scope{Role: user.RoleAdmin, UserID: "admin-1"}
	summary, err := service.Summary(context.Background(), scope)

	require.NoError(t, err)
	require.NotNil(t, summary.PendingApprovals)
	assert.Equal(t, int64(7), *summary.PendingApprovals)
	assert.Equal(t, int64(2), summary.OpenDeals)
	assert.Equal(t, float64(15000), summary.PipelineValue)
}

func TestDashboardService_Summary_NonAdminOmitsApprovals(t *testing.T) {
	repo := &fakeDashboardRepo{pendingApproval: 7}
	service := NewDashboardService(nil, repo)

	scope := access.Scope{Role: user.RoleSalesExecutive, UserID: "exec-1"}
	summary, err := service.Summary(context.Background(), scope)

	require.NoError(t, err)
	assert.Nil(t, summary.PendingApprovals)
	assert.False(t, repo.approvalsQuery)

	// The counts themselves are scoped like the list pages.
	clause, args := repo.leadFilter.Clause()
	assert.Equal(t, "WHERE assigned_to = $1", clause)
	assert.Equal(t, []any{"exec-1"}, args)
}
