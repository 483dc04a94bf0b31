package postgresql

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/dashboard"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountLeadsByStatus implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountLeadsByStatus(ctx context.Context, filter access.Filter) (map[string]int64, error) {
	q := GetQuerier(ctx, r.db)

	clause, args := filter.Clause()
	query := `SELECT status, COUNT(*) FROM leads ` + clause + ` GROUP BY status`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// CountOpenDeals implements dashboard.DashboardRepository. Returns the open
// deal count and the summed pipeline value for the same rows.
func (r *dashboardRepositoryImpl) CountOpenDeals(ctx context.Context, filter access.Filter) (int64, float64, error) {
	q := GetQuerier(ctx, r.db)

	scoped := filter.And("stage NOT IN ('won', 'lost')")
	clause, args := scoped.Clause()
	query := `SELECT COUNT(*), COALESCE(SUM(value), 0) FROM deals ` + clause

	var count int64
	var value float64
	if err := q.QueryRow(ctx, query, args...).Scan(&count, &value); err != nil {
		return 0, 0, err
	}

	return count, value, nil
}

// CountOpenTickets implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountOpenTickets(ctx context.Context, filter access.Filter) (int64, error) {
	q := GetQuerier(ctx, r.db)

	scoped := filter.And("status IN ('open', 'in_progress')")
	clause, args := scoped.Clause()

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM tickets `+clause, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// CountActiveProjects implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountActiveProjects(ctx context.Context, filter access.Filter) (int64, error) {
	q := GetQuerier(ctx, r.db)

	scoped := filter.And("status = 'active'")
	clause, args := scoped.Clause()

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM projects `+clause, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// CountTasksDue implements dashboard.DashboardRepository. Due means not done
// with a due date inside the next seven days, overdue included.
func (r *dashboardRepositoryImpl) CountTasksDue(ctx context.Context, filter access.Filter) (int64, error) {
	q := GetQuerier(ctx, r.db)

	scoped := filter.And("status <> 'done'").And("due_date IS NOT NULL").And("due_date <= NOW() + INTERVAL '7 days'")
	clause, args := scoped.Clause()

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM tasks `+clause, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// CountPendingApprovals implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountPendingApprovals(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM approval_requests WHERE status = 'pending'`).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
