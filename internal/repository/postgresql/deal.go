package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/deal"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

const dealColumns = `id, title, value, stage, account_id, contact_id, expected_close_date,
	assigned_to, created_by, created_at, updated_at`

type dealRepositoryImpl struct {
	db *database.DB
}

func NewDealRepository(db *database.DB) deal.DealRepository {
	return &dealRepositoryImpl{db: db}
}

func scanDeal(row interface{ Scan(dest ...any) error }) (deal.Deal, error) {
	var d deal.Deal
	err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Value,
		&d.Stage,
		&d.AccountID,
		&d.ContactID,
		&d.ExpectedCloseDate,
		&d.AssignedTo,
		&d.CreatedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

// List implements deal.DealRepository.
func (r *dealRepositoryImpl) List(ctx context.Context, filter access.Filter, page, limit int) ([]deal.Deal, int64, error) {
	q := GetQuerier(ctx, r.db)

	clause, args := filter.Clause()

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM deals `+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := filter.Len()
	listQuery := fmt.Sprintf(
		`SELECT `+dealColumns+` FROM deals %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		clause, n+1, n+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var deals []deal.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, 0, err
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return deals, total, nil
}

// GetByID implements deal.DealRepository.
func (r *dealRepositoryImpl) GetByID(ctx context.Context, filter access.Filter) (deal.Deal, error) {
	q := GetQuerier(ctx, r.db)

	clause, args := filter.Clause()
	query := `SELECT ` + dealColumns + ` FROM deals ` + clause

	return scanDeal(q.QueryRow(ctx, query, args...))
}

// Create implements deal.DealRepository.
func (r *dealRepositoryImpl) Create(ctx context.Context, d deal.Deal) (deal.Deal, error) {
	q := GetQuerier(ctx, r.db)

	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	query := `
		INSERT INTO deals (id, title, value, stage, account_id, contact_id, expected_close_date, assigned_to, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + dealColumns

	return scanDeal(q.QueryRow(ctx, query,
		d.ID,
		d.Title,
		d.Value,
		d.Stage,
		d.AccountID,
		d.ContactID,
		d.ExpectedCloseDate,
		d.AssignedTo,
		d.CreatedBy,
	))
}

// Update implements deal.DealRepository.
func (r *dealRepositoryImpl) Update(ctx context.Context, req deal.UpdateDealRequest) (deal.Deal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE deals
		SET title = COALESCE($1, title),
			value = COALESCE($2, value),
			stage = COALESCE($3, stage),
			account_id = COALESCE($4, account_id),
			contact_id = COALESCE($5, contact_id),
			expected_close_date = COALESCE($6, expected_close_date),
			assigned_to = COALESCE($7, assigned_to),
			updated_at = NOW()
		WHERE id = $8
		RETURNING ` + dealColumns

	return scanDeal(q.QueryRow(ctx, query,
		req.Title,
		req.Value,
		req.Stage,
		req.AccountID,
		req.ContactID,
		req.ExpectedCloseDate,
		req.AssignedTo,
		req.ID,
	))
}

// Delete implements deal.DealRepository.
func (r *dealRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return deal.ErrDealNotFound
	}
	return nil
}
