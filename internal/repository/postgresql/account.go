package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/account"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

const accountColumns = `id, name, industry, website, phone, assigned_to, created_by, created_at, updated_at`

type accountRepositoryImpl struct {
	db *database.DB
}

func NewAccountRepository(db *database.DB) account.AccountRepository {
	return &accountRepositoryImpl{db: db}
}

func scanAccount(row interface{ Scan(dest ...any) error }) (account.Account, error) {
	var a account.Account
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Industry,
		&a.Website,
		&a.Phone,
		&a.AssignedTo,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// List implements account.AccountRepository.
func (r *accountRepositoryImpl) List(ctx context.Context, filter access.Filter, page, limit int) ([]account.Account, int64, error) {
	q := GetQuerier(ctx, r.db)

	clause, args := filter.Clause()

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM accounts `+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := filter.Len()
	listQuery := fmt.Sprintf(
		`SELECT `+accountColumns+` FROM accounts %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		clause, n+1, n+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []account.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

// GetByID implements account.AccountRepository.
func (r *accountRepositoryImpl) GetByID(ctx context.Context, filter access.Filter) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	clause, args := filter.Clause()
	query := `SELECT ` + accountColumns + ` FROM accounts ` + clause

	return scanAccount(q.QueryRow(ctx, query, args...))
}

// Create implements account.AccountRepository.
func (r *accountRepositoryImpl) Create(ctx context.Context, a account.Account) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	query := `
		INSERT INTO accounts (id, name, industry, website, phone, assigned_to, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + accountColumns

	return scanAccount(q.QueryRow(ctx, query,
		a.ID,
		a.Name,
		a.Industry,
		a.Website,
		a.Phone,
		a.AssignedTo,
		a.CreatedBy,
	))
}

// Update implements account.AccountRepository.
func (r *accountRepositoryImpl) Update(ctx context.Context, req account.UpdateAccountRequest) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE accounts
		SET name = COALESCE($1, name),
			industry = COALESCE($2, industry),
			website = COALESCE($3, website),
			phone = COALESCE($4, phone),
			assigned_to = COALESCE($5, assigned_to),
			updated_at = NOW()
		WHERE id = $6
		RETURNING ` + accountColumns

	return scanAccount(q.QueryRow(ctx, query,
		req.Name,
		req.Industry,
		req.Website,
		req.Phone,
		req.AssignedTo,
		req.ID,
	))
}

// Delete implements account.AccountRepository.
func (r *accountRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}
