package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/lead"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

const leadColumns = `id, name, email, phone, company, source, status, notes,
	assigned_to, created_by, created_at, updated_at`

type leadRepositoryImpl struct {
	db *database.DB
}

func NewLeadRepository(db *database.DB) lead.LeadRepository {
	return &leadRepositoryImpl{db: db}
}

func scanLead(row interface{ Scan(dest ...any) error }) (lead.Lead, error) {
	var l lead.Lead
	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Email,
		&l.Phone,
		&l.Company,
		&l.Source,
		&l.Status,
		&l.Notes,
		&l.AssignedTo,
		&l.CreatedBy,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}

// List implements lead.LeadRepository.
func (r *leadRepositoryImpl) List(ctx context.Context, filter access.Filter, page, limit int) ([]lead.Lead, int64, error) {
	q := GetQuerier(ctx, r.db)

	clause, args := filter.Clause()

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leads `+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := filter.Len()
	listQuery := fmt.Sprintf(
		`SELECT `+leadColumns+` FROM leads %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		clause, n+1, n+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leads []lead.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// GetByID implements lead.LeadRepository.
func (r *leadRepositoryImpl) GetByID(ctx context.Context, filter access.Filter) (lead.Lead, error) {
	q := GetQuerier(ctx, r.db)

	clause, args := filter.Clause()
	query := `SELECT ` + leadColumns + ` FROM leads ` + clause

	return scanLead(q.QueryRow(ctx, query, args...))
}

// Create implements lead.LeadRepository.
func (r *leadRepositoryImpl) Create(ctx context.Context, l lead.Lead) (lead.Lead, error) {
	q := GetQuerier(ctx, r.db)

	if l.ID == "" {
		l.ID = uuid.NewString()
	}

	query := `
		INSERT INTO leads (id, name, email, phone, company, source, status, notes, assigned_to, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + leadColumns

	return scanLead(q.QueryRow(ctx, query,
		l.ID,
		l.Name,
		l.Email,
		l.Phone,
		l.Company,
		l.Source,
		l.Status,
		l.Notes,
		l.AssignedTo,
		l.CreatedBy,
	))
}

// Update implements lead.LeadRepository.
func (r *leadRepositoryImpl) Update(ctx context.Context, req lead.UpdateLeadRequest) (lead.Lead, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leads
		SET name = COALESCE($1, name),
			email = COALESCE($2, email),
			phone = COALESCE($3, phone),
			company = COALESCE($4, company),
			source = COALESCE($5, source),
			status = COALESCE($6, status),
			notes = COALESCE($7, notes),
			assigned_to = COALESCE($8, assigned_to),
			updated_at = NOW()
		WHERE id = $9
		RETURNING ` + leadColumns

	return scanLead(q.QueryRow(ctx, query,
		req.Name,
		req.Email,
		req.Phone,
		req.Company,
		req.Source,
		req.Status,
		req.Notes,
		req.AssignedTo,
		req.ID,
	))
}

// UpdateStatus implements lead.LeadRepository.
func (r *leadRepositoryImpl) UpdateStatus(ctx context.Context, id string, status lead.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE leads SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return lead.ErrLeadNotFound
	}
	return nil
}

// Delete implements lead.LeadRepository.
func (r *leadRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return lead.ErrLeadNotFound
	}
	return nil
}
