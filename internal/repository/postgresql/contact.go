package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/contact"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

const contactColumns = `id, first_name, last_name, email, phone, title, account_id,
	assigned_to, created_by, created_at, updated_at`

type contactRepositoryImpl struct {
	db *database.DB
}

func NewContactRepository(db *database.DB) contact.ContactRepository {
	return &contactRepositoryImpl{db: db}
}

func scanContact(row interface{ Scan(dest ...any) error }) (contact.Contact, error) {
	var c contact.Contact
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.Title,
		&c.AccountID,
		&c.AssignedTo,
		&c.CreatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// List implements contact.ContactRepository.
func (r *contactRepositoryImpl) List(ctx context.Context, filter access.Filter, page, limit int) ([]contact.Contact, int64, error) {
	q := GetQuerier(ctx, r.db)

	clause, args := filter.Clause()

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM contacts `+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := filter.Len()
	listQuery := fmt.Sprintf(
		`SELECT `+contactColumns+` FROM contacts %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		clause, n+1, n+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contacts []contact.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

// GetByID implements contact.ContactRepository.
func (r *contactRepositoryImpl) GetByID(ctx context.Context, filter access.Filter) (contact.Contact, error) {
	q := GetQuerier(ctx, r.db)

	clause, args := filter.Clause()
	query := `SELECT ` + contactColumns + ` FROM contacts ` + clause

	return scanContact(q.QueryRow(ctx, query, args...))
}

// Create implements contact.ContactRepository.
func (r *contactRepositoryImpl) Create(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query := `
		INSERT INTO contacts (id, first_name, last_name, email, phone, title, account_id, assigned_to, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + contactColumns

	return scanContact(q.QueryRow(ctx, query,
		c.ID,
		c.FirstName,
		c.LastName,
		c.Email,
		c.Phone,
		c.Title,
		c.AccountID,
		c.AssignedTo,
		c.CreatedBy,
	))
}

// Update implements contact.ContactRepository.
func (r *contactRepositoryImpl) Update(ctx context.Context, req contact.UpdateContactRequest) (contact.Contact, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE contacts
		SET first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			title = COALESCE($5, title),
			account_id = COALESCE($6, account_id),
			assigned_to = COALESCE($7, assigned_to),
			updated_at = NOW()
		WHERE id = $8
		RETURNING ` + contactColumns

	return scanContact(q.QueryRow(ctx, query,
		req.FirstName,
		req.LastName,
		req.Email,
		req.Phone,
		req.Title,
		req.AccountID,
		req.AssignedTo,
		req.ID,
	))
}

// Delete implements contact.ContactRepository.
func (r *contactRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return contact.ErrContactNotFound
	}
	return nil
}
