package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/ticket"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

const ticketColumns = `id, subject, description, status, priority, customer_id, team_members,
	assigned_to, created_by, resolved_at, created_at, updated_at`

type ticketRepositoryImpl struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) ticket.TicketRepository {
	return &ticketRepositoryImpl{db: db}
}

func scanTicket(row interface{ Scan(dest ...any) error }) (ticket.Ticket, error) {
	var t ticket.Ticket
	err := row.Scan(
		&t.ID,
		&t.Subject,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.CustomerID,
		&t.TeamMembers,
		&t.AssignedTo,
		&t.CreatedBy,
		&t.ResolvedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

// List implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) List(ctx context.Context, filter access.Filter, page, limit int) ([]ticket.Ticket, int64, error) {
	q := GetQuerier(ctx, r.db)

	clause, args := filter.Clause()

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM tickets `+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := filter.Len()
	listQuery := fmt.Sprintf(
		`SELECT `+ticketColumns+` FROM tickets %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		clause, n+1, n+2,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tickets []ticket.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

// GetByID implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) GetByID(ctx context.Context, filter access.Filter) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	clause, args := filter.Clause()
	query := `SELECT ` + ticketColumns + ` FROM tickets ` + clause

	return scanTicket(q.QueryRow(ctx, query, args...))
}

// Create implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.TeamMembers == nil {
		t.TeamMembers = []string{}
	}

	query := `
		INSERT INTO tickets (id, subject, description, status, priority, customer_id,
			team_members, assigned_to, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + ticketColumns

	return scanTicket(q.QueryRow(ctx, query,
		t.ID,
		t.Subject,
		t.Description,
		t.Status,
		t.Priority,
		t.CustomerID,
		t.TeamMembers,
		t.AssignedTo,
		t.CreatedBy,
	))
}

// Update implements ticket.TicketRepository. resolved_at follows the status:
// it is stamped when a ticket moves to resolved and cleared when it reopens.
func (r *ticketRepositoryImpl) Update(ctx context.Context, req ticket.UpdateTicketRequest) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tickets
		SET subject = COALESCE($1, subject),
			description = COALESCE($2, description),
			status = COALESCE($3, status),
			priority = COALESCE($4, priority),
			team_members = COALESCE($5, team_members),
			assigned_to = COALESCE($6, assigned_to),
			resolved_at = CASE
				WHEN $3::text = 'resolved' THEN NOW()
				WHEN $3::text IN ('open', 'in_progress') THEN NULL
				ELSE resolved_at
			END,
			updated_at = NOW()
		WHERE id = $7
		RETURNING ` + ticketColumns

	var membersArg any
	if req.TeamMembers != nil {
		members := *req.TeamMembers
		if members == nil {
			members = []string{}
		}
		membersArg = members
	}

	return scanTicket(q.QueryRow(ctx, query,
		req.Subject,
		req.Description,
		req.Status,
		req.Priority,
		membersArg,
		req.AssignedTo,
		req.ID,
	))
}

// Delete implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ticket.ErrTicketNotFound
	}
	return nil
}
