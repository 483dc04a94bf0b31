package postgresql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/optimacrm/crm-backend-go/internal/domain/approval"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

type approvalRepositoryImpl struct {
	db *database.DB
}

func NewApprovalRepository(db *database.DB) approval.ApprovalRepository {
	return &approvalRepositoryImpl{db: db}
}

// Create implements approval.ApprovalRepository.
func (r *approvalRepositoryImpl) Create(ctx context.Context, req approval.Request) (approval.Request, error) {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	query := `
		INSERT INTO approval_requests (id, user_id, requested_role, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, requested_role, status, decided_by, decided_at, reason,
				  created_at, updated_at
	`

	var created approval.Request
	err := q.QueryRow(ctx, query, req.ID, req.UserID, req.RequestedRole, req.Status).Scan(
		&created.ID,
		&created.UserID,
		&created.RequestedRole,
		&created.Status,
		&created.DecidedBy,
		&created.DecidedAt,
		&created.Reason,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return approval.Request{}, err
	}

	return created, nil
}

// GetByID implements approval.ApprovalRepository.
func (r *approvalRepositoryImpl) GetByID(ctx context.Context, id string) (approval.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, requested_role, status, decided_by, decided_at, reason,
			   created_at, updated_at
		FROM approval_requests
		WHERE id = $1
	`

	var found approval.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.UserID,
		&found.RequestedRole,
		&found.Status,
		&found.DecidedBy,
		&found.DecidedAt,
		&found.Reason,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		return approval.Request{}, err
	}

	return found, nil
}

// ListPending implements approval.ApprovalRepository.
func (r *approvalRepositoryImpl) ListPending(ctx context.Context) ([]approval.RequestResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ar.id, ar.user_id, u.name, u.email, ar.requested_role, ar.status,
			   ar.decided_by, ar.decided_at, ar.reason, ar.created_at
		FROM approval_requests ar
		JOIN users u ON u.id = ar.user_id
		WHERE ar.status = 'pending'
		ORDER BY ar.created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []approval.RequestResponse
	for rows.Next() {
		var req approval.RequestResponse
		err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.RequesterName,
			&req.RequesterEmail,
			&req.RequestedRole,
			&req.Status,
			&req.DecidedBy,
			&req.DecidedAt,
			&req.Reason,
			&req.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		pending = append(pending, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}

// Decide implements approval.ApprovalRepository. The update is conditional
// on status = pending so two concurrent decisions cannot both succeed.
func (r *approvalRepositoryImpl) Decide(ctx context.Context, id string, status approval.Status, decidedBy string, decidedAt time.Time, reason *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE approval_requests
		SET status = $1, decided_by = $2, decided_at = $3, reason = $4, updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, status, decidedBy, decidedAt, reason, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return approval.ErrAlreadyDecided
	}
	return nil
}
