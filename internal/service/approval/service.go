package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/approval"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
	"github.com/optimacrm/crm-backend-go/internal/pkg/email"
	"github.com/optimacrm/crm-backend-go/internal/repository/postgresql"
)

type ApprovalServiceImpl struct {
	db database.TxBeginner
	approval.ApprovalRepository
	user.UserRepository
	email.EmailService
	loginURL string
}

func NewApprovalService(db database.TxBeginner, approvalRepository approval.ApprovalRepository, userRepository user.UserRepository, emailService email.EmailService, loginURL string) approval.ApprovalService {
	return &ApprovalServiceImpl{
		db:                 db,
		ApprovalRepository: approvalRepository,
		UserRepository:     userRepository,
		EmailService:       emailService,
		loginURL:           loginURL,
	}
}

// ListPending implements approval.ApprovalService.
func (s *ApprovalServiceImpl) ListPending(ctx context.Context) ([]approval.RequestResponse, error) {
	pending, err := s.ApprovalRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return pending, nil
}

// Approve implements approval.ApprovalService. The request decision and the
// account activation land in the same transaction.
func (s *ApprovalServiceImpl) Approve(ctx context.Context, actor user.User, requestID string) error {
	if !actor.CanDecideApprovals() {
		return approval.ErrNotPrivileged
	}

	request, err := s.ApprovalRepository.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.ErrRequestNotFound
		}
		return fmt.Errorf("failed to get approval request: %w", err)
	}
	if !request.IsPending() {
		return approval.ErrAlreadyDecided
	}

	requester, err := s.UserRepository.GetByID(ctx, request.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to get requester: %w", err)
	}

	now := time.Now()
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.ApprovalRepository.Decide(txCtx, request.ID, approval.StatusApproved, actor.ID, now, nil); err != nil {
			return err
		}
		if err := s.UserRepository.Approve(txCtx, request.UserID, actor.ID, now); err != nil {
			return fmt.Errorf("failed to approve user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Notification is best effort; the decision already committed.
	if err := s.EmailService.SendAccountApproved(requester.Email, requester.Name, s.loginURL); err != nil {
		slog.Warn("failed to send approval email", "user_id", requester.ID, "error", err)
	}

	return nil
}

// Reject implements approval.ApprovalService. The requester's account is
// deleted outright; the decided request row is what remains of the attempt.
func (s *ApprovalServiceImpl) Reject(ctx context.Context, actor user.User, req approval.RejectRequest) error {
	if !actor.CanDecideApprovals() {
		return approval.ErrNotPrivileged
	}

	request, err := s.ApprovalRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.ErrRequestNotFound
		}
		return fmt.Errorf("failed to get approval request: %w", err)
	}
	if !request.IsPending() {
		return approval.ErrAlreadyDecided
	}

	requester, err := s.UserRepository.GetByID(ctx, request.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to get requester: %w", err)
	}

	now := time.Now()
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.ApprovalRepository.Decide(txCtx, request.ID, approval.StatusRejected, actor.ID, now, req.Reason); err != nil {
			return err
		}
		if err := s.UserRepository.Delete(txCtx, request.UserID); err != nil {
			return fmt.Errorf("failed to delete rejected user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.EmailService.SendAccountRejected(requester.Email, requester.Name, req.Reason); err != nil {
		slog.Warn("failed to send rejection email", "user_id", requester.ID, "error", err)
	}

	return nil
}
