package approval

import (
	"context"
	"time"
)

type ApprovalRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	// ListPending returns pending requests joined with requester name/email,
	// oldest first.
	ListPending(ctx context.Context) ([]RequestResponse, error)
	// Decide moves a pending request to its terminal status. Implementations
	// must make the update conditional on status = pending so two concurrent
	// decisions cannot both succeed.
	Decide(ctx context.Context, id string, status Status, decidedBy string, decidedAt time.Time, reason *string) error
}
