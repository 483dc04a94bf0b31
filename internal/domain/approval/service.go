package approval

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/user"
)

type ApprovalService interface {
	ListPending(ctx context.Context) ([]RequestResponse, error)
	// Approve activates the requester's account. Actor must be an admin.
	Approve(ctx context.Context, actor user.User, requestID string) error
	// Reject marks the request rejected and deletes the requester's account
	// outright. The request row is kept; the identity is not.
	Reject(ctx context.Context, actor user.User, req RejectRequest) error
}
