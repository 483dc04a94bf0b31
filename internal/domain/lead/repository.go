package lead

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type LeadRepository interface {
	// List returns the leads matching filter, newest first, plus the total
	// count for the same filter. The filter already carries the caller's
	// ownership scope.
	List(ctx context.Context, filter access.Filter, page, limit int) ([]Lead, int64, error)
	// GetByID resolves one lead through a scoped filter; out-of-scope
	// records surface as not found.
	GetByID(ctx context.Context, filter access.Filter) (Lead, error)
	Create(ctx context.Context, l Lead) (Lead, error)
	Update(ctx context.Context, req UpdateLeadRequest) (Lead, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}
