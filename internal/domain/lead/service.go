package lead

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/contact"
)

type LeadService interface {
	List(ctx context.Context, scope access.Scope, query ListLeadsQuery) ([]LeadResponse, int64, error)
	Get(ctx context.Context, scope access.Scope, id string) (LeadResponse, error)
	Create(ctx context.Context, scope access.Scope, req CreateLeadRequest) (LeadResponse, error)
	Update(ctx context.Context, scope access.Scope, req UpdateLeadRequest) (LeadResponse, error)
	Delete(ctx context.Context, scope access.Scope, id string) error
	// Convert creates a contact from a qualified lead and marks the lead
	// converted, atomically.
	Convert(ctx context.Context, scope access.Scope, id string) (contact.ContactResponse, error)
	// ExportCSV renders every lead visible to the caller as CSV.
	ExportCSV(ctx context.Context, scope access.Scope) ([]byte, error)
}
