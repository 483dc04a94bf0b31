package contact

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type ContactService interface {
	List(ctx context.Context, scope access.Scope, query ListContactsQuery) ([]ContactResponse, int64, error)
	Get(ctx context.Context, scope access.Scope, id string) (ContactResponse, error)
	Create(ctx context.Context, scope access.Scope, req CreateContactRequest) (ContactResponse, error)
	Update(ctx context.Context, scope access.Scope, req UpdateContactRequest) (ContactResponse, error)
	Delete(ctx context.Context, scope access.Scope, id string) error
}
