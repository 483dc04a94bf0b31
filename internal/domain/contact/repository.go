package contact

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type ContactRepository interface {
	List(ctx context.Context, filter access.Filter, page, limit int) ([]Contact, int64, error)
	GetByID(ctx context.Context, filter access.Filter) (Contact, error)
	Create(ctx context.Context, c Contact) (Contact, error)
	Update(ctx context.Context, req UpdateContactRequest) (Contact, error)
	Delete(ctx context.Context, id string) error
}
