package account

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type AccountRepository interface {
	List(ctx context.Context, filter access.Filter, page, limit int) ([]Account, int64, error)
	GetByID(ctx context.Context, filter access.Filter) (Account, error)
	Create(ctx context.Context, a Account) (Account, error)
	Update(ctx context.Context, req UpdateAccountRequest) (Account, error)
	Delete(ctx context.Context, id string) error
}
