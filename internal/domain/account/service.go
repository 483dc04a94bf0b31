package account

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type AccountService interface {
	List(ctx context.Context, scope access.Scope, query ListAccountsQuery) ([]AccountResponse, int64, error)
	Get(ctx context.Context, scope access.Scope, id string) (AccountResponse, error)
	Create(ctx context.Context, scope access.Scope, req CreateAccountRequest) (AccountResponse, error)
	Update(ctx context.Context, scope access.Scope, req UpdateAccountRequest) (AccountResponse, error)
	Delete(ctx context.Context, scope access.Scope, id string) error
}
