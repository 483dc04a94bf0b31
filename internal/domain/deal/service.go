package deal

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type DealService interface {
	List(ctx context.Context, scope access.Scope, query ListDealsQuery) ([]DealResponse, int64, error)
	Get(ctx context.Context, scope access.Scope, id string) (DealResponse, error)
	Create(ctx context.Context, scope access.Scope, req CreateDealRequest) (DealResponse, error)
	Update(ctx context.Context, scope access.Scope, req UpdateDealRequest) (DealResponse, error)
	Delete(ctx context.Context, scope access.Scope, id string) error
}
