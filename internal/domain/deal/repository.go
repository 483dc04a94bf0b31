package deal

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type DealRepository interface {
	List(ctx context.Context, filter access.Filter, page, limit int) ([]Deal, int64, error)
	GetByID(ctx context.Context, filter access.Filter) (Deal, error)
	Create(ctx context.Context, d Deal) (Deal, error)
	Update(ctx context.Context, req UpdateDealRequest) (Deal, error)
	Delete(ctx context.Context, id string) error
}
