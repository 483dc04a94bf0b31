package ticket

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type TicketRepository interface {
	List(ctx context.Context, filter access.Filter, page, limit int) ([]Ticket, int64, error)
	GetByID(ctx context.Context, filter access.Filter) (Ticket, error)
	Create(ctx context.Context, t Ticket) (Ticket, error)
	Update(ctx context.Context, req UpdateTicketRequest) (Ticket, error)
	Delete(ctx context.Context, id string) error
}
