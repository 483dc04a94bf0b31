package ticket

import (
	"context"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
)

type TicketService interface {
	List(ctx context.Context, scope access.Scope, query ListTicketsQuery) ([]TicketResponse, int64, error)
	Get(ctx context.Context, scope access.Scope, id string) (TicketResponse, error)
	Create(ctx context.Context, scope access.Scope, req CreateTicketRequest) (TicketResponse, error)
	Update(ctx context.Context, scope access.Scope, req UpdateTicketRequest) (TicketResponse, error)
	Delete(ctx context.Context, scope access.Scope, id string) error
}
