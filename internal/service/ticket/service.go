package ticket

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/ticket"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
	"github.com/optimacrm/crm-backend-go/internal/pkg/validator"
)

type TicketServiceImpl struct {
	db *database.DB
	ticket.TicketRepository
}

func NewTicketService(db *database.DB, ticketRepository ticket.TicketRepository) ticket.TicketService {
	return &TicketServiceImpl{
		db:               db,
		TicketRepository: ticketRepository,
	}
}

// List implements ticket.TicketService.
func (s *TicketServiceImpl) List(ctx context.Context, scope access.Scope, query ticket.ListTicketsQuery) ([]ticket.TicketResponse, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}

	base := access.NewFilter()
	if query.Status != nil {
		base = base.And("status = ?", *query.Status)
	}
	if query.Priority != nil {
		base = base.And("priority = ?", *query.Priority)
	}
	if query.Search != "" {
		base = base.And("subject ILIKE ?", "%"+query.Search+"%")
	}
	filter := access.ScopeQuery(scope, access.CollectionTickets, base)

	tickets, total, err := s.TicketRepository.List(ctx, filter, query.Page, query.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	return ticket.ToResponses(tickets), total, nil
}

// Get implements ticket.TicketService.
func (s *TicketServiceImpl) Get(ctx context.Context, scope access.Scope, id string) (ticket.TicketResponse, error) {
	found, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return ticket.TicketResponse{}, err
	}
	return ticket.ToResponse(found), nil
}

// Create implements ticket.TicketService. A customer always opens tickets
// for themselves; staff must name the customer the ticket belongs to.
func (s *TicketServiceImpl) Create(ctx context.Context, scope access.Scope, req ticket.CreateTicketRequest) (ticket.TicketResponse, error) {
	customerID := req.CustomerID
	if scope.Role == user.RoleCustomer {
		customerID = scope.UserID
	}
	if customerID == "" {
		return ticket.TicketResponse{}, validator.ValidationErrors{{
			Field:   "customer_id",
			Message: "customer_id is required",
		}}
	}

	priority := ticket.PriorityMedium
	if req.Priority != nil {
		priority = *req.Priority
	}

	assignedTo := scope.DefaultAssignee(req.AssignedTo)
	ownership := access.Ownership{
		AssignedTo:  assignedTo,
		TeamMembers: req.TeamMembers,
		CustomerID:  customerID,
	}
	if !scope.AllowsMutation(access.CollectionTickets, ownership) {
		return ticket.TicketResponse{}, access.ErrOwnershipViolation
	}

	created, err := s.TicketRepository.Create(ctx, ticket.Ticket{
		Subject:     req.Subject,
		Description: req.Description,
		Status:      ticket.StatusOpen,
		Priority:    priority,
		CustomerID:  customerID,
		TeamMembers: req.TeamMembers,
		AssignedTo:  assignedTo,
		CreatedBy:   scope.UserID,
	})
	if err != nil {
		return ticket.TicketResponse{}, fmt.Errorf("failed to create ticket: %w", err)
	}

	return ticket.ToResponse(created), nil
}

// Update implements ticket.TicketService.
func (s *TicketServiceImpl) Update(ctx context.Context, scope access.Scope, req ticket.UpdateTicketRequest) (ticket.TicketResponse, error) {
	current, err := s.getScoped(ctx, scope, req.ID)
	if err != nil {
		return ticket.TicketResponse{}, err
	}
	if !scope.AllowsMutation(access.CollectionTickets, ownershipOf(current)) {
		return ticket.TicketResponse{}, access.ErrOwnershipViolation
	}

	updated, err := s.TicketRepository.Update(ctx, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.TicketResponse{}, ticket.ErrTicketNotFound
		}
		return ticket.TicketResponse{}, fmt.Errorf("failed to update ticket: %w", err)
	}

	return ticket.ToResponse(updated), nil
}

// Delete implements ticket.TicketService.
func (s *TicketServiceImpl) Delete(ctx context.Context, scope access.Scope, id string) error {
	current, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return err
	}
	if !scope.AllowsMutation(access.CollectionTickets, ownershipOf(current)) {
		return access.ErrOwnershipViolation
	}

	return s.TicketRepository.Delete(ctx, id)
}

func (s *TicketServiceImpl) getScoped(ctx context.Context, scope access.Scope, id string) (ticket.Ticket, error) {
	filter := access.ScopeQuery(scope, access.CollectionTickets, access.NewFilter().And("id = ?", id))

	found, err := s.TicketRepository.GetByID(ctx, filter)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.Ticket{}, ticket.ErrTicketNotFound
		}
		return ticket.Ticket{}, fmt.Errorf("failed to get ticket: %w", err)
	}
	return found, nil
}

func ownershipOf(t ticket.Ticket) access.Ownership {
	return access.Ownership{
		AssignedTo:  t.AssignedTo,
		TeamMembers: t.TeamMembers,
		CustomerID:  t.CustomerID,
	}
}
