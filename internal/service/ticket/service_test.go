package ticket

import (
	"context"
	"errors"
	"testing"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/ticket"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/optimacrm/crm-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicketRepo struct {
	stored     ticket.Ticket
	getErr     error
	lastFilter access.Filter
	created    *ticket.Ticket
	deleted    []string
}

func (r *fakeTicketRepo) List(ctx context.Context, filter access.Filter, page, limit int) ([]ticket.Ticket, int64, error) {
	r.lastFilter = filter
	return nil, 0, nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, filter access.Filter) (ticket.Ticket, error) {
	r.lastFilter = filter
	if r.getErr != nil {
		return ticket.Ticket{}, r.getErr
	}
	return r.stored, nil
}

func (r *fakeTicketRepo) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	t.ID = "ticket-1"
	r.created = &t
	return t, nil
}

func (r *fakeTicketRepo) Update(ctx context.Context, req ticket.UpdateTicketRequest) (ticket.Ticket, error) {
	return r.stored, nil
}

func (r *fakeTicketRepo) Delete(ctx context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func customerScope() access.Scope {
	return access.Scope{Role: user.RoleCustomer, UserID: "cust-1", Email: "cust@example.com"}
}

func TestTicketService_Create_CustomerForcedToSelf(t *testing.T) {
	repo := &fakeTicketRepo{}
	service := NewTicketService(nil, repo)

	created, err := service.Create(context.Background(), customerScope(), ticket.CreateTicketRequest{
		Subject:    "Login broken",
		CustomerID: "someone-else",
	})

	require.NoError(t, err)
	assert.Equal(t, "cust-1", created.CustomerID)
}

func TestTicketService_Create_StaffRequiresCustomer(t *testing.T) {
	repo := &fakeTicketRepo{}
	service := NewTicketService(nil, repo)

	scope := access.Scope{Role: user.RoleAdmin, UserID: "admin-1"}
	_, err := service.Create(context.Background(), scope, ticket.CreateTicketRequest{
		Subject: "Login broken",
	})

	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	assert.Contains(t, validationErrs.ToMap(), "customer_id")
	assert.Nil(t, repo.created)
}

func TestTicketService_Create_DefaultsPriorityMedium(t *testing.T) {
	repo := &fakeTicketRepo{}
	service := NewTicketService(nil, repo)

	scope := access.Scope{Role: user.RoleAdmin, UserID: "admin-1"}
	created, err := service.Create(context.Background(), scope, ticket.CreateTicketRequest{
		Subject:    "Login broken",
		CustomerID: "cust-1",
	})

	require.NoError(t, err)
	assert.Equal(t, ticket.PriorityMedium, created.Priority)
	assert.Equal(t, ticket.StatusOpen, created.Status)
}

func TestTicketService_Get_CustomerScopedToOwnTickets(t *testing.T) {
	repo := &fakeTicketRepo{stored: ticket.Ticket{ID: "ticket-1", CustomerID: "cust-1"}}
	service := NewTicketService(nil, repo)

	_, err := service.Get(context.Background(), customerScope(), "ticket-1")
	require.NoError(t, err)

	clause, args := repo.lastFilter.Clause()
	assert.Equal(t, "WHERE id = $1 AND customer_id = $2", clause)
	assert.Equal(t, []any{"ticket-1", "cust-1"}, args)
}

func TestTicketService_Get_SupportAgentIncludesTeamMembership(t *testing.T) {
	repo := &fakeTicketRepo{stored: ticket.Ticket{ID: "ticket-1"}}
	service := NewTicketService(nil, repo)

	scope := access.Scope{Role: user.RoleSupportAgent, UserID: "agent-1"}
	_, err := service.Get(context.Background(), scope, "ticket-1")
	require.NoError(t, err)

	clause, _ := repo.lastFilter.Clause()
	assert.Equal(t, "WHERE id = $1 AND (assigned_to = $2 OR $3 = ANY(team_members))", clause)
}

func TestTicketService_Delete_AgentNotOnTeamRefused(t *testing.T) {
	repo := &fakeTicketRepo{stored: ticket.Ticket{
		ID:          "ticket-1",
		AssignedTo:  "other-agent",
		TeamMembers: []string{"another-agent"},
		CustomerID:  "cust-1",
	}}
	service := NewTicketService(nil, repo)

	scope := access.Scope{Role: user.RoleSupportAgent, UserID: "agent-1"}
	err := service.Delete(context.Background(), scope, "ticket-1")

	assert.ErrorIs(t, err, access.ErrOwnershipViolation)
	assert.Empty(t, repo.deleted)
}

func TestTicketService_Delete_TeamMemberAllowed(t *testing.T) {
	repo := &fakeTicketRepo{stored: ticket.Ticket{
		ID:          "ticket-1",
		AssignedTo:  "other-agent",
		TeamMembers: []string{"agent-1"},
		CustomerID:  "cust-1",
	}}
	service := NewTicketService(nil, repo)

	scope := access.Scope{Role: user.RoleSupportAgent, UserID: "agent-1"}
	err := service.Delete(context.Background(), scope, "ticket-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"ticket-1"}, repo.deleted)
}
