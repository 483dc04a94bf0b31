package access

import (
	"testing"

	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesExec() Scope {
	return Scope{Role: user.RoleSalesExecutive, UserID: "u-1", Email: "exec@example.com"}
}

func TestFilter_Clause(t *testing.T) {
	f := NewFilter().
		And("status = ?", "new").
		And("assigned_to = ?", "u-1")

	clause, args := f.Clause()
	assert.Equal(t, "WHERE status = $1 AND assigned_to = $2", clause)
	assert.Equal(t, []any{"new", "u-1"}, args)
	assert.Equal(t, 2, f.Len())
}

func TestFilter_Empty(t *testing.T) {
	clause, args := NewFilter().Clause()
	assert.Empty(t, clause)
	assert.Nil(t, args)
	assert.True(t, NewFilter().IsEmpty())
}

func TestFilter_AndDoesNotMutateBase(t *testing.T) {
	base := NewFilter().And("status = ?", "open")
	a := base.And("assigned_to = ?", "u-1")
	b := base.And("customer_id = ?", "u-2")

	clauseA, argsA := a.Clause()
	clauseB, argsB := b.Clause()
	assert.Equal(t, "WHERE status = $1 AND assigned_to = $2", clauseA)
	assert.Equal(t, []any{"open", "u-1"}, argsA)
	assert.Equal(t, "WHERE status = $1 AND customer_id = $2", clauseB)
	assert.Equal(t, []any{"open", "u-2"}, argsB)
}

func TestScopeQuery_UnrestrictedRoles(t *testing.T) {
	base := NewFilter().And("status = ?", "open")

	for _, role := range []user.Role{user.RoleSuperAdmin, user.RoleAdmin, user.RoleSalesManager} {
		s := Scope{Role: role, UserID: "u-9"}
		for _, c := range []Collection{CollectionLeads, CollectionTickets, CollectionProjects} {
			clause, args := ScopeQuery(s, c, base).Clause()
			assert.Equal(t, "WHERE status = $1", clause, "role %s collection %s", role, c)
			assert.Equal(t, []any{"open"}, args)
		}
	}
}

func TestScopeQuery_SalesExecutive(t *testing.T) {
	s := salesExec()

	for _, c := range []Collection{CollectionLeads, CollectionContacts, CollectionAccounts, CollectionDeals, CollectionTasks} {
		clause, args := ScopeQuery(s, c, NewFilter()).Clause()
		assert.Equal(t, "WHERE assigned_to = $1", clause, "collection %s", c)
		assert.Equal(t, []any{"u-1"}, args)
	}

	// Collections outside the sales surface fail closed
	for _, c := range []Collection{CollectionTickets, CollectionProjects} {
		clause, _ := ScopeQuery(s, c, NewFilter()).Clause()
		assert.Equal(t, "WHERE FALSE", clause, "collection %s", c)
	}
}

func TestScopeQuery_SupportAgent(t *testing.T) {
	s := Scope{Role: user.RoleSupportAgent, UserID: "u-2"}

	for _, c := range []Collection{CollectionProjects, CollectionTickets} {
		clause, args := ScopeQuery(s, c, NewFilter()).Clause()
		assert.Equal(t, "WHERE (assigned_to = $1 OR $2 = ANY(team_members))", clause)
		assert.Equal(t, []any{"u-2", "u-2"}, args)
	}

	clause, args := ScopeQuery(s, CollectionTasks, NewFilter()).Clause()
	assert.Equal(t, "WHERE assigned_to = $1", clause)
	assert.Equal(t, []any{"u-2"}, args)

	for _, c := range []Collection{CollectionLeads, CollectionContacts, CollectionAccounts, CollectionDeals} {
		clause, _ := ScopeQuery(s, c, NewFilter()).Clause()
		assert.Equal(t, "WHERE FALSE", clause, "collection %s", c)
	}
}

func TestScopeQuery_Customer(t *testing.T) {
	s := Scope{Role: user.RoleCustomer, UserID: "u-3", Email: "client@example.com"}

	clause, args := ScopeQuery(s, CollectionTickets, NewFilter()).Clause()
	assert.Equal(t, "WHERE customer_id = $1", clause)
	assert.Equal(t, []any{"u-3"}, args)

	clause, args = ScopeQuery(s, CollectionProjects, NewFilter()).Clause()
	assert.Equal(t, "WHERE contact_email = $1", clause)
	assert.Equal(t, []any{"client@example.com"}, args)

	clause, _ = ScopeQuery(s, CollectionLeads, NewFilter()).Clause()
	assert.Equal(t, "WHERE FALSE", clause)
}

func TestScopeQuery_UnknownRoleFailsClosed(t *testing.T) {
	s := Scope{Role: user.Role("intern"), UserID: "u-4"}
	for _, c := range []Collection{CollectionLeads, CollectionTickets, CollectionProjects, CollectionTasks} {
		clause, _ := ScopeQuery(s, c, NewFilter()).Clause()
		assert.Equal(t, "WHERE FALSE", clause, "collection %s", c)
	}
}

func TestAllowsMutation_SalesExecutive(t *testing.T) {
	s := salesExec()

	assert.True(t, s.AllowsMutation(CollectionLeads, Ownership{AssignedTo: "u-1"}))
	assert.False(t, s.AllowsMutation(CollectionLeads, Ownership{AssignedTo: "someone-else"}))
	// Reassignment after a read must still deny the mutation
	assert.False(t, s.AllowsMutation(CollectionDeals, Ownership{AssignedTo: ""}))
	assert.False(t, s.AllowsMutation(CollectionTickets, Ownership{AssignedTo: "u-1"}))
}

func TestAllowsMutation_SupportAgentTeamMembership(t *testing.T) {
	s := Scope{Role: user.RoleSupportAgent, UserID: "u-2"}

	assert.True(t, s.AllowsMutation(CollectionTickets, Ownership{AssignedTo: "u-2"}))
	assert.True(t, s.AllowsMutation(CollectionProjects, Ownership{TeamMembers: []string{"u-9", "u-2"}}))
	assert.False(t, s.AllowsMutation(CollectionProjects, Ownership{TeamMembers: []string{"u-9"}}))
	assert.False(t, s.AllowsMutation(CollectionLeads, Ownership{AssignedTo: "u-2"}))
}

func TestAllowsMutation_Customer(t *testing.T) {
	s := Scope{Role: user.RoleCustomer, UserID: "u-3", Email: "client@example.com"}

	assert.True(t, s.AllowsMutation(CollectionTickets, Ownership{CustomerID: "u-3"}))
	assert.False(t, s.AllowsMutation(CollectionTickets, Ownership{CustomerID: "u-8"}))
	assert.True(t, s.AllowsMutation(CollectionProjects, Ownership{ContactEmail: "client@example.com"}))
	assert.False(t, s.AllowsMutation(CollectionLeads, Ownership{AssignedTo: "u-3"}))
}

func TestAllowsMutation_AdminUnrestricted(t *testing.T) {
	s := Scope{Role: user.RoleAdmin, UserID: "u-0"}
	assert.True(t, s.AllowsMutation(CollectionLeads, Ownership{AssignedTo: "anybody"}))
}

func TestAllowsMutation_UnknownRole(t *testing.T) {
	s := Scope{Role: user.Role("intern"), UserID: "u-5"}
	assert.False(t, s.AllowsMutation(CollectionLeads, Ownership{AssignedTo: "u-5"}))
}

func TestDefaultAssignee(t *testing.T) {
	s := salesExec()
	assert.Equal(t, "u-1", s.DefaultAssignee(""))
	assert.Equal(t, "u-7", s.DefaultAssignee("u-7"))
}

func TestScopeFor(t *testing.T) {
	u := user.User{ID: "u-1", Email: "exec@example.com", Role: user.RoleSalesExecutive}
	s := ScopeFor(u)
	require.Equal(t, salesExec(), s)
}
