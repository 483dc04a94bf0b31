package access

import (
	"testing"

	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every declared role/path pair must be allowed; every undeclared pair for a
// known role must be denied.
func TestIsPathAllowed_ExhaustiveTable(t *testing.T) {
	// Universe of every path any role declares
	universe := map[string]bool{}
	for _, paths := range RolePaths {
		for _, p := range paths {
			universe[p] = true
		}
	}

	for role, declared := range RolePaths {
		declaredSet := map[string]bool{}
		for _, p := range declared {
			declaredSet[p] = true
			assert.True(t, IsPathAllowed(role, p), "role %s should access declared path %s", role, p)
		}
		for p := range universe {
			if !declaredSet[p] {
				assert.False(t, IsPathAllowed(role, p), "role %s should not access undeclared path %s", role, p)
			}
		}
	}
}

func TestIsPathAllowed_UnknownRole(t *testing.T) {
	for _, paths := range RolePaths {
		for _, p := range paths {
			assert.False(t, IsPathAllowed(user.Role("intern"), p))
			assert.False(t, IsPathAllowed(user.Role(""), p))
		}
	}
}

func TestIsPathAllowed_SupportAgentHasNoLeads(t *testing.T) {
	assert.False(t, IsPathAllowed(user.RoleSupportAgent, "/leads"))
}

func TestIsPathAllowed_LiteralMatchOnly(t *testing.T) {
	assert.True(t, IsPathAllowed(user.RoleSalesExecutive, "/leads"))
	assert.False(t, IsPathAllowed(user.RoleSalesExecutive, "/leads/"))
	assert.False(t, IsPathAllowed(user.RoleSalesExecutive, "/Leads"))
	assert.False(t, IsPathAllowed(user.RoleSalesExecutive, "/leads?page=2"))
	assert.False(t, IsPathAllowed(user.RoleSalesExecutive, "/leads/123"))
}

func TestAllowedPaths_PreservesDeclarationOrder(t *testing.T) {
	paths := AllowedPaths(user.RoleCustomer)
	require.Equal(t, []string{NoAccessPath, "/tickets", "/projects"}, paths)

	// Returned slice is a copy; mutating it must not corrupt the table
	paths[0] = "/hacked"
	assert.Equal(t, NoAccessPath, RolePaths[user.RoleCustomer][0])
}

func TestAllowedPaths_UnknownRole(t *testing.T) {
	assert.Nil(t, AllowedPaths(user.Role("intern")))
}

func TestDefaultLandingPath(t *testing.T) {
	landing, ok := DefaultLandingPath(user.RoleCustomer)
	require.True(t, ok)
	assert.Equal(t, "/tickets", landing, "sentinel must be skipped")

	for _, role := range user.Roles {
		landing, ok := DefaultLandingPath(role)
		require.True(t, ok, "role %s has no landing page", role)
		assert.NotEqual(t, NoAccessPath, landing)
	}

	_, ok = DefaultLandingPath(user.Role("intern"))
	assert.False(t, ok)
}

// The role sets are declared independently, but the sales line is intended
// to nest. This guards against one list drifting when edited.
func TestRolePaths_HierarchyConsistency(t *testing.T) {
	subsetOf := func(narrow, wide user.Role) {
		t.Helper()
		wideSet := map[string]bool{}
		for _, p := range RolePaths[wide] {
			wideSet[p] = true
		}
		for _, p := range RolePaths[narrow] {
			if p == NoAccessPath {
				continue
			}
			assert.True(t, wideSet[p], "path %s of %s missing from %s", p, narrow, wide)
		}
	}

	subsetOf(user.RoleAdmin, user.RoleSuperAdmin)
	subsetOf(user.RoleSalesManager, user.RoleAdmin)
	subsetOf(user.RoleSalesExecutive, user.RoleSalesManager)
	subsetOf(user.RoleSupportAgent, user.RoleAdmin)
	subsetOf(user.RoleCustomer, user.RoleAdmin)
}

func TestRolePaths_EveryRoleDeclared(t *testing.T) {
	for _, role := range user.Roles {
		paths, ok := RolePaths[role]
		require.True(t, ok, "role %s missing from table", role)
		assert.NotEmpty(t, paths)
	}
}
