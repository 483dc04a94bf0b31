package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func withIdentity(r *http.Request, u user.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, u))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestPathGuard(t *testing.T) {
	cases := []struct {
		name    string
		target  string
		allowed bool
	}{
		{"plain path", "/api/v1/leads", true},
		{"nested resource", "/api/v1/leads/123/convert", true},
		{"dot dot traversal", "/api/v1/../admin", false},
		{"double slash", "/api/v1//leads", false},
		{"backslash", `/api/v1/\leads`, false},
		{"encoded backslash", "/api/v1/%5Cleads", false},
		{"encoded dot dot", "/api/v1/%2e%2e/admin", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)

			PathGuard(okHandler(&called)).ServeHTTP(rec, req)

			if tc.allowed {
				assert.True(t, called)
				assert.Equal(t, http.StatusOK, rec.Code)
			} else {
				assert.False(t, called)
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	cases := []struct {
		role    user.Role
		allowed bool
	}{
		{user.RoleSuperAdmin, true},
		{user.RoleAdmin, true},
		{user.RoleSalesManager, false},
		{user.RoleSalesExecutive, false},
		{user.RoleSupportAgent, false},
		{user.RoleCustomer, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			called := false
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
			req = withIdentity(req, user.User{ID: "u-1", Role: tc.role})

			AdminOnly(okHandler(&called)).ServeHTTP(rec, req)

			if tc.allowed {
				assert.True(t, called)
			} else {
				assert.False(t, called)
				assert.Equal(t, http.StatusForbidden, rec.Code)
				resp := decodeError(t, rec)
				require.NotNil(t, resp.Error)
				assert.Equal(t, "NOT_PRIVILEGED", resp.Error.Code)
			}
		})
	}
}

func TestAdminOnly_NoIdentity(t *testing.T) {
	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)

	AdminOnly(okHandler(&called)).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePage(t *testing.T) {
	cases := []struct {
		name    string
		role    user.Role
		page    string
		allowed bool
	}{
		{"customer on tickets", user.RoleCustomer, "/tickets", true},
		{"customer on leads", user.RoleCustomer, "/leads", false},
		{"executive on leads", user.RoleSalesExecutive, "/leads", true},
		{"executive on users", user.RoleSalesExecutive, "/users", false},
		{"support agent on tickets", user.RoleSupportAgent, "/tickets", true},
		{"support agent on deals", user.RoleSupportAgent, "/deals", false},
		{"admin on users", user.RoleAdmin, "/users", true},
		{"unknown role", user.Role("intruder"), "/dashboard", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1"+tc.page, nil)
			req = withIdentity(req, user.User{ID: "u-1", Role: tc.role})

			RequirePage(tc.page)(okHandler(&called)).ServeHTTP(rec, req)

			if tc.allowed {
				assert.True(t, called)
			} else {
				assert.False(t, called)
				assert.Equal(t, http.StatusForbidden, rec.Code)
				resp := decodeError(t, rec)
				require.NotNil(t, resp.Error)
				assert.Equal(t, "PATH_FORBIDDEN", resp.Error.Code)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil)
	req = withIdentity(req, user.User{ID: "u-1", Role: user.RoleSupportAgent})

	RequireRoles(user.RoleSalesManager, user.RoleSalesExecutive)(okHandler(&called)).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeError(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ROLE_FORBIDDEN", resp.Error.Code)
}

func TestIdentityRoundTrip(t *testing.T) {
	identity := user.User{ID: "u-1", Email: "u@example.com", Role: user.RoleSalesExecutive}
	ctx := context.WithValue(context.Background(), identityKey, identity)

	got, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, identity, got)

	scope, ok := ScopeFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u-1", scope.UserID)
	assert.Equal(t, user.RoleSalesExecutive, scope.Role)

	_, ok = IdentityFromContext(context.Background())
	assert.False(t, ok)
}
