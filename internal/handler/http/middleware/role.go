package middleware

import (
	"net/http"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/response"
)

// AdminOnly requires an administrative role.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
			return
		}
		if !identity.IsAdmin() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRoles allows only the named roles through.
func RequireRoles(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
				return
			}

			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.HandleError(w, access.ErrRoleForbidden)
		})
	}
}

// RequirePage gates a route group behind the role-to-page table. The page
// argument is the frontend path the group serves; a role whose allowed paths
// do not literally contain it is refused.
func RequirePage(page string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
				return
			}

			if !access.IsPathAllowed(identity.Role, page) {
				response.HandleError(w, access.ErrPathForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
