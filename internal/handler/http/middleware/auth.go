package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/auth"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/response"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthRequired verifies the access token and resolves the caller's account
// from the store on every request. Deactivation and approval state are
// re-checked here, so a revoked account loses access on its next request
// even while holding a valid token.
func AuthRequired(ja *jwtauth.JWTAuth, userRepository user.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, "UNAUTHENTICATED", err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			identity, err := userRepository.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					response.HandleError(w, auth.ErrInvalidToken)
					return
				}
				response.HandleError(w, err)
				return
			}

			if !identity.IsActive {
				response.HandleError(w, auth.ErrAccountDeactivated)
				return
			}
			if identity.RequiresApproval() && !identity.IsApproved {
				response.HandleError(w, auth.ErrAccountPendingApproval)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// IdentityFromContext returns the account resolved by AuthRequired.
func IdentityFromContext(ctx context.Context) (user.User, bool) {
	identity, ok := ctx.Value(identityKey).(user.User)
	return identity, ok
}

// ScopeFromContext derives the ownership scope of the current caller.
func ScopeFromContext(ctx context.Context) (access.Scope, bool) {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return access.Scope{}, false
	}
	return access.ScopeFor(identity), true
}
