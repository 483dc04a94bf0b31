package middleware

import (
	"net/http"
	"strings"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/response"
)

// PathGuard rejects structurally unsafe request paths before any routing or
// authorization logic sees them. It inspects both the escaped and the decoded
// form, so traversal sequences cannot hide behind percent-encoding (%2e%2e,
// %5C) or be normalized away first.
func PathGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if unsafePath(r.URL.EscapedPath()) || unsafePath(r.URL.Path) {
			response.HandleError(w, access.ErrPathUnsafe)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func unsafePath(path string) bool {
	return strings.Contains(path, "..") ||
		strings.Contains(path, "\\") ||
		strings.Contains(path, "//")
}
