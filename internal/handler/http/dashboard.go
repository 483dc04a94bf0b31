package http

import (
	"log/slog"
	"net/http"

	"github.com/optimacrm/crm-backend-go/internal/domain/dashboard"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/middleware"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// Summary implements DashboardHandler.
func (h *DashboardHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	summary, err := h.dashboardService.Summary(r.Context(), scope)
	if err != nil {
		slog.Error("Dashboard summary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
