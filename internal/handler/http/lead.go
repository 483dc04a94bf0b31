package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/lead"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/middleware"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/response"
)

type LeadHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Convert(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type LeadHandlerImpl struct {
	leadService lead.LeadService
}

func NewLeadHandler(leadService lead.LeadService) LeadHandler {
	return &LeadHandlerImpl{leadService: leadService}
}

// List implements LeadHandler.
func (h *LeadHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	page, limit := parsePagination(r)
	query := lead.ListLeadsQuery{
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	}
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := lead.Status(statusParam)
		if !status.IsValid() {
			response.BadRequest(w, "Unknown status filter", nil)
			return
		}
		query.Status = &status
	}

	leads, total, err := h.leadService.List(r.Context(), scope, query)
	if err != nil {
		slog.Error("List leads service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, leads, paginationMeta(page, limit, total))
}

// Get implements LeadHandler.
func (h *LeadHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	found, err := h.leadService.Get(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Create implements LeadHandler.
func (h *LeadHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var createReq lead.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.leadService.Create(r.Context(), scope, createReq)
	if err != nil {
		slog.Error("Create lead service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Lead created successfully", created)
}

// Update implements LeadHandler.
func (h *LeadHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var updateReq lead.UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")
	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.leadService.Update(r.Context(), scope, updateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lead updated successfully", updated)
}

// Delete implements LeadHandler.
func (h *LeadHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	if err := h.leadService.Delete(r.Context(), scope, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Lead deleted successfully", nil)
}

// Convert implements LeadHandler.
func (h *LeadHandlerImpl) Convert(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	converted, err := h.leadService.Convert(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Convert lead service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Lead converted to contact", converted)
}

// Export implements LeadHandler.
func (h *LeadHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	data, err := h.leadService.ExportCSV(r.Context(), scope)
	if err != nil {
		slog.Error("Export leads service error", "error", err)
		response.HandleError(w, err)
		return
	}

	filename := "leads-" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
