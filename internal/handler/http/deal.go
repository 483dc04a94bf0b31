package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/deal"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/middleware"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/response"
)

type DealHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type DealHandlerImpl struct {
	dealService deal.DealService
}

func NewDealHandler(dealService deal.DealService) DealHandler {
	return &DealHandlerImpl{dealService: dealService}
}

// List implements DealHandler.
func (h *DealHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	page, limit := parsePagination(r)
	query := deal.ListDealsQuery{
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	}
	if stageParam := r.URL.Query().Get("stage"); stageParam != "" {
		stage := deal.Stage(stageParam)
		if !stage.IsValid() {
			response.BadRequest(w, "Unknown stage filter", nil)
			return
		}
		query.Stage = &stage
	}

	deals, total, err := h.dealService.List(r.Context(), scope, query)
	if err != nil {
		slog.Error("List deals service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, deals, paginationMeta(page, limit, total))
}

// Get implements DealHandler.
func (h *DealHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	found, err := h.dealService.Get(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Create implements DealHandler.
func (h *DealHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var createReq deal.CreateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.dealService.Create(r.Context(), scope, createReq)
	if err != nil {
		slog.Error("Create deal service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Deal created successfully", created)
}

// Update implements DealHandler.
func (h *DealHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var updateReq deal.UpdateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")
	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.dealService.Update(r.Context(), scope, updateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Deal updated successfully", updated)
}

// Delete implements DealHandler.
func (h *DealHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	if err := h.dealService.Delete(r.Context(), scope, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Deal deleted successfully", nil)
}
