package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/contact"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/middleware"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/response"
)

type ContactHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type ContactHandlerImpl struct {
	contactService contact.ContactService
}

func NewContactHandler(contactService contact.ContactService) ContactHandler {
	return &ContactHandlerImpl{contactService: contactService}
}

// List implements ContactHandler.
func (h *ContactHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	page, limit := parsePagination(r)
	query := contact.ListContactsQuery{
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	}
	if accountID := r.URL.Query().Get("account_id"); accountID != "" {
		query.AccountID = &accountID
	}

	contacts, total, err := h.contactService.List(r.Context(), scope, query)
	if err != nil {
		slog.Error("List contacts service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, contacts, paginationMeta(page, limit, total))
}

// Get implements ContactHandler.
func (h *ContactHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	found, err := h.contactService.Get(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Create implements ContactHandler.
func (h *ContactHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var createReq contact.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.contactService.Create(r.Context(), scope, createReq)
	if err != nil {
		slog.Error("Create contact service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Contact created successfully", created)
}

// Update implements ContactHandler.
func (h *ContactHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var updateReq contact.UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")
	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.contactService.Update(r.Context(), scope, updateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contact updated successfully", updated)
}

// Delete implements ContactHandler.
func (h *ContactHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	if err := h.contactService.Delete(r.Context(), scope, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contact deleted successfully", nil)
}
