package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/account"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/middleware"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/response"
)

type AccountHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type AccountHandlerImpl struct {
	accountService account.AccountService
}

func NewAccountHandler(accountService account.AccountService) AccountHandler {
	return &AccountHandlerImpl{accountService: accountService}
}

// List implements AccountHandler.
func (h *AccountHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	page, limit := parsePagination(r)
	query := account.ListAccountsQuery{
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	}

	accounts, total, err := h.accountService.List(r.Context(), scope, query)
	if err != nil {
		slog.Error("List accounts service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, accounts, paginationMeta(page, limit, total))
}

// Get implements AccountHandler.
func (h *AccountHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	found, err := h.accountService.Get(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Create implements AccountHandler.
func (h *AccountHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var createReq account.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.accountService.Create(r.Context(), scope, createReq)
	if err != nil {
		slog.Error("Create account service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Account created successfully", created)
}

// Update implements AccountHandler.
func (h *AccountHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var updateReq account.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")
	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.accountService.Update(r.Context(), scope, updateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Account updated successfully", updated)
}

// Delete implements AccountHandler.
func (h *AccountHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	scope, ok := middleware.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	if err := h.accountService.Delete(r.Context(), scope, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Account deleted successfully", nil)
}
