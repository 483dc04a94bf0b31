package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/approval"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/middleware"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/response"
)

type ApprovalHandler interface {
	ListPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type ApprovalHandlerImpl struct {
	approvalService approval.ApprovalService
}

func NewApprovalHandler(approvalService approval.ApprovalService) ApprovalHandler {
	return &ApprovalHandlerImpl{approvalService: approvalService}
}

// ListPending implements ApprovalHandler.
func (h *ApprovalHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.approvalService.ListPending(r.Context())
	if err != nil {
		slog.Error("List pending approvals service error", "error", err)
		response.HandleError(w, err)
		return
	}
	if pending == nil {
		pending = []approval.RequestResponse{}
	}

	response.Success(w, pending)
}

// Approve implements ApprovalHandler.
func (h *ApprovalHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	if err := h.approvalService.Approve(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		slog.Error("Approve request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Registration approved", "request_id", chi.URLParam(r, "id"), "decided_by", actor.ID)
	response.SuccessWithMessage(w, "Registration approved", nil)
}

// Reject implements ApprovalHandler.
func (h *ApprovalHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var rejectReq approval.RejectRequest
	if r.Body != nil {
		// A bare reject with no body is fine; reason is optional.
		_ = json.NewDecoder(r.Body).Decode(&rejectReq)
	}
	rejectReq.ID = chi.URLParam(r, "id")
	if err := rejectReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.approvalService.Reject(r.Context(), actor, rejectReq); err != nil {
		slog.Error("Reject request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Registration rejected", "request_id", rejectReq.ID, "decided_by", actor.ID)
	response.SuccessWithMessage(w, "Registration rejected", nil)
}
