package response

import (
	"errors"
	"net/http"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/account"
	"github.com/optimacrm/crm-backend-go/internal/domain/approval"
	"github.com/optimacrm/crm-backend-go/internal/domain/auth"
	"github.com/optimacrm/crm-backend-go/internal/domain/contact"
	"github.com/optimacrm/crm-backend-go/internal/domain/deal"
	"github.com/optimacrm/crm-backend-go/internal/domain/lead"
	"github.com/optimacrm/crm-backend-go/internal/domain/project"
	"github.com/optimacrm/crm-backend-go/internal/domain/task"
	"github.com/optimacrm/crm-backend-go/internal/domain/ticket"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/optimacrm/crm-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, auth.ErrAccountDeactivated):
		Unauthorized(w, "ACCOUNT_DEACTIVATED", "Account has been deactivated")
	case errors.Is(err, auth.ErrAccountPendingApproval):
		Unauthorized(w, "ACCOUNT_PENDING_APPROVAL", "Account is awaiting administrator approval")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "UNAUTHENTICATED", "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "UNAUTHENTICATED", "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "UNAUTHENTICATED", "Refresh token revoked")
	case errors.Is(err, auth.ErrGoogleEmailUnverified):
		Forbidden(w, "EMAIL_UNVERIFIED", "Google account email is not verified")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Access control errors
	case errors.Is(err, access.ErrPathForbidden):
		Forbidden(w, "PATH_FORBIDDEN", "Role has no access to this page")
	case errors.Is(err, access.ErrRoleForbidden):
		Forbidden(w, "ROLE_FORBIDDEN", "Role may not perform this action")
	case errors.Is(err, access.ErrPathUnsafe):
		BadRequest(w, "Malformed request path", map[string]string{"path": "PATH_UNSAFE"})
	case errors.Is(err, access.ErrOwnershipViolation):
		Forbidden(w, "OWNERSHIP_VIOLATION", "Record belongs to someone else")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailAlreadyRegistered):
		Conflict(w, "DUPLICATE_IDENTITY", "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "NOT_PRIVILEGED", "Administrator privilege required")
	case errors.Is(err, user.ErrRoleNotAllowed):
		Forbidden(w, "ROLE_FORBIDDEN", "Role not permitted for this operation")
	case errors.Is(err, user.ErrCannotModifySelf):
		Conflict(w, "CANNOT_MODIFY_SELF", "Administrators cannot deactivate or delete their own account")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Unknown role", nil)

	// Approval domain errors
	case errors.Is(err, approval.ErrRequestNotFound):
		NotFound(w, "Approval request not found")
	case errors.Is(err, approval.ErrNotPrivileged):
		Forbidden(w, "NOT_PRIVILEGED", "Only administrators may decide approvals")
	case errors.Is(err, approval.ErrAlreadyDecided):
		Conflict(w, "ALREADY_DECIDED", "Approval request has already been decided")

	// Record domain errors
	case errors.Is(err, lead.ErrLeadNotFound):
		NotFound(w, "Lead not found")
	case errors.Is(err, lead.ErrLeadAlreadyConverted):
		Conflict(w, "ALREADY_CONVERTED", "Lead has already been converted")
	case errors.Is(err, contact.ErrContactNotFound):
		NotFound(w, "Contact not found")
	case errors.Is(err, account.ErrAccountNotFound):
		NotFound(w, "Account not found")
	case errors.Is(err, deal.ErrDealNotFound):
		NotFound(w, "Deal not found")
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, ticket.ErrTicketNotFound):
		NotFound(w, "Ticket not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
