package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/optimacrm/crm-backend-go/internal/domain/access"
	"github.com/optimacrm/crm-backend-go/internal/domain/approval"
	"github.com/optimacrm/crm-backend-go/internal/domain/auth"
	"github.com/optimacrm/crm-backend-go/internal/domain/lead"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/optimacrm/crm-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_ErrorCodes(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"deactivated", auth.ErrAccountDeactivated, http.StatusUnauthorized, "ACCOUNT_DEACTIVATED"},
		{"pending approval", auth.ErrAccountPendingApproval, http.StatusUnauthorized, "ACCOUNT_PENDING_APPROVAL"},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"path forbidden", access.ErrPathForbidden, http.StatusForbidden, "PATH_FORBIDDEN"},
		{"ownership violation", access.ErrOwnershipViolation, http.StatusForbidden, "OWNERSHIP_VIOLATION"},
		{"duplicate email", user.ErrEmailAlreadyRegistered, http.StatusConflict, "DUPLICATE_IDENTITY"},
		{"cannot modify self", user.ErrCannotModifySelf, http.StatusConflict, "CANNOT_MODIFY_SELF"},
		{"not privileged", approval.ErrNotPrivileged, http.StatusForbidden, "NOT_PRIVILEGED"},
		{"already decided", approval.ErrAlreadyDecided, http.StatusConflict, "ALREADY_DECIDED"},
		{"already converted", lead.ErrLeadAlreadyConverted, http.StatusConflict, "ALREADY_CONVERTED"},
		{"lead not found", lead.ErrLeadNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}
}

func TestHandleError_WrappedErrorStillMatches(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.Join(errors.New("context"), lead.ErrLeadNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleError_ValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "password", Message: "password is required"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "email is required", resp.Error.Details["email"])
	assert.Equal(t, "password is required", resp.Error.Details["password"])
}
