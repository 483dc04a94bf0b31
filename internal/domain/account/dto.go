package account

import (
	"time"

	"github.com/optimacrm/crm-backend-go/internal/pkg/validator"
)

type CreateAccountRequest struct {
	Name       string  `json:"name"`
	Industry   *string `json:"industry,omitempty"`
	Website    *string `json:"website,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	AssignedTo string  `json:"assigned_to,omitempty"`
}

func (r *CreateAccountRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAccountRequest struct {
	ID         string  `json:"-"`
	Name       *string `json:"name,omitempty"`
	Industry   *string `json:"industry,omitempty"`
	Website    *string `json:"website,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	AssignedTo *string `json:"assigned_to,omitempty"`
}

func (r *UpdateAccountRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAccountsQuery struct {
	Search string
	Page   int
	Limit  int
}

type AccountResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Industry   *string   `json:"industry,omitempty"`
	Website    *string   `json:"website,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	AssignedTo string    `json:"assigned_to"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToResponse(a Account) AccountResponse {
	return AccountResponse{
		ID:         a.ID,
		Name:       a.Name,
		Industry:   a.Industry,
		Website:    a.Website,
		Phone:      a.Phone,
		AssignedTo: a.AssignedTo,
		CreatedBy:  a.CreatedBy,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func ToResponses(accounts []Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, ToResponse(a))
	}
	return out
}
