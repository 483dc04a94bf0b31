package deal

import (
	"time"

	"github.com/optimacrm/crm-backend-go/internal/pkg/validator"
)

type CreateDealRequest struct {
	Title             string     `json:"title"`
	Value             float64    `json:"value"`
	AccountID         *string    `json:"account_id,omitempty"`
	ContactID         *string    `json:"contact_id,omitempty"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	AssignedTo        string     `json:"assigned_to,omitempty"`
}

func (r *CreateDealRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}
	if r.Value < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "value",
			Message: "value must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateDealRequest struct {
	ID                string     `json:"-"`
	Title             *string    `json:"title,omitempty"`
	Value             *float64   `json:"value,omitempty"`
	Stage             *Stage     `json:"stage,omitempty"`
	AccountID         *string    `json:"account_id,omitempty"`
	ContactID         *string    `json:"contact_id,omitempty"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	AssignedTo        *string    `json:"assigned_to,omitempty"`
}

func (r *UpdateDealRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not be empty",
		})
	}
	if r.Value != nil && *r.Value < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "value",
			Message: "value must not be negative",
		})
	}
	if r.Stage != nil && !r.Stage.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "stage",
			Message: "stage must be one of: prospecting, proposal, negotiation, won, lost",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListDealsQuery struct {
	Stage  *Stage
	Search string
	Page   int
	Limit  int
}

type DealResponse struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Value             float64    `json:"value"`
	Stage             Stage      `json:"stage"`
	AccountID         *string    `json:"account_id,omitempty"`
	ContactID         *string    `json:"contact_id,omitempty"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	AssignedTo        string     `json:"assigned_to"`
	CreatedBy         string     `json:"created_by"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func ToResponse(d Deal) DealResponse {
	return DealResponse{
		ID:                d.ID,
		Title:             d.Title,
		Value:             d.Value,
		Stage:             d.Stage,
		AccountID:         d.AccountID,
		ContactID:         d.ContactID,
		ExpectedCloseDate: d.ExpectedCloseDate,
		AssignedTo:        d.AssignedTo,
		CreatedBy:         d.CreatedBy,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func ToResponses(deals []Deal) []DealResponse {
	out := make([]DealResponse, 0, len(deals))
	for _, d := range deals {
		out = append(out, ToResponse(d))
	}
	return out
}
