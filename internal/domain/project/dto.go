package project

import (
	"time"

	"github.com/optimacrm/crm-backend-go/internal/pkg/validator"
)

type CreateProjectRequest struct {
	Name         string     `json:"name"`
	Description  *string    `json:"description,omitempty"`
	AccountID    *string    `json:"account_id,omitempty"`
	ContactEmail string     `json:"contact_email"`
	TeamMembers  []string   `json:"team_members,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	AssignedTo   string     `json:"assigned_to,omitempty"`
}

func (r *CreateProjectRequest) Validate() error {
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
	if validator.IsEmpty(r.ContactEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "contact_email",
			Message: "contact_email is required",
		})
	} else if !validator.IsValidEmail(r.ContactEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "contact_email",
			Message: "contact_email must be a valid email address",
		})
	}
	for _, member := range r.TeamMembers {
		if !validator.IsValidUUID(member) {
			errs = append(errs, validator.ValidationError{
				Field:   "team_members",
				Message: "team_members must be valid UUIDs",
			})
			break
		}
	}
	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateProjectRequest struct {
	ID           string     `json:"-"`
	Name         *string    `json:"name,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Status       *Status    `json:"status,omitempty"`
	AccountID    *string    `json:"account_id,omitempty"`
	ContactEmail *string    `json:"contact_email,omitempty"`
	TeamMembers  *[]string  `json:"team_members,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	AssignedTo   *string    `json:"assigned_to,omitempty"`
}

func (r *UpdateProjectRequest) Validate() error {
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
	if r.Status != nil && !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: planned, active, on_hold, completed",
		})
	}
	if r.ContactEmail != nil && !validator.IsValidEmail(*r.ContactEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "contact_email",
			Message: "contact_email must be a valid email address",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListProjectsQuery struct {
	Status *Status
	Search string
	Page   int
	Limit  int
}

type ProjectResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description,omitempty"`
	Status       Status     `json:"status"`
	AccountID    *string    `json:"account_id,omitempty"`
	ContactEmail string     `json:"contact_email"`
	TeamMembers  []string   `json:"team_members"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	AssignedTo   string     `json:"assigned_to"`
	CreatedBy    string     `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func ToResponse(p Project) ProjectResponse {
	return ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Status:       p.Status,
		AccountID:    p.AccountID,
		ContactEmail: p.ContactEmail,
		TeamMembers:  p.TeamMembers,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		AssignedTo:   p.AssignedTo,
		CreatedBy:    p.CreatedBy,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ToResponses(projects []Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, ToResponse(p))
	}
	return out
}
