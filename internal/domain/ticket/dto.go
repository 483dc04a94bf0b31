package ticket

import (
	"time"

	"github.com/optimacrm/crm-backend-go/internal/pkg/validator"
)

type CreateTicketRequest struct {
	Subject     string    `json:"subject"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	CustomerID  string    `json:"customer_id,omitempty"`
	TeamMembers []string  `json:"team_members,omitempty"`
	AssignedTo  string    `json:"assigned_to,omitempty"`
}

func (r *CreateTicketRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Subject) {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "subject is required",
		})
	}
	if len(r.Subject) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "subject must not exceed 255 characters",
		})
	}
	if r.Priority != nil && !r.Priority.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, medium, high, urgent",
		})
	}
	if !validator.IsEmpty(r.CustomerID) && !validator.IsValidUUID(r.CustomerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "customer_id",
			Message: "customer_id must be a valid UUID",
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateTicketRequest struct {
	ID          string    `json:"-"`
	Subject     *string   `json:"subject,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	TeamMembers *[]string `json:"team_members,omitempty"`
	AssignedTo  *string   `json:"assigned_to,omitempty"`
}

func (r *UpdateTicketRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Subject != nil && validator.IsEmpty(*r.Subject) {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "subject must not be empty",
		})
	}
	if r.Status != nil && !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: open, in_progress, resolved, closed",
		})
	}
	if r.Priority != nil && !r.Priority.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, medium, high, urgent",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListTicketsQuery struct {
	Status   *Status
	Priority *Priority
	Search   string
	Page     int
	Limit    int
}

type TicketResponse struct {
	ID          string     `json:"id"`
	Subject     string     `json:"subject"`
	Description *string    `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	CustomerID  string     `json:"customer_id"`
	TeamMembers []string   `json:"team_members"`
	AssignedTo  string     `json:"assigned_to"`
	CreatedBy   string     `json:"created_by"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToResponse(t Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		Subject:     t.Subject,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		CustomerID:  t.CustomerID,
		TeamMembers: t.TeamMembers,
		AssignedTo:  t.AssignedTo,
		CreatedBy:   t.CreatedBy,
		ResolvedAt:  t.ResolvedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToResponses(tickets []Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ToResponse(t))
	}
	return out
}
