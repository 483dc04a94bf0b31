package project

import "time"

type Status string

const (
	StatusPlanned   Status = "planned"
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
)

var Statuses = []Status{StatusPlanned, StatusActive, StatusOnHold, StatusCompleted}

func (s Status) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Project is a delivery engagement. TeamMembers carry the support agents
// collaborating on it; ContactEmail is how the customer sees their own
// projects in the portal.
type Project struct {
	ID           string
	Name         string
	Description  *string
	Status       Status
	AccountID    *string
	ContactEmail string
	TeamMembers  []string
	StartDate    *time.Time
	EndDate      *time.Time
	AssignedTo   string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
