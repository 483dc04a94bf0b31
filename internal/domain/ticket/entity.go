package ticket

import "time"

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

func (s Status) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) IsValid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// Ticket is a support request. CustomerID is the portal user who raised
// it; TeamMembers carry the support agents working it alongside the
// assignee.
type Ticket struct {
	ID          string
	Subject     string
	Description *string
	Status      Status
	Priority    Priority
	CustomerID  string
	TeamMembers []string
	AssignedTo  string
	CreatedBy   string
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t Ticket) IsOpen() bool {
	return t.Status == StatusOpen || t.Status == StatusInProgress
}
