package task

import "time"

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

func (s Status) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Task is a work item, optionally attached to another record
// (related_type/related_id: lead, deal, project, ticket).
type Task struct {
	ID          string
	Title       string
	Description *string
	Status      Status
	DueDate     *time.Time
	RelatedType *string
	RelatedID   *string
	AssignedTo  string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
