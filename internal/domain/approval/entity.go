package approval

import "time"

// Status represents the state of an approval request
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request tracks the admission decision for one newly registered account.
// Exactly one pending request exists per unapproved account; a decision is
// terminal, there is no re-review.
type Request struct {
	ID            string
	UserID        string
	RequestedRole string
	Status        Status
	DecidedBy     *string
	DecidedAt     *time.Time
	Reason        *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPending checks if the request is still awaiting a decision
func (r *Request) IsPending() bool {
	return r.Status == StatusPending
}
