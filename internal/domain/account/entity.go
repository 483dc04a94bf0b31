package account

import "time"

// Account is a customer organization (a CRM account, not a login account).
type Account struct {
	ID         string
	Name       string
	Industry   *string
	Website    *string
	Phone      *string
	AssignedTo string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
