package contact

import "time"

type Contact struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Phone      *string
	Title      *string
	AccountID  *string
	AssignedTo string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
