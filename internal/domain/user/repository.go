package user

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, newUser User) (User, error)
	List(ctx context.Context, query ListUsersQuery) ([]User, int64, error)
	Update(ctx context.Context, req UpdateUserRequest) (User, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	SetActive(ctx context.Context, id string, active bool) error
	// Approve stamps is_approved, approved_by and approved_at in one update.
	Approve(ctx context.Context, id string, approvedBy string, approvedAt time.Time) error
	Delete(ctx context.Context, id string) error
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
}
