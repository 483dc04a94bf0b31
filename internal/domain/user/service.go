package user

import "context"

type UserService interface {
	List(ctx context.Context, query ListUsersQuery) ([]UserResponse, int64, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	// Create is the administrative path: the account is approved on the spot
	// and stamped with the acting admin.
	Create(ctx context.Context, actor User, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	UpdateRole(ctx context.Context, actor User, req UpdateUserRoleRequest) error
	SetActive(ctx context.Context, actor User, req SetUserActiveRequest) error
	Delete(ctx context.Context, actor User, id string) error
}
