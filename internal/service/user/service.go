package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

const uniqueViolation = "23505"

type UserServiceImpl struct {
	db *database.DB
	user.UserRepository
}

func NewUserService(db *database.DB, userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		db:             db,
		UserRepository: userRepository,
	}
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, query user.ListUsersQuery) ([]user.UserResponse, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}

	users, total, err := s.UserRepository.List(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return user.ToResponses(users), total, nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	found, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user.ToResponse(found), nil
}

// Create implements user.UserService. Admin-created accounts skip the
// approval queue and are stamped approved by the acting admin.
func (s *UserServiceImpl) Create(ctx context.Context, actor user.User, req user.CreateUserRequest) (user.UserResponse, error) {
	if !actor.IsAdmin() {
		return user.UserResponse{}, user.ErrAdminPrivilegeRequired
	}
	// Only a super admin may mint another admin account.
	if (req.Role == user.RoleAdmin || req.Role == user.RoleSuperAdmin) && actor.Role != user.RoleSuperAdmin {
		return user.UserResponse{}, user.ErrRoleNotAllowed
	}

	exists, err := s.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return user.UserResponse{}, user.ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	now := time.Now()
	created, err := s.UserRepository.Create(ctx, user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hashed,
		Role:         req.Role,
		IsActive:     true,
		IsApproved:   true,
		ApprovedBy:   &actor.ID,
		ApprovedAt:   &now,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.UserResponse{}, user.ErrEmailAlreadyRegistered
		}
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user.ToResponse(created), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	updated, err := s.UserRepository.Update(ctx, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.UserResponse{}, user.ErrEmailAlreadyRegistered
		}
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user.ToResponse(updated), nil
}

// UpdateRole implements user.UserService.
func (s *UserServiceImpl) UpdateRole(ctx context.Context, actor user.User, req user.UpdateUserRoleRequest) error {
	if !actor.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}
	if actor.ID == req.ID {
		return user.ErrCannotModifySelf
	}
	if (req.Role == user.RoleAdmin || req.Role == user.RoleSuperAdmin) && actor.Role != user.RoleSuperAdmin {
		return user.ErrRoleNotAllowed
	}

	if err := s.UserRepository.UpdateRole(ctx, req.ID, req.Role); err != nil {
		return err
	}
	return nil
}

// SetActive implements user.UserService.
func (s *UserServiceImpl) SetActive(ctx context.Context, actor user.User, req user.SetUserActiveRequest) error {
	if !actor.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}
	if actor.ID == req.ID && !req.IsActive {
		return user.ErrCannotModifySelf
	}

	if err := s.UserRepository.SetActive(ctx, req.ID, req.IsActive); err != nil {
		return err
	}
	return nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, actor user.User, id string) error {
	if !actor.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}
	if actor.ID == id {
		return user.ErrCannotModifySelf
	}

	if err := s.UserRepository.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}
