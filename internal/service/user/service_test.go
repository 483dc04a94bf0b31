package user

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	created     *user.User
	roleUpdates map[string]user.Role
	deleted     []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{roleUpdates: map[string]user.Role{}}
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{}, pgx.ErrNoRows
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	newUser.ID = "user-new"
	r.created = &newUser
	return newUser, nil
}

func (r *fakeUserRepo) List(ctx context.Context, query user.ListUsersQuery) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	return user.User{}, pgx.ErrNoRows
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id string, role user.Role) error {
	r.roleUpdates[id] = role
	return nil
}

func (r *fakeUserRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

func (r *fakeUserRepo) Approve(ctx context.Context, id string, approvedBy string, approvedAt time.Time) error {
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	return user.User{}, pgx.ErrNoRows
}

func adminActor() user.User {
	return user.User{ID: "admin-1", Role: user.RoleAdmin, IsActive: true, IsApproved: true}
}

func TestUserService_Create_RequiresAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(nil, repo)

	actor := user.User{ID: "exec-1", Role: user.RoleSalesExecutive}
	_, err := service.Create(context.Background(), actor, user.CreateUserRequest{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "password123",
		Role:     user.RoleSalesExecutive,
	})

	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
	assert.Nil(t, repo.created)
}

func TestUserService_Create_OnlySuperAdminMintsAdmins(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(nil, repo)

	_, err := service.Create(context.Background(), adminActor(), user.CreateUserRequest{
		Name:     "Aspiring Admin",
		Email:    "admin2@example.com",
		Password: "password123",
		Role:     user.RoleAdmin,
	})

	assert.ErrorIs(t, err, user.ErrRoleNotAllowed)
}

func TestUserService_Create_SuperAdminMintsAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(nil, repo)

	actor := user.User{ID: "super-1", Role: user.RoleSuperAdmin}
	created, err := service.Create(context.Background(), actor, user.CreateUserRequest{
		Name:     "Second Admin",
		Email:    "admin2@example.com",
		Password: "password123",
		Role:     user.RoleAdmin,
	})

	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, created.Role)
}

func TestUserService_Create_ApprovedImmediately(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(nil, repo)

	created, err := service.Create(context.Background(), adminActor(), user.CreateUserRequest{
		Name:     "New Exec",
		Email:    "exec@example.com",
		Password: "password123",
		Role:     user.RoleSalesExecutive,
	})

	require.NoError(t, err)
	assert.True(t, created.IsApproved)
	require.NotNil(t, repo.created)
	require.NotNil(t, repo.created.ApprovedBy)
	assert.Equal(t, "admin-1", *repo.created.ApprovedBy)
	assert.NotNil(t, repo.created.ApprovedAt)
	assert.NotNil(t, repo.created.PasswordHash)
	assert.NotEqual(t, "password123", *repo.created.PasswordHash)
}

func TestUserService_UpdateRole_CannotModifySelf(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(nil, repo)

	actor := adminActor()
	err := service.UpdateRole(context.Background(), actor, user.UpdateUserRoleRequest{
		ID:   actor.ID,
		Role: user.RoleCustomer,
	})

	assert.ErrorIs(t, err, user.ErrCannotModifySelf)
	assert.Empty(t, repo.roleUpdates)
}

func TestUserService_UpdateRole_AdminCannotPromoteToAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(nil, repo)

	err := service.UpdateRole(context.Background(), adminActor(), user.UpdateUserRoleRequest{
		ID:   "user-2",
		Role: user.RoleSuperAdmin,
	})

	assert.ErrorIs(t, err, user.ErrRoleNotAllowed)
}

func TestUserService_SetActive_CannotDeactivateSelf(t *testing.T) {
	service := NewUserService(nil, newFakeUserRepo())

	actor := adminActor()
	err := service.SetActive(context.Background(), actor, user.SetUserActiveRequest{
		ID:       actor.ID,
		IsActive: false,
	})

	assert.ErrorIs(t, err, user.ErrCannotModifySelf)
}

func TestUserService_Delete_CannotDeleteSelf(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(nil, repo)

	actor := adminActor()
	err := service.Delete(context.Background(), actor, actor.ID)

	assert.ErrorIs(t, err, user.ErrCannotModifySelf)
	assert.Empty(t, repo.deleted)
}
