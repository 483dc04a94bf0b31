package approval

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/optimacrm/crm-backend-go/internal/domain/approval"
	"github.com/optimacrm/crm-backend-go/internal/domain/auth"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	pkgjwt "github.com/optimacrm/crm-backend-go/internal/pkg/jwt"
	serviceAuth "github.com/optimacrm/crm-backend-go/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeTx satisfies pgx.Tx so transactional service paths can run without a
// database. The services only Commit or Rollback; queries inside the
// transaction go through the repository fakes.
type fakeTx struct{}

func (fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }
func (fakeTx) Commit(ctx context.Context) error          { return nil }
func (fakeTx) Rollback(ctx context.Context) error        { return nil }
func (fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (fakeTx) Conn() *pgx.Conn                                               { return nil }

type fakeTxBeginner struct{}

func (fakeTxBeginner) BeginTx(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

type fakeApprovalRepo struct {
	request       approval.Request
	getErr        error
	decided       bool
	decidedStatus approval.Status
	decidedBy     string
	reason        *string
}

func (r *fakeApprovalRepo) Create(ctx context.Context, req approval.Request) (approval.Request, error) {
	req.ID = "req-1"
	return req, nil
}

func (r *fakeApprovalRepo) GetByID(ctx context.Context, id string) (approval.Request, error) {
	if r.getErr != nil {
		return approval.Request{}, r.getErr
	}
	return r.request, nil
}

func (r *fakeApprovalRepo) ListPending(ctx context.Context) ([]approval.RequestResponse, error) {
	return nil, nil
}

func (r *fakeApprovalRepo) Decide(ctx context.Context, id string, status approval.Status, decidedBy string, decidedAt time.Time, reason *string) error {
	r.decided = true
	r.decidedStatus = status
	r.decidedBy = decidedBy
	r.reason = reason
	r.request.Status = status
	return nil
}

type fakeRequesterRepo struct {
	requester user.User
	deleted   []string
}

func (r *fakeRequesterRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if r.requester.Email != email || r.requester.ID == "" {
		return user.User{}, pgx.ErrNoRows
	}
	return r.requester, nil
}

func (r *fakeRequesterRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if r.requester.ID != id {
		return user.User{}, pgx.ErrNoRows
	}
	return r.requester, nil
}

func (r *fakeRequesterRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (r *fakeRequesterRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	return newUser, nil
}

func (r *fakeRequesterRepo) List(ctx context.Context, query user.ListUsersQuery) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeRequesterRepo) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	return user.User{}, pgx.ErrNoRows
}

func (r *fakeRequesterRepo) UpdateRole(ctx context.Context, id string, role user.Role) error {
	return nil
}

func (r *fakeRequesterRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

func (r *fakeRequesterRepo) Approve(ctx context.Context, id string, approvedBy string, approvedAt time.Time) error {
	if r.requester.ID != id {
		return user.ErrUserNotFound
	}
	r.requester.IsApproved = true
	r.requester.ApprovedBy = &approvedBy
	r.requester.ApprovedAt = &approvedAt
	return nil
}

func (r *fakeRequesterRepo) Delete(ctx context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	if r.requester.ID == id {
		r.requester = user.User{}
	}
	return nil
}

func (r *fakeRequesterRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	return user.User{}, pgx.ErrNoRows
}

type fakeSessionRepo struct {
	byToken map[string]auth.RefreshToken
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byToken: map[string]auth.RefreshToken{}}
}

func (r *fakeSessionRepo) Create(ctx context.Context, token auth.RefreshToken) error {
	r.byToken[token.Token] = token
	return nil
}

func (r *fakeSessionRepo) GetActive(ctx context.Context, token string) (auth.RefreshToken, error) {
	stored, ok := r.byToken[token]
	if !ok {
		return auth.RefreshToken{}, pgx.ErrNoRows
	}
	return stored, nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, token string) error { return nil }

func (r *fakeSessionRepo) RevokeAllForUser(ctx context.Context, userID string) error { return nil }

type fakeEmail struct {
	approvedTo     string
	rejectedTo     string
	rejectedReason *string
}

func (e *fakeEmail) SendAccountApproved(to, name, loginURL string) error {
	e.approvedTo = to
	return nil
}

func (e *fakeEmail) SendAccountRejected(to, name string, reason *string) error {
	e.rejectedTo = to
	e.rejectedReason = reason
	return nil
}

func pendingRequest() approval.Request {
	return approval.Request{
		ID:            "req-1",
		UserID:        "user-1",
		RequestedRole: string(user.RoleSalesExecutive),
		Status:        approval.StatusPending,
	}
}

func pendingRequester(t *testing.T) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)
	return user.User{
		ID:           "user-1",
		Name:         "Pending User",
		Email:        "pending@example.com",
		PasswordHash: &hashed,
		Role:         user.RoleSalesExecutive,
		IsActive:     true,
		IsApproved:   false,
	}
}

func TestApprovalService_Approve_RequiresAdmin(t *testing.T) {
	repo := &fakeApprovalRepo{request: pendingRequest()}
	service := NewApprovalService(nil, repo, &fakeRequesterRepo{}, nil, "")

	actor := user.User{ID: "exec-1", Role: user.RoleSalesExecutive}
	err := service.Approve(context.Background(), actor, "req-1")

	assert.ErrorIs(t, err, approval.ErrNotPrivileged)
	assert.False(t, repo.decided)
}

func TestApprovalService_Approve_RequestNotFound(t *testing.T) {
	repo := &fakeApprovalRepo{getErr: pgx.ErrNoRows}
	service := NewApprovalService(nil, repo, &fakeRequesterRepo{}, nil, "")

	actor := user.User{ID: "admin-1", Role: user.RoleAdmin}
	err := service.Approve(context.Background(), actor, "req-missing")

	assert.ErrorIs(t, err, approval.ErrRequestNotFound)
}

func TestApprovalService_Approve_AlreadyDecided(t *testing.T) {
	request := pendingRequest()
	request.Status = approval.StatusApproved
	repo := &fakeApprovalRepo{request: request}
	service := NewApprovalService(nil, repo, &fakeRequesterRepo{}, nil, "")

	actor := user.User{ID: "admin-1", Role: user.RoleAdmin}
	err := service.Approve(context.Background(), actor, "req-1")

	assert.ErrorIs(t, err, approval.ErrAlreadyDecided)
	assert.False(t, repo.decided)
}

func TestApprovalService_Approve_AdminDecidesPendingRequest(t *testing.T) {
	repo := &fakeApprovalRepo{request: pendingRequest()}
	users := &fakeRequesterRepo{requester: pendingRequester(t)}
	mail := &fakeEmail{}
	service := NewApprovalService(fakeTxBeginner{}, repo, users, mail, "https://crm.example.com/login")

	actor := user.User{ID: "admin-1", Role: user.RoleAdmin}
	err := service.Approve(context.Background(), actor, "req-1")

	require.NoError(t, err)
	assert.True(t, repo.decided)
	assert.Equal(t, approval.StatusApproved, repo.decidedStatus)
	assert.Equal(t, "admin-1", repo.decidedBy)

	assert.True(t, users.requester.IsApproved)
	require.NotNil(t, users.requester.ApprovedBy)
	assert.Equal(t, "admin-1", *users.requester.ApprovedBy)
	assert.NotNil(t, users.requester.ApprovedAt)

	assert.Equal(t, "pending@example.com", mail.approvedTo)
}

func TestApprovalService_Approve_ThenLoginSucceeds(t *testing.T) {
	repo := &fakeApprovalRepo{request: pendingRequest()}
	users := &fakeRequesterRepo{requester: pendingRequester(t)}
	service := NewApprovalService(fakeTxBeginner{}, repo, users, &fakeEmail{}, "")

	jwtService := pkgjwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	authService := serviceAuth.NewAuthService(fakeTxBeginner{}, users, repo, newFakeSessionRepo(), jwtService)

	login := auth.LoginRequest{Email: "pending@example.com", Password: "password123"}

	_, err := authService.Login(context.Background(), login, auth.SessionTrackingRequest{})
	require.ErrorIs(t, err, auth.ErrAccountPendingApproval)

	actor := user.User{ID: "admin-1", Role: user.RoleAdmin}
	require.NoError(t, service.Approve(context.Background(), actor, "req-1"))

	tokens, err := authService.Login(context.Background(), login, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestApprovalService_Reject_RequiresAdmin(t *testing.T) {
	repo := &fakeApprovalRepo{request: pendingRequest()}
	service := NewApprovalService(nil, repo, &fakeRequesterRepo{}, nil, "")

	actor := user.User{ID: "cust-1", Role: user.RoleCustomer}
	err := service.Reject(context.Background(), actor, approval.RejectRequest{ID: "req-1"})

	assert.ErrorIs(t, err, approval.ErrNotPrivileged)
}

func TestApprovalService_Reject_AlreadyDecided(t *testing.T) {
	request := pendingRequest()
	request.Status = approval.StatusRejected
	repo := &fakeApprovalRepo{request: request}
	service := NewApprovalService(nil, repo, &fakeRequesterRepo{}, nil, "")

	actor := user.User{ID: "admin-1", Role: user.RoleAdmin}
	err := service.Reject(context.Background(), actor, approval.RejectRequest{ID: "req-1"})

	assert.ErrorIs(t, err, approval.ErrAlreadyDecided)
	assert.False(t, repo.decided)
}

func TestApprovalService_Reject_DeletesAccountKeepsDecision(t *testing.T) {
	repo := &fakeApprovalRepo{request: pendingRequest()}
	users := &fakeRequesterRepo{requester: pendingRequester(t)}
	mail := &fakeEmail{}
	service := NewApprovalService(fakeTxBeginner{}, repo, users, mail, "")

	reason := "insufficient justification"
	actor := user.User{ID: "admin-1", Role: user.RoleAdmin}
	err := service.Reject(context.Background(), actor, approval.RejectRequest{ID: "req-1", Reason: &reason})

	require.NoError(t, err)

	// The account is gone; the decided request row is what remains.
	assert.Contains(t, users.deleted, "user-1")
	_, err = users.GetByID(context.Background(), "user-1")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	assert.Equal(t, approval.StatusRejected, repo.decidedStatus)
	assert.Equal(t, "admin-1", repo.decidedBy)
	require.NotNil(t, repo.reason)
	assert.Equal(t, reason, *repo.reason)

	assert.Equal(t, "pending@example.com", mail.rejectedTo)
	require.NotNil(t, mail.rejectedReason)
	assert.Equal(t, reason, *mail.rejectedReason)
}
