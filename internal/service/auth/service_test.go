package auth

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/optimacrm/crm-backend-go/internal/domain/auth"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/optimacrm/crm-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

// fakeTx satisfies pgx.Tx so the token-issuing transaction can run without a
// database; the service only commits or rolls it back.
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

type fakeUserRepo struct {
	byEmail map[string]user.User
	byID    map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	r := &fakeUserRepo{byEmail: map[string]user.User{}, byID: map[string]user.User{}}
	for _, u := range users {
		r.byEmail[u.Email] = u
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	newUser.ID = "user-" + newUser.Email
	r.byEmail[newUser.Email] = newUser
	r.byID[newUser.ID] = newUser
	return newUser, nil
}

func (r *fakeUserRepo) List(ctx context.Context, query user.ListUsersQuery) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	return user.User{}, pgx.ErrNoRows
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id string, role user.Role) error { return nil }
func (r *fakeUserRepo) SetActive(ctx context.Context, id string, active bool) error     { return nil }
func (r *fakeUserRepo) Approve(ctx context.Context, id string, approvedBy string, approvedAt time.Time) error {
	return nil
}
func (r *fakeUserRepo) Delete(ctx context.Context, id string) error { return nil }

func (r *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	u.OAuthProviderID = &googleID
	r.byEmail[email] = u
	r.byID[u.ID] = u
	return u, nil
}

type fakeRefreshTokenRepo struct {
	byToken map[string]auth.RefreshToken
	revoked []string
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{byToken: map[string]auth.RefreshToken{}}
}

func (r *fakeRefreshTokenRepo) Create(ctx context.Context, token auth.RefreshToken) error {
	r.byToken[token.Token] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetActive(ctx context.Context, token string) (auth.RefreshToken, error) {
	stored, ok := r.byToken[token]
	if !ok {
		return auth.RefreshToken{}, pgx.ErrNoRows
	}
	return stored, nil
}

func (r *fakeRefreshTokenRepo) Revoke(ctx context.Context, token string) error {
	delete(r.byToken, token)
	r.revoked = append(r.revoked, token)
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	return nil
}

func hashPassword(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)
	return &hashed
}

func testUser(t *testing.T, role user.Role, approved bool) user.User {
	return user.User{
		ID:           "user-1",
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: hashPassword(t, "password123"),
		Role:         role,
		IsActive:     true,
		IsApproved:   approved,
	}
}

func newTestAuthService(userRepo user.UserRepository, tokenRepo auth.RefreshTokenRepository, refreshExp string) auth.AuthService {
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, refreshExp)
	return NewAuthService(fakeTxBeginner{}, userRepo, nil, tokenRepo, jwtService)
}

func TestAuthService_Login_Success(t *testing.T) {
	existing := testUser(t, user.RoleSalesExecutive, true)
	tokenRepo := newFakeRefreshTokenRepo()
	service := newTestAuthService(newFakeUserRepo(existing), tokenRepo, testRefreshExp)

	tokens, err := service.Login(context.Background(),
		auth.LoginRequest{Email: existing.Email, Password: "password123"},
		auth.SessionTrackingRequest{IPAddress: "203.0.113.7", UserAgent: "go-test"})

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Greater(t, tokens.AccessTokenExpiresIn, time.Now().Unix())

	stored, err := tokenRepo.GetActive(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, stored.UserID)
	require.NotNil(t, stored.IPAddress)
	assert.Equal(t, "203.0.113.7", *stored.IPAddress)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	service := newTestAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), testRefreshExp)

	_, err := service.Login(context.Background(),
		auth.LoginRequest{Email: "nobody@example.com", Password: "password123"},
		auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	existing := testUser(t, user.RoleSalesExecutive, true)
	service := newTestAuthService(newFakeUserRepo(existing), newFakeRefreshTokenRepo(), testRefreshExp)

	_, err := service.Login(context.Background(),
		auth.LoginRequest{Email: existing.Email, Password: "wrongpassword"},
		auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_Deactivated(t *testing.T) {
	existing := testUser(t, user.RoleSalesExecutive, true)
	existing.IsActive = false
	service := newTestAuthService(newFakeUserRepo(existing), newFakeRefreshTokenRepo(), testRefreshExp)

	_, err := service.Login(context.Background(),
		auth.LoginRequest{Email: existing.Email, Password: "password123"},
		auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrAccountDeactivated)
}

func TestAuthService_Login_PendingApproval(t *testing.T) {
	existing := testUser(t, user.RoleSalesExecutive, false)
	service := newTestAuthService(newFakeUserRepo(existing), newFakeRefreshTokenRepo(), testRefreshExp)

	_, err := service.Login(context.Background(),
		auth.LoginRequest{Email: existing.Email, Password: "password123"},
		auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrAccountPendingApproval)
}

func TestAuthService_Login_WrongPasswordBeatsAccountState(t *testing.T) {
	// A deactivated account with a wrong password must read as bad
	// credentials, not reveal the account's state.
	existing := testUser(t, user.RoleSalesExecutive, true)
	existing.IsActive = false
	service := newTestAuthService(newFakeUserRepo(existing), newFakeRefreshTokenRepo(), testRefreshExp)

	_, err := service.Login(context.Background(),
		auth.LoginRequest{Email: existing.Email, Password: "wrongpassword"},
		auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	existing := testUser(t, user.RoleSalesExecutive, true)
	service := newTestAuthService(newFakeUserRepo(existing), newFakeRefreshTokenRepo(), testRefreshExp)

	_, err := service.Register(context.Background(), auth.RegisterRequest{
		Name:            "Another User",
		Email:           existing.Email,
		Password:        "password123",
		ConfirmPassword: "password123",
		Role:            user.RoleSalesExecutive,
	})

	assert.ErrorIs(t, err, user.ErrEmailAlreadyRegistered)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	existing := testUser(t, user.RoleSalesExecutive, true)
	userRepo := newFakeUserRepo(existing)
	tokenRepo := newFakeRefreshTokenRepo()
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	service := NewAuthService(nil, userRepo, nil, tokenRepo, jwtService)

	refreshToken, expiresAt, err := jwtService.GenerateRefreshToken(existing.ID)
	require.NoError(t, err)
	require.NoError(t, tokenRepo.Create(context.Background(), auth.RefreshToken{
		UserID:    existing.ID,
		Token:     refreshToken,
		ExpiresAt: time.Unix(expiresAt, 0),
	}))

	resp, err := service.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: refreshToken})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, time.Now().Unix())
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	existing := testUser(t, user.RoleSalesExecutive, true)
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	service := NewAuthService(nil, newFakeUserRepo(existing), nil, newFakeRefreshTokenRepo(), jwtService)

	accessToken, _, err := jwtService.GenerateAccessToken(existing.ID, existing.Email, existing.Role)
	require.NoError(t, err)

	_, err = service.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: accessToken})

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_RefreshToken_Revoked(t *testing.T) {
	existing := testUser(t, user.RoleSalesExecutive, true)
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	service := NewAuthService(nil, newFakeUserRepo(existing), nil, newFakeRefreshTokenRepo(), jwtService)

	// Cryptographically valid but absent from the session store.
	refreshToken, _, err := jwtService.GenerateRefreshToken(existing.ID)
	require.NoError(t, err)

	_, err = service.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: refreshToken})

	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_RefreshToken_Expired(t *testing.T) {
	existing := testUser(t, user.RoleSalesExecutive, true)
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, "-1h")
	service := NewAuthService(nil, newFakeUserRepo(existing), nil, newFakeRefreshTokenRepo(), jwtService)

	refreshToken, _, err := jwtService.GenerateRefreshToken(existing.ID)
	require.NoError(t, err)

	_, err = service.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: refreshToken})

	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestAuthService_RefreshToken_GateRecheckedOnRefresh(t *testing.T) {
	existing := testUser(t, user.RoleSalesExecutive, true)
	existing.IsActive = false
	tokenRepo := newFakeRefreshTokenRepo()
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	service := NewAuthService(nil, newFakeUserRepo(existing), nil, tokenRepo, jwtService)

	refreshToken, expiresAt, err := jwtService.GenerateRefreshToken(existing.ID)
	require.NoError(t, err)
	require.NoError(t, tokenRepo.Create(context.Background(), auth.RefreshToken{
		UserID:    existing.ID,
		Token:     refreshToken,
		ExpiresAt: time.Unix(expiresAt, 0),
	}))

	_, err = service.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: refreshToken})

	assert.ErrorIs(t, err, auth.ErrAccountDeactivated)
}

func TestAuthService_Logout_InvalidToken(t *testing.T) {
	service := newTestAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), testRefreshExp)

	err := service.Logout(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	existing := testUser(t, user.RoleSalesExecutive, true)
	tokenRepo := newFakeRefreshTokenRepo()
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	service := NewAuthService(nil, newFakeUserRepo(existing), nil, tokenRepo, jwtService)

	refreshToken, expiresAt, err := jwtService.GenerateRefreshToken(existing.ID)
	require.NoError(t, err)
	require.NoError(t, tokenRepo.Create(context.Background(), auth.RefreshToken{
		UserID:    existing.ID,
		Token:     refreshToken,
		ExpiresAt: time.Unix(expiresAt, 0),
	}))

	require.NoError(t, service.Logout(context.Background(), refreshToken))

	assert.Contains(t, tokenRepo.revoked, refreshToken)
	_, err = tokenRepo.GetActive(context.Background(), refreshToken)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
