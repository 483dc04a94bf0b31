package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/optimacrm/crm-backend-go/internal/domain/approval"
	"github.com/optimacrm/crm-backend-go/internal/domain/auth"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
	pkgjwt "github.com/optimacrm/crm-backend-go/internal/pkg/jwt"
	"github.com/optimacrm/crm-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

const uniqueViolation = "23505"

type AuthServiceImpl struct {
	db database.TxBeginner
	user.UserRepository
	approval.ApprovalRepository
	auth.RefreshTokenRepository
	pkgjwt.Service
}

func NewAuthService(db database.TxBeginner, userRepository user.UserRepository, approvalRepository approval.ApprovalRepository, refreshTokenRepository auth.RefreshTokenRepository, jwtService pkgjwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		db:                     db,
		UserRepository:         userRepository,
		ApprovalRepository:     approvalRepository,
		RefreshTokenRepository: refreshTokenRepository,
		Service:                jwtService,
	}
}

// Register implements auth.AuthService. The account and its approval request
// are created in one transaction; no tokens are issued until an admin decides.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	exists, err := a.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.RegisterResponse{}, user.ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	var resp auth.RegisterResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err := a.UserRepository.Create(txCtx, user.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: &hashed,
			Role:         req.Role,
			IsActive:     true,
			IsApproved:   false,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		request, err := a.ApprovalRepository.Create(txCtx, approval.Request{
			UserID:        created.ID,
			RequestedRole: string(req.Role),
			Status:        approval.StatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create approval request: %w", err)
		}

		resp = auth.RegisterResponse{
			User:              user.ToResponse(created),
			ApprovalRequestID: request.ID,
		}
		return nil
	})
	if err != nil {
		// ExistsByEmail races the insert; the unique index is the backstop.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.RegisterResponse{}, user.ErrEmailAlreadyRegistered
		}
		return auth.RegisterResponse{}, err
	}

	return resp, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	// Credentials first, account state second: the gate errors below must
	// never leak whether a password was right for someone else's email.
	if err := a.checkAccountState(userData); err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(ctx, userData, sessionTrackReq)
}

// LoginWithGoogle implements auth.AuthService. A Google identity without an
// account gets provisioned as a pending customer and enters the approval
// flow; it cannot authenticate until approved.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email string, googleID string, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
		}

		err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			provider := "google"
			created, err := a.UserRepository.Create(txCtx, user.User{
				Name:            email,
				Email:           email,
				Role:            user.RoleCustomer,
				IsActive:        true,
				IsApproved:      false,
				OAuthProvider:   &provider,
				OAuthProviderID: &googleID,
			})
			if err != nil {
				return fmt.Errorf("failed to provision user: %w", err)
			}

			_, err = a.ApprovalRepository.Create(txCtx, approval.Request{
				UserID:        created.ID,
				RequestedRole: string(user.RoleCustomer),
				Status:        approval.StatusPending,
			})
			if err != nil {
				return fmt.Errorf("failed to create approval request: %w", err)
			}
			return nil
		})
		if err != nil {
			return auth.TokenResponse{}, err
		}

		return auth.TokenResponse{}, auth.ErrAccountPendingApproval
	}

	if userData.OAuthProviderID == nil {
		userData, err = a.UserRepository.LinkGoogleAccount(ctx, googleID, email)
		if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to link google account: %w", err)
		}
	}

	if err := a.checkAccountState(userData); err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(ctx, userData, sessionTrackReq)
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	token, err := jwtauth.VerifyToken(a.Service.JWTAuth(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired()) {
			return auth.AccessTokenResponse{}, auth.ErrTokenExpired
		}
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if typ, _ := token.Get("type"); typ != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	stored, err := a.RefreshTokenRepository.GetActive(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	userData, err := a.UserRepository.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := a.checkAccountState(userData); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := jwtauth.VerifyToken(a.Service.JWTAuth(), refreshToken); err != nil {
		return auth.ErrInvalidToken
	}
	if err := a.RefreshTokenRepository.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// checkAccountState enforces the authentication gates shared by every login
// path: deactivated accounts are refused, and non-admin accounts must have
// been approved.
func (a *AuthServiceImpl) checkAccountState(userData user.User) error {
	if !userData.IsActive {
		return auth.ErrAccountDeactivated
	}
	if userData.RequiresApproval() && !userData.IsApproved {
		return auth.ErrAccountPendingApproval
	}
	return nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		record := auth.RefreshToken{
			UserID:    userData.ID,
			Token:     tokenResponse.RefreshToken,
			ExpiresAt: time.Unix(tokenResponse.RefreshTokenExpiresIn, 0),
		}
		if sessionTrackReq.IPAddress != "" {
			record.IPAddress = &sessionTrackReq.IPAddress
		}
		if sessionTrackReq.UserAgent != "" {
			record.UserAgent = &sessionTrackReq.UserAgent
		}
		if err := a.RefreshTokenRepository.Create(txCtx, record); err != nil {
			return fmt.Errorf("failed to save refresh token: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}
