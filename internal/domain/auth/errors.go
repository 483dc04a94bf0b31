package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountPendingApproval is distinct from ErrInvalidCredentials on
	// purpose: the client renders a different message for it.
	ErrAccountPendingApproval = errors.New("account is awaiting administrator approval")
	ErrAccountDeactivated     = errors.New("account has been deactivated")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrTokenExpired           = errors.New("token has expired")
	ErrRefreshTokenRevoked    = errors.New("refresh token has been revoked")
	ErrUserNotFound           = errors.New("user not found")
	ErrGoogleEmailUnverified  = errors.New("google account email is not verified")
)
