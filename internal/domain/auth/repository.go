package auth

import (
	"context"
	"time"
)

// RefreshToken is a stored session record. Tokens are kept verbatim so a
// logout can revoke exactly one session.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	IPAddress *string
	UserAgent *string
	RevokedAt *time.Time
	ExpiresAt time.Time
	CreatedAt time.Time
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token RefreshToken) error
	// GetActive returns the stored session for a token that has not been
	// revoked and has not expired.
	GetActive(ctx context.Context, token string) (RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
