package postgresql

import (
	"context"

	"github.com/google/uuid"
	"github.com/optimacrm/crm-backend-go/internal/domain/auth"
	"github.com/optimacrm/crm-backend-go/internal/pkg/database"
)

type refreshTokenRepositoryImpl struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) auth.RefreshTokenRepository {
	return &refreshTokenRepositoryImpl{db: db}
}

// Create implements auth.RefreshTokenRepository.
func (r *refreshTokenRepositoryImpl) Create(ctx context.Context, token auth.RefreshToken) error {
	q := GetQuerier(ctx, r.db)

	if token.ID == "" {
		token.ID = uuid.NewString()
	}

	query := `
		INSERT INTO refresh_tokens (id, user_id, token, ip_address, user_agent, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.Token,
		token.IPAddress,
		token.UserAgent,
		token.ExpiresAt,
	)
	return err
}

// GetActive implements auth.RefreshTokenRepository.
func (r *refreshTokenRepositoryImpl) GetActive(ctx context.Context, token string) (auth.RefreshToken, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, token, ip_address, user_agent, revoked_at, expires_at, created_at
		FROM refresh_tokens
		WHERE token = $1 AND revoked_at IS NULL AND expires_at > NOW()
	`

	var found auth.RefreshToken
	err := q.QueryRow(ctx, query, token).Scan(
		&found.ID,
		&found.UserID,
		&found.Token,
		&found.IPAddress,
		&found.UserAgent,
		&found.RevokedAt,
		&found.ExpiresAt,
		&found.CreatedAt,
	)
	if err != nil {
		return auth.RefreshToken{}, err
	}

	return found, nil
}

// Revoke implements auth.RefreshTokenRepository.
func (r *refreshTokenRepositoryImpl) Revoke(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE token = $1 AND revoked_at IS NULL`,
		token,
	)
	return err
}

// RevokeAllForUser implements auth.RefreshTokenRepository.
func (r *refreshTokenRepositoryImpl) RevokeAllForUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE user_id = $1 AND revoked_at IS NULL`,
		userID,
	)
	return err
}
