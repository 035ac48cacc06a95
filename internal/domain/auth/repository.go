package auth

import "context"

// RefreshTokenRepository stores hashes of issued refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, subject string, token string, expiresAt int64, session SessionTrackingRequest) error
	// IsRevoked reports the token's subject and whether it is revoked or expired.
	IsRevoked(ctx context.Context, token string) (subject string, revoked bool, err error)
	Revoke(ctx context.Context, token string) error
}
