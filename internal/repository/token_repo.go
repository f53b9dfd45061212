// internal/repository/token_repo.go
package repository

import (
	"context"
	"time"

	"cyberwallet-api/internal/domain"
)

// ActivationTokenRepository defines the interface for account activation codes.
type ActivationTokenRepository interface {
	// CreateActivationToken stores a fresh activation code for a user.
	CreateActivationToken(ctx context.Context, q DBExecutor, token *domain.ActivationToken) error
	// GetActivationToken looks up an unused code by its value.
	GetActivationToken(ctx context.Context, q DBExecutor, code string) (*domain.ActivationToken, error)
	// MarkActivationTokenUsed consumes a code so it cannot be replayed.
	MarkActivationTokenUsed(ctx context.Context, q DBExecutor, tokenID int64) error
	// DeleteActivationTokensForUser removes a user's prior unused codes so at
	// most one outstanding code exists per user.
	DeleteActivationTokensForUser(ctx context.Context, q DBExecutor, userID int64) error
}

// PasswordResetTokenRepository defines the interface for password reset tokens.
type PasswordResetTokenRepository interface {
	// CreatePasswordResetToken stores a fresh reset token for a user.
	CreatePasswordResetToken(ctx context.Context, q DBExecutor, token *domain.PasswordResetToken) error
	// GetPasswordResetToken looks up an unused token by its value.
	GetPasswordResetToken(ctx context.Context, q DBExecutor, value string) (*domain.PasswordResetToken, error)
	// MarkPasswordResetTokenUsed consumes a token so it is single-use.
	MarkPasswordResetTokenUsed(ctx context.Context, q DBExecutor, tokenID int64) error
	// InvalidateResetTokensForUser voids a user's earlier unused tokens when a
	// new one is issued.
	InvalidateResetTokensForUser(ctx context.Context, q DBExecutor, userID int64) error
}

// RevokedTokenRepository defines the interface for the session revocation set.
type RevokedTokenRepository interface {
	// RevokeToken records a bearer token as logged out.
	RevokeToken(ctx context.Context, q DBExecutor, token *domain.RevokedToken) error
	// IsTokenRevoked reports whether the exact bearer string was revoked.
	IsTokenRevoked(ctx context.Context, q DBExecutor, token string) (bool, error)
	// DeleteExpiredRevokedTokens purges entries whose original expiry has
	// passed; they no longer need blocking because the JWT itself is invalid.
	DeleteExpiredRevokedTokens(ctx context.Context, q DBExecutor, now time.Time) (int64, error)
}
