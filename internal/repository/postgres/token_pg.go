// internal/repository/postgres/token_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cyberwallet-api/internal/domain"
	"cyberwallet-api/internal/repository"

	"github.com/jmoiron/sqlx"
)

// ActivationTokenRepository implements repository.ActivationTokenRepository
// for PostgreSQL.
type ActivationTokenRepository struct{}

// NewActivationTokenRepository creates a new ActivationTokenRepository.
func NewActivationTokenRepository(db *sqlx.DB) repository.ActivationTokenRepository {
	return &ActivationTokenRepository{}
}

// CreateActivationToken stores a fresh activation code for a user.
func (r *ActivationTokenRepository) CreateActivationToken(ctx context.Context, q repository.DBExecutor, token *domain.ActivationToken) error {
	query := `INSERT INTO activation_tokens (user_id, token, expires_at, used, created_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		token.UserID, token.Token, token.ExpiresAt, token.Used, token.CreatedAt,
	).Scan(&token.ID)
	if err != nil {
		return fmt.Errorf("failed to create activation token: %w", err)
	}
	return nil
}

// GetActivationToken looks up an unused code by its value.
func (r *ActivationTokenRepository) GetActivationToken(ctx context.Context, q repository.DBExecutor, code string) (*domain.ActivationToken, error) {
	var token domain.ActivationToken
	query := `SELECT id, user_id, token, expires_at, used, created_at
              FROM activation_tokens WHERE token = $1`
	err := q.GetContext(ctx, &token, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activation token: %w", err)
	}
	return &token, nil
}

// MarkActivationTokenUsed consumes a code so it cannot be replayed.
func (r *ActivationTokenRepository) MarkActivationTokenUsed(ctx context.Context, q repository.DBExecutor, tokenID int64) error {
	query := `UPDATE activation_tokens SET used = TRUE WHERE id = $1`
	result, err := q.ExecContext(ctx, query, tokenID)
	if err != nil {
		return fmt.Errorf("failed to mark activation token %d used: %w", tokenID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after marking activation token %d used: %w", tokenID, err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteActivationTokensForUser removes a user's prior unused codes.
func (r *ActivationTokenRepository) DeleteActivationTokensForUser(ctx context.Context, q repository.DBExecutor, userID int64) error {
	query := `DELETE FROM activation_tokens WHERE user_id = $1 AND used = FALSE`
	if _, err := q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete activation tokens for user %d: %w", userID, err)
	}
	return nil
}

// PasswordResetTokenRepository implements
// repository.PasswordResetTokenRepository for PostgreSQL.
type PasswordResetTokenRepository struct{}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository.
func NewPasswordResetTokenRepository(db *sqlx.DB) repository.PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{}
}

// CreatePasswordResetToken stores a fresh reset token for a user.
func (r *PasswordResetTokenRepository) CreatePasswordResetToken(ctx context.Context, q repository.DBExecutor, token *domain.PasswordResetToken) error {
	query := `INSERT INTO password_reset_tokens (user_id, token, created_at, expires_at, used)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		token.UserID, token.Token, token.CreatedAt, token.ExpiresAt, token.Used,
	).Scan(&token.ID)
	if err != nil {
		return fmt.Errorf("failed to create password reset token: %w", err)
	}
	return nil
}

// GetPasswordResetToken looks up an unused token by its value.
func (r *PasswordResetTokenRepository) GetPasswordResetToken(ctx context.Context, q repository.DBExecutor, value string) (*domain.PasswordResetToken, error) {
	var token domain.PasswordResetToken
	query := `SELECT id, user_id, token, created_at, expires_at, used
              FROM password_reset_tokens WHERE token = $1`
	err := q.GetContext(ctx, &token, query, value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get password reset token: %w", err)
	}
	return &token, nil
}

// MarkPasswordResetTokenUsed consumes a token so it is single-use.
func (r *PasswordResetTokenRepository) MarkPasswordResetTokenUsed(ctx context.Context, q repository.DBExecutor, tokenID int64) error {
	query := `UPDATE password_reset_tokens SET used = TRUE WHERE id = $1`
	result, err := q.ExecContext(ctx, query, tokenID)
	if err != nil {
		return fmt.Errorf("failed to mark password reset token %d used: %w", tokenID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after marking password reset token %d used: %w", tokenID, err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// InvalidateResetTokensForUser voids a user's earlier unused tokens.
func (r *PasswordResetTokenRepository) InvalidateResetTokensForUser(ctx context.Context, q repository.DBExecutor, userID int64) error {
	query := `UPDATE password_reset_tokens SET used = TRUE WHERE user_id = $1 AND used = FALSE`
	if _, err := q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to invalidate reset tokens for user %d: %w", userID, err)
	}
	return nil
}

// RevokedTokenRepository implements repository.RevokedTokenRepository for
// PostgreSQL.
type RevokedTokenRepository struct{}

// NewRevokedTokenRepository creates a new RevokedTokenRepository.
func NewRevokedTokenRepository(db *sqlx.DB) repository.RevokedTokenRepository {
	return &RevokedTokenRepository{}
}

// RevokeToken records a bearer token as logged out. Revoking an already
// revoked token is a no-op at this layer; the caller checks first.
func (r *RevokedTokenRepository) RevokeToken(ctx context.Context, q repository.DBExecutor, token *domain.RevokedToken) error {
	query := `INSERT INTO blacklisted_tokens (token, revoked_at, expires_at)
              VALUES ($1, $2, $3)
              ON CONFLICT (token) DO NOTHING
              RETURNING id`
	err := q.QueryRowContext(ctx, query, token.Token, token.RevokedAt, token.ExpiresAt).Scan(&token.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			// Conflict path: the token was already in the set.
			return nil
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsTokenRevoked reports whether the exact bearer string was revoked.
func (r *RevokedTokenRepository) IsTokenRevoked(ctx context.Context, q repository.DBExecutor, token string) (bool, error) {
	var revoked bool
	query := `SELECT EXISTS (SELECT 1 FROM blacklisted_tokens WHERE token = $1)`
	if err := q.GetContext(ctx, &revoked, query, token); err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return revoked, nil
}

// DeleteExpiredRevokedTokens purges entries whose original expiry has passed.
func (r *RevokedTokenRepository) DeleteExpiredRevokedTokens(ctx context.Context, q repository.DBExecutor, now time.Time) (int64, error) {
	query := `DELETE FROM blacklisted_tokens WHERE expires_at < $1`
	result, err := q.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired revoked tokens: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected after deleting expired revoked tokens: %w", err)
	}
	return deleted, nil
}
