// internal/domain/token.go
package domain

import "time"

// ActivationToken is the short alphanumeric code mailed after registration.
// At most one unused token per user exists at a time: issuing a new one marks
// any prior unused token as used.
type ActivationToken struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Token     string    `db:"token"` // 6 uppercase alphanumerics
	ExpiresAt time.Time `db:"expires_at"`
	Used      bool      `db:"used"`
	CreatedAt time.Time `db:"created_at"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *ActivationToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// PasswordResetToken is a one-hour single-use UUID token. Issuing a new one
// invalidates all prior unused tokens for the same user.
type PasswordResetToken struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Token     string    `db:"token"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
	Used      bool      `db:"used"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// RevokedToken records a session token invalidated by logout. Presence in
// this set means the bearer must be refused regardless of signature.
type RevokedToken struct {
	ID        int64     `db:"id"`
	Token     string    `db:"token"` // the exact bearer string
	RevokedAt time.Time `db:"revoked_at"`
	ExpiresAt time.Time `db:"expires_at"` // original JWT expiry, for cleanup
}
