// internal/repository/user_repo.go
package repository

import (
	"context"

	"cyberwallet-api/internal/domain"
)

// UserRepository defines the interface for user data operations. Every read
// excludes soft-deleted rows.
type UserRepository interface {
	// CreateUser inserts a new user and fills in its generated id.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by primary key.
	GetUserByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
	// GetUserByEmail retrieves a user by normalized email.
	GetUserByEmail(ctx context.Context, q DBExecutor, email string) (*domain.User, error)
	// GetUserByUsername retrieves a user by normalized username.
	GetUserByUsername(ctx context.Context, q DBExecutor, username string) (*domain.User, error)
	// ExistsByEmail reports whether a non-deleted user owns the email.
	ExistsByEmail(ctx context.Context, q DBExecutor, email string) (bool, error)
	// ExistsByUsername reports whether a non-deleted user owns the username.
	ExistsByUsername(ctx context.Context, q DBExecutor, username string) (bool, error)
	// ExistsByDNI reports whether a non-deleted user owns the national id.
	ExistsByDNI(ctx context.Context, q DBExecutor, dni string) (bool, error)
	// UpdateUser persists mutable profile fields, credentials and status.
	UpdateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// SoftDeleteUser flags the user as deleted without removing the row.
	SoftDeleteUser(ctx context.Context, q DBExecutor, id int64) error
}
