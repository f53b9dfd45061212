// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cyberwallet-api/internal/apperr"
	"cyberwallet-api/internal/domain"
	"cyberwallet-api/internal/repository"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, nombre, apellido, email, username, password, dni, calle, numero,
       fecha_nacimiento, genero, telefono, pais_id, provincia_id, status, deleted, created_at, updated_at`

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{}
}

// CreateUser inserts a new user into the database using the provided DBExecutor.
// A unique violation on email, username or dni surfaces as the matching
// duplicate error so that races with the pre-insert existence checks still
// produce the right code.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (nombre, apellido, email, username, password, dni, calle, numero,
                  fecha_nacimiento, genero, telefono, pais_id, provincia_id, status, deleted, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
              RETURNING id`
	err := q.QueryRowContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.Username, user.Password, user.DNI,
		user.Street, user.Number, user.BirthDate, user.Gender, user.Phone,
		user.CountryID, user.ProvinceID, user.Status, user.Deleted, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err, "users_email_key"):
			return apperr.Wrap(apperr.CodeDuplicateEmail, "", err)
		case isUniqueViolation(err, "users_username_key"):
			return apperr.Wrap(apperr.CodeDuplicateUsername, "", err)
		case isUniqueViolation(err, "users_dni_key"):
			return apperr.Wrap(apperr.CodeDuplicateDNI, "", err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID using the provided DBExecutor.
func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted = FALSE`
	err := q.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by their email using the provided DBExecutor.
func (r *UserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted = FALSE`
	err := q.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by their username using the provided DBExecutor.
func (r *UserRepository) GetUserByUsername(ctx context.Context, q repository.DBExecutor, username string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND deleted = FALSE`
	err := q.GetContext(ctx, &user, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username '%s': %w", username, err)
	}
	return &user, nil
}

// ExistsByEmail reports whether a non-deleted user owns the email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, q repository.DBExecutor, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND deleted = FALSE)`
	if err := q.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// ExistsByUsername reports whether a non-deleted user owns the username.
func (r *UserRepository) ExistsByUsername(ctx context.Context, q repository.DBExecutor, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND deleted = FALSE)`
	if err := q.GetContext(ctx, &exists, query, username); err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return exists, nil
}

// ExistsByDNI reports whether a non-deleted user owns the national id.
func (r *UserRepository) ExistsByDNI(ctx context.Context, q repository.DBExecutor, dni string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE dni = $1 AND deleted = FALSE)`
	if err := q.GetContext(ctx, &exists, query, dni); err != nil {
		return false, fmt.Errorf("failed to check dni existence: %w", err)
	}
	return exists, nil
}

// UpdateUser persists mutable profile fields, credentials and status using the provided DBExecutor.
func (r *UserRepository) UpdateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `UPDATE users
              SET nombre = $1, apellido = $2, email = $3, username = $4, password = $5,
                  calle = $6, numero = $7, fecha_nacimiento = $8, genero = $9, telefono = $10,
                  pais_id = $11, provincia_id = $12, status = $13, updated_at = $14
              WHERE id = $15 AND deleted = FALSE`
	result, err := q.ExecContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.Username, user.Password,
		user.Street, user.Number, user.BirthDate, user.Gender, user.Phone,
		user.CountryID, user.ProvinceID, user.Status, time.Now().UTC(), user.ID,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err, "users_email_key"):
			return apperr.Wrap(apperr.CodeDuplicateEmail, "", err)
		case isUniqueViolation(err, "users_username_key"):
			return apperr.Wrap(apperr.CodeDuplicateUsername, "", err)
		}
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating user %d: %w", user.ID, err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SoftDeleteUser flags the user as deleted without removing the row.
func (r *UserRepository) SoftDeleteUser(ctx context.Context, q repository.DBExecutor, id int64) error {
	query := `UPDATE users SET deleted = TRUE, updated_at = $1 WHERE id = $2 AND deleted = FALSE`
	result, err := q.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to soft delete user %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after soft deleting user %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
