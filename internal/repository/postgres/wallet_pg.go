// internal/repository/postgres/wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"cyberwallet-api/internal/apperr"
	"cyberwallet-api/internal/domain"
	"cyberwallet-api/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const walletColumns = `id, user_id, balance, cvu, alias, created_at, updated_at`

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) repository.WalletRepository {
	return &WalletRepository{}
}

// CreateWallet inserts a new wallet into the database using the provided DBExecutor.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (user_id, balance, cvu, alias, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		wallet.UserID, wallet.Balance, wallet.CVU, wallet.Alias, wallet.CreatedAt, wallet.UpdatedAt,
	).Scan(&wallet.ID)
	if err != nil {
		if isUniqueViolation(err, "wallets_alias_key") {
			return apperr.Wrap(apperr.CodeAliasAlreadyExists, "", err)
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetWalletByUserID retrieves the single wallet owned by a user using the provided DBExecutor.
func (r *WalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	err := q.GetContext(ctx, &wallet, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by user ID %d: %w", userID, err)
	}
	return &wallet, nil
}

// GetWalletByCVU retrieves a wallet by its account number using the provided DBExecutor.
func (r *WalletRepository) GetWalletByCVU(ctx context.Context, q repository.DBExecutor, cvu string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE cvu = $1`
	err := q.GetContext(ctx, &wallet, query, cvu)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by CVU: %w", err)
	}
	return &wallet, nil
}

// GetWalletByAlias retrieves a wallet by its normalized alias using the provided DBExecutor.
func (r *WalletRepository) GetWalletByAlias(ctx context.Context, q repository.DBExecutor, alias string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE alias = $1`
	err := q.GetContext(ctx, &wallet, query, alias)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by alias '%s': %w", alias, err)
	}
	return &wallet, nil
}

// LockWalletsByCVU takes FOR UPDATE locks on the given CVUs. The rows are
// locked in lexicographic CVU order so that two concurrent transfers touching
// the same pair of wallets always lock in the same order.
func (r *WalletRepository) LockWalletsByCVU(ctx context.Context, q repository.DBExecutor, cvus ...string) (map[string]*domain.Wallet, error) {
	ordered := append([]string(nil), cvus...)
	sort.Strings(ordered)

	locked := make(map[string]*domain.Wallet, len(ordered))
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE cvu = $1 FOR UPDATE`
	for _, cvu := range ordered {
		if _, ok := locked[cvu]; ok {
			continue
		}
		var wallet domain.Wallet
		err := q.GetContext(ctx, &wallet, query, cvu)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, repository.ErrNotFound
			}
			return nil, fmt.Errorf("failed to lock wallet by CVU: %w", err)
		}
		locked[cvu] = &wallet
	}
	return locked, nil
}

// AdjustBalance applies a signed delta to a wallet's balance using the provided DBExecutor.
func (r *WalletRepository) AdjustBalance(ctx context.Context, q repository.DBExecutor, walletID int64, delta decimal.Decimal) error {
	query := `UPDATE wallets SET balance = balance + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance for wallet %d: %w", walletID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after adjusting balance for wallet %d: %w", walletID, err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateAlias rotates the wallet alias using the provided DBExecutor.
func (r *WalletRepository) UpdateAlias(ctx context.Context, q repository.DBExecutor, walletID int64, alias string) error {
	query := `UPDATE wallets SET alias = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, alias, time.Now().UTC(), walletID)
	if err != nil {
		if isUniqueViolation(err, "wallets_alias_key") {
			return apperr.Wrap(apperr.CodeAliasAlreadyExists, "", err)
		}
		return fmt.Errorf("failed to update alias for wallet %d: %w", walletID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating alias for wallet %d: %w", walletID, err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ExistsByAlias reports whether any wallet holds the alias.
func (r *WalletRepository) ExistsByAlias(ctx context.Context, q repository.DBExecutor, alias string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM wallets WHERE alias = $1)`
	if err := q.GetContext(ctx, &exists, query, alias); err != nil {
		return false, fmt.Errorf("failed to check alias existence: %w", err)
	}
	return exists, nil
}

// ExistsByCVU reports whether any wallet holds the CVU.
func (r *WalletRepository) ExistsByCVU(ctx context.Context, q repository.DBExecutor, cvu string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM wallets WHERE cvu = $1)`
	if err := q.GetContext(ctx, &exists, query, cvu); err != nil {
		return false, fmt.Errorf("failed to check CVU existence: %w", err)
	}
	return exists, nil
}
