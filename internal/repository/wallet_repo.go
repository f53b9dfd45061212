// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"cyberwallet-api/internal/domain"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// CreateWallet inserts a new wallet and fills in its generated id.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByUserID retrieves the single wallet owned by a user.
	GetWalletByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// GetWalletByCVU retrieves a wallet by its account number.
	GetWalletByCVU(ctx context.Context, q DBExecutor, cvu string) (*domain.Wallet, error)
	// GetWalletByAlias retrieves a wallet by its normalized alias.
	GetWalletByAlias(ctx context.Context, q DBExecutor, alias string) (*domain.Wallet, error)
	// LockWalletsByCVU takes FOR UPDATE row locks on the given CVUs in
	// lexicographic order and returns the locked wallets keyed by CVU.
	// Deterministic ordering prevents deadlock between mirror transfers.
	LockWalletsByCVU(ctx context.Context, q DBExecutor, cvus ...string) (map[string]*domain.Wallet, error)
	// AdjustBalance applies a signed delta to a wallet's balance.
	AdjustBalance(ctx context.Context, q DBExecutor, walletID int64, delta decimal.Decimal) error
	// UpdateAlias rotates the wallet alias. The CVU column is never touched.
	UpdateAlias(ctx context.Context, q DBExecutor, walletID int64, alias string) error
	// ExistsByAlias reports whether any wallet holds the alias.
	ExistsByAlias(ctx context.Context, q DBExecutor, alias string) (bool, error)
	// ExistsByCVU reports whether any wallet holds the CVU.
	ExistsByCVU(ctx context.Context, q DBExecutor, cvu string) (bool, error)
}
