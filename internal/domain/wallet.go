// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Wallet is the single wallet owned by a user. The CVU is assigned at
// creation and never changes; the alias may rotate but stays unique.
type Wallet struct {
	ID        int64           `db:"id" json:"id"`
	UserID    int64           `db:"user_id" json:"userId"`
	Balance   decimal.Decimal `db:"balance" json:"balance"` // NUMERIC(20, 2), never negative
	CVU       string          `db:"cvu" json:"cvu"`         // 22 digits, unique, immutable
	Alias     string          `db:"alias" json:"alias"`     // word.word.word, unique
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// NewWallet creates a zero-balance wallet for a user.
func NewWallet(userID int64, cvu, alias string) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		UserID:    userID,
		Balance:   decimal.Zero,
		CVU:       cvu,
		Alias:     alias,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
