// internal/repository/transaction_repo.go
package repository

import (
	"context"
	"time"

	"cyberwallet-api/internal/domain"

	"github.com/shopspring/decimal"
)

// TransactionRepository defines the interface for the append-only journal.
// Rows are never updated or deleted once written.
type TransactionRepository interface {
	// CreateTransaction appends a journal entry and fills in its generated id.
	CreateTransaction(ctx context.Context, q DBExecutor, tx *domain.Transaction) error
	// ListTransactionsByUser returns a user's journal entries, most recent first.
	ListTransactionsByUser(ctx context.Context, q DBExecutor, userID int64) ([]domain.Transaction, error)
	// SumTransfersOutOnDay totals TRANSFER_OUT amounts for the UTC calendar
	// day containing the given instant. Used for the daily transfer cap.
	SumTransfersOutOnDay(ctx context.Context, q DBExecutor, userID int64, at time.Time) (decimal.Decimal, error)
}
