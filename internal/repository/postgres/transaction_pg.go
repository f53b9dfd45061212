// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"cyberwallet-api/internal/domain"
	"cyberwallet-api/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct {
	// No longer holds *sqlx.DB as methods receive DBExecutor directly
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction appends a journal row using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transacciones (user_id, type, amount, counterpart, date)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		transaction.UserID,
		transaction.Type,
		transaction.Amount,
		transaction.Counterpart,
		transaction.Date,
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactionsByUser returns a user's journal entries, most recent first.
func (r *TransactionRepository) ListTransactionsByUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `SELECT id, user_id, type, amount, counterpart, date
              FROM transacciones
              WHERE user_id = $1
              ORDER BY date DESC, id DESC`
	err := q.SelectContext(ctx, &transactions, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for user %d: %w", userID, err)
	}
	return transactions, nil
}

// SumTransfersOutOnDay totals TRANSFER_OUT amounts for the UTC calendar day
// containing the given instant.
func (r *TransactionRepository) SumTransfersOutOnDay(ctx context.Context, q repository.DBExecutor, userID int64, at time.Time) (decimal.Decimal, error) {
	dayStart := at.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0)
              FROM transacciones
              WHERE user_id = $1 AND type = $2 AND date >= $3 AND date < $4`
	err := q.GetContext(ctx, &total, query, userID, domain.TransactionTypeTransferOut, dayStart, dayEnd)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum daily transfers for user %d: %w", userID, err)
	}
	return total, nil
}
