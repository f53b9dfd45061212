// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType tags one journal row.
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "DEPOSIT"
	TransactionTypeWithdraw    TransactionType = "WITHDRAW"
	TransactionTypeTransferIn  TransactionType = "TRANSFER_IN"
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTypeLoadFunds   TransactionType = "LOAD_FUNDS"
	TransactionTypeAliasChange TransactionType = "ALIAS_CHANGE"
)

// CounterpartVirtualCard is the counterpart recorded for simulated card
// top-ups.
const CounterpartVirtualCard = "TARJETA VIRTUAL"

// Transaction is one append-only journal row. Rows are never updated or
// deleted from application code; a transfer writes a TRANSFER_OUT row on the
// sender and a TRANSFER_IN row on the receiver inside the same commit.
type Transaction struct {
	ID          int64           `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"-"`
	Type        TransactionType `db:"type" json:"type"`
	Amount      decimal.Decimal `db:"amount" json:"amount"` // zero only for ALIAS_CHANGE
	Counterpart *string         `db:"counterpart" json:"counterpart"`
	Date        time.Time       `db:"date" json:"date"`
}

// NewTransaction builds a journal row for a user. A nil counterpart is
// persisted as NULL.
func NewTransaction(userID int64, txType TransactionType, amount decimal.Decimal, counterpart *string) *Transaction {
	return &Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Counterpart: counterpart,
		Date:        time.Now().UTC(),
	}
}

// CounterpartOf is a convenience for building the nullable counterpart column.
func CounterpartOf(value string) *string {
	return &value
}
