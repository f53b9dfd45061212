// internal/service/wallet_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cyberwallet-api/internal/apperr"
	"cyberwallet-api/internal/card"
	"cyberwallet-api/internal/domain"
	"cyberwallet-api/internal/generator"
	"cyberwallet-api/internal/repository"
	"cyberwallet-api/internal/validate"
	"cyberwallet-api/pkg/db"

	"github.com/shopspring/decimal"
)

// WalletDetails is the wallet snapshot returned by read and mutation
// operations.
type WalletDetails struct {
	Alias   string
	CVU     string
	Balance decimal.Decimal
}

// LoadCardResult is WalletDetails plus the brand detected from the BIN.
type LoadCardResult struct {
	WalletDetails
	Brand card.Brand
}

// AliasRotation reports an alias change.
type AliasRotation struct {
	PreviousAlias string
	NewAlias      string
	CVU           string
}

// WalletService defines the interface for wallet and money-movement business
// logic. The caller is always identified by the authenticated email.
type WalletService interface {
	Details(ctx context.Context, email string) (*WalletDetails, error)
	Deposit(ctx context.Context, email string, amount decimal.Decimal) (*WalletDetails, error)
	Withdraw(ctx context.Context, email string, amount decimal.Decimal) (*WalletDetails, error)
	LoadCard(ctx context.Context, email string, details card.Details, amount decimal.Decimal) (*LoadCardResult, error)
	TransferByCVU(ctx context.Context, email, targetCVU string, amount decimal.Decimal) (*WalletDetails, error)
	TransferByAlias(ctx context.Context, email, targetAlias string, amount decimal.Decimal) (*WalletDetails, error)
	UpdateAlias(ctx context.Context, email string) (*AliasRotation, error)
	GetTransactionHistory(ctx context.Context, email string) ([]domain.Transaction, error)
}

// walletService implements the WalletService interface.
type walletService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	userRepo        repository.UserRepository
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	aliasGen        *generator.AliasGenerator
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	aliasGen *generator.AliasGenerator,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) WalletService {
	return &walletService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		aliasGen:        aliasGen,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// Details returns the caller's wallet snapshot.
func (s *walletService) Details(ctx context.Context, email string) (*WalletDetails, error) {
	_, wallet, err := s.userWallet(ctx, s.dbExecutor, email)
	if err != nil {
		return nil, err
	}
	return snapshot(wallet), nil
}

// Deposit credits the caller's wallet and journals a DEPOSIT row.
func (s *walletService) Deposit(ctx context.Context, email string, amount decimal.Decimal) (*WalletDetails, error) {
	if err := validate.Amount(amount); err != nil {
		return nil, err
	}
	return s.adjust(ctx, email, amount, domain.TransactionTypeDeposit, nil)
}

// Withdraw debits the caller's wallet and journals a WITHDRAW row.
func (s *walletService) Withdraw(ctx context.Context, email string, amount decimal.Decimal) (*WalletDetails, error) {
	if err := validate.Amount(amount); err != nil {
		return nil, err
	}
	return s.adjust(ctx, email, amount.Neg(), domain.TransactionTypeWithdraw, nil)
}

// LoadCard validates the card, credits the wallet and journals a LOAD_FUNDS
// row with the virtual-card counterpart.
func (s *walletService) LoadCard(ctx context.Context, email string, details card.Details, amount decimal.Decimal) (*LoadCardResult, error) {
	// Above the global cap the card flow reports the throttling code rather
	// than a plain invalid amount.
	if amount.GreaterThan(validate.MaxAmount) {
		return nil, apperr.New(apperr.CodeAmountExceedsLimit, "")
	}
	if err := validate.Amount(amount); err != nil {
		return nil, err
	}

	user, err := s.userByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		return nil, err
	}
	brand, err := card.Validate(details, user.FullName(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	result, err := s.adjust(ctx, email, amount, domain.TransactionTypeLoadFunds,
		domain.CounterpartOf(domain.CounterpartVirtualCard))
	if err != nil {
		return nil, err
	}
	return &LoadCardResult{WalletDetails: *result, Brand: brand}, nil
}

// TransferByCVU moves funds to the wallet holding targetCVU.
func (s *walletService) TransferByCVU(ctx context.Context, email, targetCVU string, amount decimal.Decimal) (*WalletDetails, error) {
	if err := validate.TransferAmount(amount); err != nil {
		return nil, err
	}
	if err := validate.CVU(targetCVU); err != nil {
		return nil, err
	}

	return s.transfer(ctx, email, amount, func(ctx context.Context, q repository.DBExecutor, sender *domain.Wallet) (*domain.Wallet, *string, *string, error) {
		if targetCVU == sender.CVU {
			return nil, nil, nil, apperr.New(apperr.CodeSelfTransfer, "")
		}
		receiver, err := s.walletRepo.GetWalletByCVU(ctx, q, targetCVU)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil, nil, apperr.New(apperr.CodeWalletNotFound, "No existe una billetera con ese CVU.")
			}
			return nil, nil, nil, fmt.Errorf("transfer: failed to resolve target CVU: %w", err)
		}
		return receiver, domain.CounterpartOf(receiver.CVU), domain.CounterpartOf(sender.CVU), nil
	})
}

// TransferByAlias moves funds to the wallet holding targetAlias.
func (s *walletService) TransferByAlias(ctx context.Context, email, targetAlias string, amount decimal.Decimal) (*WalletDetails, error) {
	if err := validate.TransferAmount(amount); err != nil {
		return nil, err
	}
	targetAlias = validate.NormalizeAlias(targetAlias)
	if err := validate.Alias(targetAlias); err != nil {
		return nil, err
	}

	return s.transfer(ctx, email, amount, func(ctx context.Context, q repository.DBExecutor, sender *domain.Wallet) (*domain.Wallet, *string, *string, error) {
		receiver, err := s.walletRepo.GetWalletByAlias(ctx, q, targetAlias)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil, nil, apperr.New(apperr.CodeReceiverNotFound, "")
			}
			return nil, nil, nil, fmt.Errorf("transfer: failed to resolve target alias: %w", err)
		}
		if receiver.UserID == sender.UserID {
			return nil, nil, nil, apperr.New(apperr.CodeSelfTransfer, "")
		}
		return receiver, domain.CounterpartOf(receiver.Alias), domain.CounterpartOf(sender.Alias), nil
	})
}

// resolveReceiverFunc resolves the transfer target and returns the receiver
// wallet plus the counterpart strings for the sender and receiver journal
// rows.
type resolveReceiverFunc func(ctx context.Context, q repository.DBExecutor, sender *domain.Wallet) (*domain.Wallet, *string, *string, error)

// transfer runs the shared atomic debit/credit/journal pattern. Both wallet
// rows are locked in CVU order, the daily outbound cap is enforced, and both
// journal legs share the commit.
func (s *walletService) transfer(ctx context.Context, email string, amount decimal.Decimal, resolve resolveReceiverFunc) (*WalletDetails, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("transfer: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("transfer: transaction controller does not implement DBExecutor")
	}

	sender, senderWallet, err := s.userWallet(ctx, txExecutor, email)
	if err != nil {
		return nil, err
	}

	receiverWallet, outCounterpart, inCounterpart, err := resolve(ctx, txExecutor, senderWallet)
	if err != nil {
		return nil, err
	}

	locked, err := s.walletRepo.LockWalletsByCVU(ctx, txExecutor, senderWallet.CVU, receiverWallet.CVU)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.CodeWalletNotFound, "")
		}
		return nil, fmt.Errorf("transfer: failed to lock wallets: %w", err)
	}
	senderWallet = locked[senderWallet.CVU]
	receiverWallet = locked[receiverWallet.CVU]

	if senderWallet.Balance.LessThan(amount) {
		return nil, apperr.New(apperr.CodeInsufficientFunds, "")
	}

	now := time.Now().UTC()
	sentToday, err := s.transactionRepo.SumTransfersOutOnDay(ctx, txExecutor, sender.ID, now)
	if err != nil {
		return nil, fmt.Errorf("transfer: failed to sum daily transfers: %w", err)
	}
	if sentToday.Add(amount).GreaterThan(validate.MaxDailyTransfer) {
		return nil, apperr.New(apperr.CodeAmountExceedsLimit, "Se alcanzó el límite diario de transferencias.")
	}

	if err := s.walletRepo.AdjustBalance(ctx, txExecutor, senderWallet.ID, amount.Neg()); err != nil {
		return nil, apperr.Wrap(apperr.CodeTransferPersistenceError, "", err)
	}
	if err := s.walletRepo.AdjustBalance(ctx, txExecutor, receiverWallet.ID, amount); err != nil {
		return nil, apperr.Wrap(apperr.CodeTransferPersistenceError, "", err)
	}

	out := domain.NewTransaction(sender.ID, domain.TransactionTypeTransferOut, amount, outCounterpart)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, out); err != nil {
		return nil, apperr.Wrap(apperr.CodeTransferPersistenceError, "", err)
	}
	in := domain.NewTransaction(receiverWallet.UserID, domain.TransactionTypeTransferIn, amount, inCounterpart)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, in); err != nil {
		return nil, apperr.Wrap(apperr.CodeTransferPersistenceError, "", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, apperr.Wrap(apperr.CodeTransferPersistenceError, "", err)
	}

	senderWallet.Balance = senderWallet.Balance.Sub(amount)
	return snapshot(senderWallet), nil
}

// UpdateAlias rotates the caller's alias to a freshly generated one and
// journals an ALIAS_CHANGE row. The CVU never changes.
func (s *walletService) UpdateAlias(ctx context.Context, email string) (*AliasRotation, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("update-alias: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("update-alias: transaction controller does not implement DBExecutor")
	}

	user, wallet, err := s.userWallet(ctx, txExecutor, email)
	if err != nil {
		return nil, err
	}
	previous := wallet.Alias

	alias, err := s.aliasGen.Generate(ctx, func(ctx context.Context, candidate string) (bool, error) {
		return s.walletRepo.ExistsByAlias(ctx, txExecutor, candidate)
	})
	if err != nil {
		return nil, err
	}

	if err := s.walletRepo.UpdateAlias(ctx, txExecutor, wallet.ID, alias); err != nil {
		return nil, err
	}

	change := domain.NewTransaction(user.ID, domain.TransactionTypeAliasChange, decimal.Zero, domain.CounterpartOf(alias))
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, change); err != nil {
		return nil, fmt.Errorf("update-alias: failed to journal alias change: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update-alias: failed to commit transaction: %w", err)
	}

	return &AliasRotation{PreviousAlias: previous, NewAlias: alias, CVU: wallet.CVU}, nil
}

// GetTransactionHistory returns the caller's journal, most recent first.
func (s *walletService) GetTransactionHistory(ctx context.Context, email string) ([]domain.Transaction, error) {
	user, err := s.userByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		return nil, err
	}
	history, err := s.transactionRepo.ListTransactionsByUser(ctx, s.dbExecutor, user.ID)
	if err != nil {
		return nil, fmt.Errorf("history: failed to list transactions: %w", err)
	}
	return history, nil
}

// adjust applies a single-wallet balance change with its journal row inside
// one transaction. delta is negative for debits; txType carries the absolute
// amount.
func (s *walletService) adjust(ctx context.Context, email string, delta decimal.Decimal, txType domain.TransactionType, counterpart *string) (*WalletDetails, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", txType, err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("%s: transaction controller does not implement DBExecutor", txType)
	}

	user, wallet, err := s.userWallet(ctx, txExecutor, email)
	if err != nil {
		return nil, err
	}

	locked, err := s.walletRepo.LockWalletsByCVU(ctx, txExecutor, wallet.CVU)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to lock wallet: %w", txType, err)
	}
	wallet = locked[wallet.CVU]

	if delta.IsNegative() && wallet.Balance.LessThan(delta.Neg()) {
		return nil, apperr.New(apperr.CodeInsufficientFunds, "")
	}

	if err := s.walletRepo.AdjustBalance(ctx, txExecutor, wallet.ID, delta); err != nil {
		return nil, fmt.Errorf("%s: failed to adjust balance: %w", txType, err)
	}

	entry := domain.NewTransaction(user.ID, txType, delta.Abs(), counterpart)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, entry); err != nil {
		return nil, fmt.Errorf("%s: failed to journal: %w", txType, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", txType, err)
	}

	wallet.Balance = wallet.Balance.Add(delta)
	return snapshot(wallet), nil
}

// userWallet loads the caller and their wallet on the given executor.
func (s *walletService) userWallet(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, *domain.Wallet, error) {
	user, err := s.userByEmail(ctx, q, email)
	if err != nil {
		return nil, nil, err
	}
	wallet, err := s.walletRepo.GetWalletByUserID(ctx, q, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperr.New(apperr.CodeWalletNotFound, "")
		}
		return nil, nil, fmt.Errorf("failed to load wallet for user %d: %w", user.ID, err)
	}
	return user, wallet, nil
}

func (s *walletService) userByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, q, validate.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.CodeUserNotFound, "")
		}
		return nil, fmt.Errorf("failed to load user by email: %w", err)
	}
	return user, nil
}

func snapshot(wallet *domain.Wallet) *WalletDetails {
	return &WalletDetails{
		Alias:   wallet.Alias,
		CVU:     wallet.CVU,
		Balance: wallet.Balance,
	}
}
