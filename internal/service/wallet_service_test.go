// internal/service/wallet_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"cyberwallet-api/internal/apperr"
	"cyberwallet-api/internal/card"
	"cyberwallet-api/internal/domain"
	"cyberwallet-api/pkg/db"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// walletFixture bundles the mocks and the service under test. A fresh fixture
// is built inside every t.Run block so expectations never leak across cases.
type walletFixture struct {
	userRepo        *MockUserRepository
	walletRepo      *MockWalletRepository
	transactionRepo *MockTransactionRepository
	dbBeginner      *MockDBBeginner
	dbExecutor      *MockDBExecutor
	txController    *MockTxController
	service         WalletService
}

func newWalletFixture() *walletFixture {
	f := &walletFixture{
		userRepo:        new(MockUserRepository),
		walletRepo:      new(MockWalletRepository),
		transactionRepo: new(MockTransactionRepository),
		dbBeginner:      new(MockDBBeginner),
		dbExecutor:      new(MockDBExecutor),
		txController:    new(MockTxController),
	}
	f.service = NewWalletService(
		f.dbBeginner,
		f.dbExecutor,
		f.userRepo,
		f.walletRepo,
		f.transactionRepo,
		testAliasGenerator(),
		func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			return f.txController, nil
		},
		func(tx db.TxController) error {
			return f.txController.Commit()
		},
		func(tx db.TxController) {
			_ = f.txController.Rollback()
		},
	)
	return f
}

func (f *walletFixture) assertExpectations(t *testing.T) {
	t.Helper()
	mock.AssertExpectationsForObjects(t, f.userRepo, f.walletRepo, f.transactionRepo, f.dbBeginner, f.txController)
}

func testUser(id int64, email string) *domain.User {
	return &domain.User{
		ID:        id,
		FirstName: "Juan",
		LastName:  "Perez",
		Email:     email,
		Username:  "jperez",
		Status:    domain.UserStatusActive,
	}
}

func testWallet(id, userID int64, cvu, alias string, balance decimal.Decimal) *domain.Wallet {
	return &domain.Wallet{
		ID:      id,
		UserID:  userID,
		Balance: balance,
		CVU:     cvu,
		Alias:   alias,
	}
}

const (
	senderCVU   = "1000000000000000000001"
	receiverCVU = "2000000000000000000002"
)

// TestDeposit tests the Deposit method of WalletService.
func TestDeposit(t *testing.T) {
	t.Run("SuccessfulDeposit", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()
		amount := decimal.NewFromFloat(100.00)

		user := testUser(1, "juan@mail.com")
		wallet := testWallet(10, 1, senderCVU, "uno.dos.tres", decimal.NewFromFloat(500.00))

		f.txController.On("Commit").Return(nil).Once()
		f.txController.On("Rollback").Return(nil).Maybe()

		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(user, nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, int64(1)).Return(wallet, nil).Once()
		f.walletRepo.On("LockWalletsByCVU", ctx, mock.Anything, []string{senderCVU}).
			Return(map[string]*domain.Wallet{senderCVU: wallet}, nil).Once()
		f.walletRepo.On("AdjustBalance", ctx, mock.Anything, int64(10), amount).Return(nil).Once()
		f.transactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).
			Run(func(args mock.Arguments) {
				entry := args.Get(2).(*domain.Transaction)
				assert.Equal(t, domain.TransactionTypeDeposit, entry.Type)
				assert.True(t, entry.Amount.Equal(amount))
				assert.Nil(t, entry.Counterpart)
			}).Return(nil).Once()

		details, err := f.service.Deposit(ctx, "juan@mail.com", amount)

		assert.NoError(t, err)
		assert.NotNil(t, details)
		assert.Equal(t, senderCVU, details.CVU)
		assert.True(t, details.Balance.Equal(decimal.NewFromFloat(600.00)))
		f.assertExpectations(t)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		details, err := f.service.Deposit(ctx, "juan@mail.com", decimal.NewFromFloat(-10.00))

		assert.Nil(t, details)
		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidAmount))
		f.txController.AssertNotCalled(t, "Commit")
		f.assertExpectations(t)
	})

	t.Run("TooManyDecimals", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		_, err := f.service.Deposit(ctx, "juan@mail.com", decimal.RequireFromString("10.009"))

		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidAmount))
	})
}

// TestWithdraw tests the Withdraw method of WalletService.
func TestWithdraw(t *testing.T) {
	t.Run("InsufficientFunds", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()
		amount := decimal.NewFromFloat(100.00)

		user := testUser(1, "juan@mail.com")
		wallet := testWallet(10, 1, senderCVU, "uno.dos.tres", decimal.NewFromFloat(50.00))

		f.txController.On("Rollback").Return(nil).Maybe()
		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(user, nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, int64(1)).Return(wallet, nil).Once()
		f.walletRepo.On("LockWalletsByCVU", ctx, mock.Anything, []string{senderCVU}).
			Return(map[string]*domain.Wallet{senderCVU: wallet}, nil).Once()

		details, err := f.service.Withdraw(ctx, "juan@mail.com", amount)

		assert.Nil(t, details)
		assert.True(t, apperr.IsCode(err, apperr.CodeInsufficientFunds))
		f.walletRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.txController.AssertNotCalled(t, "Commit")
		f.assertExpectations(t)
	})

	t.Run("SuccessfulWithdraw", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()
		amount := decimal.NewFromFloat(120.50)

		user := testUser(1, "juan@mail.com")
		wallet := testWallet(10, 1, senderCVU, "uno.dos.tres", decimal.NewFromFloat(500.00))

		f.txController.On("Commit").Return(nil).Once()
		f.txController.On("Rollback").Return(nil).Maybe()
		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(user, nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, int64(1)).Return(wallet, nil).Once()
		f.walletRepo.On("LockWalletsByCVU", ctx, mock.Anything, []string{senderCVU}).
			Return(map[string]*domain.Wallet{senderCVU: wallet}, nil).Once()
		f.walletRepo.On("AdjustBalance", ctx, mock.Anything, int64(10), amount.Neg()).Return(nil).Once()
		f.transactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).
			Run(func(args mock.Arguments) {
				entry := args.Get(2).(*domain.Transaction)
				assert.Equal(t, domain.TransactionTypeWithdraw, entry.Type)
				assert.True(t, entry.Amount.Equal(amount))
			}).Return(nil).Once()

		details, err := f.service.Withdraw(ctx, "juan@mail.com", amount)

		assert.NoError(t, err)
		assert.True(t, details.Balance.Equal(decimal.NewFromFloat(379.50)))
		f.assertExpectations(t)
	})
}

// TestTransferByCVU tests the TransferByCVU method of WalletService.
func TestTransferByCVU(t *testing.T) {
	t.Run("SuccessfulTransfer", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()
		amount := decimal.NewFromFloat(100.00)

		sender := testUser(1, "juan@mail.com")
		senderWallet := testWallet(10, 1, senderCVU, "uno.dos.tres", decimal.NewFromFloat(500.00))
		receiverWallet := testWallet(20, 2, receiverCVU, "cua.cin.sei", decimal.NewFromFloat(50.00))

		f.txController.On("Commit").Return(nil).Once()
		f.txController.On("Rollback").Return(nil).Maybe()
		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(sender, nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, int64(1)).Return(senderWallet, nil).Once()
		f.walletRepo.On("GetWalletByCVU", ctx, mock.Anything, receiverCVU).Return(receiverWallet, nil).Once()
		f.walletRepo.On("LockWalletsByCVU", ctx, mock.Anything, []string{senderCVU, receiverCVU}).
			Return(map[string]*domain.Wallet{senderCVU: senderWallet, receiverCVU: receiverWallet}, nil).Once()
		f.transactionRepo.On("SumTransfersOutOnDay", ctx, mock.Anything, int64(1), mock.AnythingOfType("time.Time")).
			Return(decimal.Zero, nil).Once()
		f.walletRepo.On("AdjustBalance", ctx, mock.Anything, int64(10), amount.Neg()).Return(nil).Once()
		f.walletRepo.On("AdjustBalance", ctx, mock.Anything, int64(20), amount).Return(nil).Once()

		var journaled []*domain.Transaction
		f.transactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).
			Run(func(args mock.Arguments) {
				journaled = append(journaled, args.Get(2).(*domain.Transaction))
			}).Return(nil).Twice()

		details, err := f.service.TransferByCVU(ctx, "juan@mail.com", receiverCVU, amount)

		assert.NoError(t, err)
		assert.NotNil(t, details)
		assert.True(t, details.Balance.Equal(decimal.NewFromFloat(400.00)))

		if assert.Len(t, journaled, 2) {
			out, in := journaled[0], journaled[1]
			assert.Equal(t, domain.TransactionTypeTransferOut, out.Type)
			assert.Equal(t, int64(1), out.UserID)
			assert.Equal(t, receiverCVU, *out.Counterpart)
			assert.Equal(t, domain.TransactionTypeTransferIn, in.Type)
			assert.Equal(t, int64(2), in.UserID)
			assert.Equal(t, senderCVU, *in.Counterpart)
		}
		f.assertExpectations(t)
	})

	t.Run("SelfTransfer", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		sender := testUser(1, "juan@mail.com")
		senderWallet := testWallet(10, 1, senderCVU, "uno.dos.tres", decimal.NewFromFloat(500.00))

		f.txController.On("Rollback").Return(nil).Maybe()
		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(sender, nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, int64(1)).Return(senderWallet, nil).Once()

		details, err := f.service.TransferByCVU(ctx, "juan@mail.com", senderCVU, decimal.NewFromFloat(10.00))

		assert.Nil(t, details)
		assert.True(t, apperr.IsCode(err, apperr.CodeSelfTransfer))
		f.txController.AssertNotCalled(t, "Commit")
		f.assertExpectations(t)
	})

	t.Run("ReceiverNotFound", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		sender := testUser(1, "juan@mail.com")
		senderWallet := testWallet(10, 1, senderCVU, "uno.dos.tres", decimal.NewFromFloat(500.00))

		f.txController.On("Rollback").Return(nil).Maybe()
		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(sender, nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, int64(1)).Return(senderWallet, nil).Once()
		f.walletRepo.On("GetWalletByCVU", ctx, mock.Anything, receiverCVU).Return(nil, errNotFoundForTest()).Once()

		details, err := f.service.TransferByCVU(ctx, "juan@mail.com", receiverCVU, decimal.NewFromFloat(10.00))

		assert.Nil(t, details)
		assert.True(t, apperr.IsCode(err, apperr.CodeWalletNotFound))
		f.assertExpectations(t)
	})

	t.Run("AmountOverPerOperationCap", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		_, err := f.service.TransferByCVU(ctx, "juan@mail.com", receiverCVU, decimal.RequireFromString("1000000.01"))

		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidAmount))
		f.userRepo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DailyCapExceeded", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()
		amount := decimal.NewFromFloat(600000.00)

		sender := testUser(1, "juan@mail.com")
		senderWallet := testWallet(10, 1, senderCVU, "uno.dos.tres", decimal.NewFromFloat(900000.00))
		receiverWallet := testWallet(20, 2, receiverCVU, "cua.cin.sei", decimal.NewFromFloat(50.00))

		f.txController.On("Rollback").Return(nil).Maybe()
		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(sender, nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, int64(1)).Return(senderWallet, nil).Once()
		f.walletRepo.On("GetWalletByCVU", ctx, mock.Anything, receiverCVU).Return(receiverWallet, nil).Once()
		f.walletRepo.On("LockWalletsByCVU", ctx, mock.Anything, []string{senderCVU, receiverCVU}).
			Return(map[string]*domain.Wallet{senderCVU: senderWallet, receiverCVU: receiverWallet}, nil).Once()
		f.transactionRepo.On("SumTransfersOutOnDay", ctx, mock.Anything, int64(1), mock.AnythingOfType("time.Time")).
			Return(decimal.RequireFromString("2500000.00"), nil).Once()

		details, err := f.service.TransferByCVU(ctx, "juan@mail.com", receiverCVU, amount)

		assert.Nil(t, details)
		assert.True(t, apperr.IsCode(err, apperr.CodeAmountExceedsLimit))
		f.walletRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.txController.AssertNotCalled(t, "Commit")
		f.assertExpectations(t)
	})
}

// TestTransferByAlias tests the TransferByAlias method of WalletService.
func TestTransferByAlias(t *testing.T) {
	t.Run("ReceiverNotFound", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		sender := testUser(1, "juan@mail.com")
		senderWallet := testWallet(10, 1, senderCVU, "uno.dos.tres", decimal.NewFromFloat(500.00))

		f.txController.On("Rollback").Return(nil).Maybe()
		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(sender, nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, int64(1)).Return(senderWallet, nil).Once()
		f.walletRepo.On("GetWalletByAlias", ctx, mock.Anything, "cua.cin.sei").Return(nil, errNotFoundForTest()).Once()

		details, err := f.service.TransferByAlias(ctx, "juan@mail.com", "cua.cin.sei", decimal.NewFromFloat(10.00))

		assert.Nil(t, details)
		assert.True(t, apperr.IsCode(err, apperr.CodeReceiverNotFound))
		f.assertExpectations(t)
	})

	t.Run("SelfTransferByOwnAlias", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		sender := testUser(1, "juan@mail.com")
		senderWallet := testWallet(10, 1, senderCVU, "uno.dos.tres", decimal.NewFromFloat(500.00))

		f.txController.On("Rollback").Return(nil).Maybe()
		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(sender, nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, int64(1)).Return(senderWallet, nil).Once()
		f.walletRepo.On("GetWalletByAlias", ctx, mock.Anything, "uno.dos.tres").Return(senderWallet, nil).Once()

		details, err := f.service.TransferByAlias(ctx, "juan@mail.com", "Uno.Dos.Tres", decimal.NewFromFloat(10.00))

		assert.Nil(t, details)
		assert.True(t, apperr.IsCode(err, apperr.CodeSelfTransfer))
		f.assertExpectations(t)
	})

	t.Run("InvalidAliasFormat", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		_, err := f.service.TransferByAlias(ctx, "juan@mail.com", "not-an-alias", decimal.NewFromFloat(10.00))

		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidAliasFormat))
	})
}

// TestLoadCard tests the LoadCard method of WalletService.
func TestLoadCard(t *testing.T) {
	validCard := card.Details{
		Number:     "4111111111111111",
		Holder:     "JUAN PEREZ",
		Expiration: "12/99",
		CVV:        "123",
	}

	t.Run("SuccessfulLoad", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()
		amount := decimal.NewFromFloat(250.00)

		user := testUser(1, "juan@mail.com")
		wallet := testWallet(10, 1, senderCVU, "uno.dos.tres", decimal.NewFromFloat(100.00))

		f.txController.On("Commit").Return(nil).Once()
		f.txController.On("Rollback").Return(nil).Maybe()
		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(user, nil).Twice()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, int64(1)).Return(wallet, nil).Once()
		f.walletRepo.On("LockWalletsByCVU", ctx, mock.Anything, []string{senderCVU}).
			Return(map[string]*domain.Wallet{senderCVU: wallet}, nil).Once()
		f.walletRepo.On("AdjustBalance", ctx, mock.Anything, int64(10), amount).Return(nil).Once()
		f.transactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).
			Run(func(args mock.Arguments) {
				entry := args.Get(2).(*domain.Transaction)
				assert.Equal(t, domain.TransactionTypeLoadFunds, entry.Type)
				assert.Equal(t, domain.CounterpartVirtualCard, *entry.Counterpart)
			}).Return(nil).Once()

		result, err := f.service.LoadCard(ctx, "juan@mail.com", validCard, amount)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, card.BrandVisa, result.Brand)
		assert.True(t, result.Balance.Equal(decimal.NewFromFloat(350.00)))
		f.assertExpectations(t)
	})

	t.Run("AmountOverGlobalCap", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		result, err := f.service.LoadCard(ctx, "juan@mail.com", validCard, decimal.RequireFromString("3000000.01"))

		assert.Nil(t, result)
		assert.True(t, apperr.IsCode(err, apperr.CodeAmountExceedsLimit))
		f.userRepo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("HolderMismatch", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		user := testUser(1, "juan@mail.com")
		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(user, nil).Once()

		mismatched := validCard
		mismatched.Holder = "OTRA PERSONA"
		result, err := f.service.LoadCard(ctx, "juan@mail.com", mismatched, decimal.NewFromFloat(100.00))

		assert.Nil(t, result)
		assert.True(t, apperr.IsCode(err, apperr.CodeCardholderNameMismatch))
		f.txController.AssertNotCalled(t, "Commit")
		f.assertExpectations(t)
	})

	t.Run("ExpiredCard", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		user := testUser(1, "juan@mail.com")
		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(user, nil).Once()

		expired := validCard
		expired.Expiration = "01/20"
		result, err := f.service.LoadCard(ctx, "juan@mail.com", expired, decimal.NewFromFloat(100.00))

		assert.Nil(t, result)
		assert.True(t, apperr.IsCode(err, apperr.CodeCardExpired))
		f.assertExpectations(t)
	})
}

// TestUpdateAlias tests the UpdateAlias method of WalletService.
func TestUpdateAlias(t *testing.T) {
	t.Run("SuccessfulRotation", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		user := testUser(1, "juan@mail.com")
		wallet := testWallet(10, 1, senderCVU, "uno.dos.tres", decimal.NewFromFloat(500.00))

		f.txController.On("Commit").Return(nil).Once()
		f.txController.On("Rollback").Return(nil).Maybe()
		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(user, nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, int64(1)).Return(wallet, nil).Once()
		f.walletRepo.On("ExistsByAlias", ctx, mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()

		var assigned string
		f.walletRepo.On("UpdateAlias", ctx, mock.Anything, int64(10), mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				assigned = args.Get(3).(string)
			}).Return(nil).Once()
		f.transactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).
			Run(func(args mock.Arguments) {
				entry := args.Get(2).(*domain.Transaction)
				assert.Equal(t, domain.TransactionTypeAliasChange, entry.Type)
				assert.True(t, entry.Amount.IsZero())
			}).Return(nil).Once()

		rotation, err := f.service.UpdateAlias(ctx, "juan@mail.com")

		assert.NoError(t, err)
		assert.NotNil(t, rotation)
		assert.Equal(t, "uno.dos.tres", rotation.PreviousAlias)
		assert.Equal(t, assigned, rotation.NewAlias)
		assert.NotEqual(t, rotation.PreviousAlias, rotation.NewAlias)
		assert.Equal(t, senderCVU, rotation.CVU)
		assert.Regexp(t, `^[a-z]{2,}\.[a-z]{2,}\.[a-z]{2,}$`, rotation.NewAlias)
		f.assertExpectations(t)
	})

	t.Run("GenerationExhausted", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		user := testUser(1, "juan@mail.com")
		wallet := testWallet(10, 1, senderCVU, "uno.dos.tres", decimal.NewFromFloat(500.00))

		f.txController.On("Rollback").Return(nil).Maybe()
		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(user, nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, int64(1)).Return(wallet, nil).Once()
		// Every candidate reported taken exhausts the retry budget.
		f.walletRepo.On("ExistsByAlias", ctx, mock.Anything, mock.AnythingOfType("string")).Return(true, nil).Times(10)

		rotation, err := f.service.UpdateAlias(ctx, "juan@mail.com")

		assert.Nil(t, rotation)
		assert.True(t, apperr.IsCode(err, apperr.CodeAliasAlreadyExists))
		f.walletRepo.AssertNotCalled(t, "UpdateAlias", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})
}

// TestGetTransactionHistory tests the GetTransactionHistory method of WalletService.
func TestGetTransactionHistory(t *testing.T) {
	t.Run("ReturnsJournalMostRecentFirst", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		user := testUser(1, "juan@mail.com")
		now := time.Now().UTC()
		history := []domain.Transaction{
			{ID: 3, UserID: 1, Type: domain.TransactionTypeTransferOut, Amount: decimal.NewFromFloat(30), Date: now},
			{ID: 2, UserID: 1, Type: domain.TransactionTypeDeposit, Amount: decimal.NewFromFloat(100), Date: now.Add(-time.Hour)},
		}

		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(user, nil).Once()
		f.transactionRepo.On("ListTransactionsByUser", ctx, mock.Anything, int64(1)).Return(history, nil).Once()

		got, err := f.service.GetTransactionHistory(ctx, "juan@mail.com")

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, int64(3), got[0].ID)
		f.assertExpectations(t)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "ghost@mail.com").Return(nil, errNotFoundForTest()).Once()

		got, err := f.service.GetTransactionHistory(ctx, "ghost@mail.com")

		assert.Nil(t, got)
		assert.True(t, apperr.IsCode(err, apperr.CodeUserNotFound))
		f.assertExpectations(t)
	})
}

// TestDetails tests the Details method of WalletService.
func TestDetails(t *testing.T) {
	t.Run("ReturnsSnapshot", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		user := testUser(1, "juan@mail.com")
		wallet := testWallet(10, 1, senderCVU, "uno.dos.tres", decimal.NewFromFloat(500.00))

		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(user, nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, int64(1)).Return(wallet, nil).Once()

		details, err := f.service.Details(ctx, "juan@mail.com")

		assert.NoError(t, err)
		assert.Equal(t, "uno.dos.tres", details.Alias)
		assert.Equal(t, senderCVU, details.CVU)
		assert.True(t, details.Balance.Equal(decimal.NewFromFloat(500.00)))
		f.assertExpectations(t)
	})

	t.Run("WalletNotFound", func(t *testing.T) {
		ctx := context.Background()
		f := newWalletFixture()

		user := testUser(1, "juan@mail.com")
		f.userRepo.On("GetUserByEmail", ctx, mock.Anything, "juan@mail.com").Return(user, nil).Once()
		f.walletRepo.On("GetWalletByUserID", ctx, mock.Anything, int64(1)).Return(nil, errNotFoundForTest()).Once()

		details, err := f.service.Details(ctx, "juan@mail.com")

		assert.Nil(t, details)
		assert.True(t, apperr.IsCode(err, apperr.CodeWalletNotFound))
		f.assertExpectations(t)
	})
}
