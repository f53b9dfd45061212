// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"time"

	"cyberwallet-api/internal/domain"
	"cyberwallet-api/internal/generator"
	"cyberwallet-api/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, q repository.DBExecutor, username string) (*domain.User, error) {
	args := m.Called(ctx, q, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, q repository.DBExecutor, email string) (bool, error) {
	args := m.Called(ctx, q, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, q repository.DBExecutor, username string) (bool, error) {
	args := m.Called(ctx, q, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByDNI(ctx context.Context, q repository.DBExecutor, dni string) (bool, error) {
	args := m.Called(ctx, q, dni)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDeleteUser(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetWalletByCVU(ctx context.Context, q repository.DBExecutor, cvu string) (*domain.Wallet, error) {
	args := m.Called(ctx, q, cvu)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetWalletByAlias(ctx context.Context, q repository.DBExecutor, alias string) (*domain.Wallet, error) {
	args := m.Called(ctx, q, alias)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) LockWalletsByCVU(ctx context.Context, q repository.DBExecutor, cvus ...string) (map[string]*domain.Wallet, error) {
	args := m.Called(ctx, q, cvus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) AdjustBalance(ctx context.Context, q repository.DBExecutor, walletID int64, delta decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, delta)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateAlias(ctx context.Context, q repository.DBExecutor, walletID int64, alias string) error {
	args := m.Called(ctx, q, walletID, alias)
	return args.Error(0)
}

func (m *MockWalletRepository) ExistsByAlias(ctx context.Context, q repository.DBExecutor, alias string) (bool, error) {
	args := m.Called(ctx, q, alias)
	return args.Bool(0), args.Error(1)
}

func (m *MockWalletRepository) ExistsByCVU(ctx context.Context, q repository.DBExecutor, cvu string) (bool, error) {
	args := m.Called(ctx, q, cvu)
	return args.Bool(0), args.Error(1)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, tx *domain.Transaction) error {
	args := m.Called(ctx, q, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListTransactionsByUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumTransfersOutOnDay(ctx context.Context, q repository.DBExecutor, userID int64, at time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, q, userID, at)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockActivationTokenRepository is a mock implementation of
// repository.ActivationTokenRepository.
type MockActivationTokenRepository struct {
	mock.Mock
}

func (m *MockActivationTokenRepository) CreateActivationToken(ctx context.Context, q repository.DBExecutor, token *domain.ActivationToken) error {
	args := m.Called(ctx, q, token)
	return args.Error(0)
}

func (m *MockActivationTokenRepository) GetActivationToken(ctx context.Context, q repository.DBExecutor, code string) (*domain.ActivationToken, error) {
	args := m.Called(ctx, q, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivationToken), args.Error(1)
}

func (m *MockActivationTokenRepository) MarkActivationTokenUsed(ctx context.Context, q repository.DBExecutor, tokenID int64) error {
	args := m.Called(ctx, q, tokenID)
	return args.Error(0)
}

func (m *MockActivationTokenRepository) DeleteActivationTokensForUser(ctx context.Context, q repository.DBExecutor, userID int64) error {
	args := m.Called(ctx, q, userID)
	return args.Error(0)
}

// MockPasswordResetTokenRepository is a mock implementation of
// repository.PasswordResetTokenRepository.
type MockPasswordResetTokenRepository struct {
	mock.Mock
}

func (m *MockPasswordResetTokenRepository) CreatePasswordResetToken(ctx context.Context, q repository.DBExecutor, token *domain.PasswordResetToken) error {
	args := m.Called(ctx, q, token)
	return args.Error(0)
}

func (m *MockPasswordResetTokenRepository) GetPasswordResetToken(ctx context.Context, q repository.DBExecutor, value string) (*domain.PasswordResetToken, error) {
	args := m.Called(ctx, q, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordResetToken), args.Error(1)
}

func (m *MockPasswordResetTokenRepository) MarkPasswordResetTokenUsed(ctx context.Context, q repository.DBExecutor, tokenID int64) error {
	args := m.Called(ctx, q, tokenID)
	return args.Error(0)
}

func (m *MockPasswordResetTokenRepository) InvalidateResetTokensForUser(ctx context.Context, q repository.DBExecutor, userID int64) error {
	args := m.Called(ctx, q, userID)
	return args.Error(0)
}

// MockRevokedTokenRepository is a mock implementation of
// repository.RevokedTokenRepository.
type MockRevokedTokenRepository struct {
	mock.Mock
}

func (m *MockRevokedTokenRepository) RevokeToken(ctx context.Context, q repository.DBExecutor, token *domain.RevokedToken) error {
	args := m.Called(ctx, q, token)
	return args.Error(0)
}

func (m *MockRevokedTokenRepository) IsTokenRevoked(ctx context.Context, q repository.DBExecutor, token string) (bool, error) {
	args := m.Called(ctx, q, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevokedTokenRepository) DeleteExpiredRevokedTokens(ctx context.Context, q repository.DBExecutor, now time.Time) (int64, error) {
	args := m.Called(ctx, q, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockReferenceRepository is a mock implementation of repository.ReferenceRepository.
type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) ListCountries(ctx context.Context, q repository.DBExecutor) ([]domain.Country, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Country), args.Error(1)
}

func (m *MockReferenceRepository) ListProvinces(ctx context.Context, q repository.DBExecutor) ([]domain.Province, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Province), args.Error(1)
}

func (m *MockReferenceRepository) CountryExists(ctx context.Context, q repository.DBExecutor, id int64) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReferenceRepository) ProvinceExists(ctx context.Context, q repository.DBExecutor, id, countryID int64) (bool, error) {
	args := m.Called(ctx, q, id, countryID)
	return args.Bool(0), args.Error(1)
}

// MockDollarRateRepository is a mock implementation of repository.DollarRateRepository.
type MockDollarRateRepository struct {
	mock.Mock
}

func (m *MockDollarRateRepository) GetDollarRate(ctx context.Context, q repository.DBExecutor, source string) (*domain.DollarRate, error) {
	args := m.Called(ctx, q, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DollarRate), args.Error(1)
}

func (m *MockDollarRateRepository) UpsertDollarRate(ctx context.Context, q repository.DBExecutor, rate *domain.DollarRate) error {
	args := m.Called(ctx, q, rate)
	return args.Error(0)
}

// MockMailer is a mock implementation of Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}

func (m *MockMailer) SendActivationCode(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController. It embeds
// MockDBExecutor so the service's executor type assertion succeeds.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// errNotFoundForTest is the sentinel repositories return for missing rows.
func errNotFoundForTest() error {
	return repository.ErrNotFound
}

// testAliasGenerator builds an alias generator over a synthetic dictionary
// large enough to pass the minimum-word check.
func testAliasGenerator() *generator.AliasGenerator {
	words := make([]string, 0, 26*26)
	for a := 'a'; a <= 'z'; a++ {
		for b := 'a'; b <= 'z'; b++ {
			words = append(words, "w"+string(a)+string(b))
		}
	}
	gen, err := generator.NewAliasGeneratorFromWords(words)
	if err != nil {
		panic(err)
	}
	return gen
}
