// internal/api/handler/wallet_test.go
package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cyberwallet-api/internal/api/middleware"
	"cyberwallet-api/internal/apperr"
	"cyberwallet-api/internal/card"
	"cyberwallet-api/internal/domain"
	"cyberwallet-api/internal/service"
)

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) Details(ctx context.Context, email string) (*service.WalletDetails, error) {
	args := m.Called(ctx, email)
	var details *service.WalletDetails
	if args.Get(0) != nil {
		details = args.Get(0).(*service.WalletDetails)
	}
	return details, args.Error(1)
}

func (m *MockWalletService) Deposit(ctx context.Context, email string, amount decimal.Decimal) (*service.WalletDetails, error) {
	args := m.Called(ctx, email, amount)
	var details *service.WalletDetails
	if args.Get(0) != nil {
		details = args.Get(0).(*service.WalletDetails)
	}
	return details, args.Error(1)
}

func (m *MockWalletService) Withdraw(ctx context.Context, email string, amount decimal.Decimal) (*service.WalletDetails, error) {
	args := m.Called(ctx, email, amount)
	var details *service.WalletDetails
	if args.Get(0) != nil {
		details = args.Get(0).(*service.WalletDetails)
	}
	return details, args.Error(1)
}

func (m *MockWalletService) LoadCard(ctx context.Context, email string, details card.Details, amount decimal.Decimal) (*service.LoadCardResult, error) {
	args := m.Called(ctx, email, details, amount)
	var result *service.LoadCardResult
	if args.Get(0) != nil {
		result = args.Get(0).(*service.LoadCardResult)
	}
	return result, args.Error(1)
}

func (m *MockWalletService) TransferByCVU(ctx context.Context, email, targetCVU string, amount decimal.Decimal) (*service.WalletDetails, error) {
	args := m.Called(ctx, email, targetCVU, amount)
	var details *service.WalletDetails
	if args.Get(0) != nil {
		details = args.Get(0).(*service.WalletDetails)
	}
	return details, args.Error(1)
}

func (m *MockWalletService) TransferByAlias(ctx context.Context, email, targetAlias string, amount decimal.Decimal) (*service.WalletDetails, error) {
	args := m.Called(ctx, email, targetAlias, amount)
	var details *service.WalletDetails
	if args.Get(0) != nil {
		details = args.Get(0).(*service.WalletDetails)
	}
	return details, args.Error(1)
}

func (m *MockWalletService) UpdateAlias(ctx context.Context, email string) (*service.AliasRotation, error) {
	args := m.Called(ctx, email)
	var rotation *service.AliasRotation
	if args.Get(0) != nil {
		rotation = args.Get(0).(*service.AliasRotation)
	}
	return rotation, args.Error(1)
}

func (m *MockWalletService) GetTransactionHistory(ctx context.Context, email string) ([]domain.Transaction, error) {
	args := m.Called(ctx, email)
	var history []domain.Transaction
	if args.Get(0) != nil {
		history = args.Get(0).([]domain.Transaction)
	}
	return history, args.Error(1)
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx := middleware.ContextWithPrincipal(req.Context(), middleware.Principal{UserID: 7, Email: "juan@mail.com"})
	return req.WithContext(ctx)
}

func newWalletHandler(walletSvc service.WalletService) *WalletHandler {
	return NewWalletHandler(walletSvc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMoneyUnmarshal(t *testing.T) {
	t.Run("RejectsExponentNumberToken", func(t *testing.T) {
		var req AmountRequest
		err := json.Unmarshal([]byte(`{"amount": 1e6}`), &req)

		assert.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidAmount, apperr.CodeOf(err))
	})

	t.Run("RejectsUppercaseExponent", func(t *testing.T) {
		var req AmountRequest
		err := json.Unmarshal([]byte(`{"amount": 1E6}`), &req)

		assert.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidAmount, apperr.CodeOf(err))
	})

	t.Run("RejectsExponentStringToken", func(t *testing.T) {
		var req AmountRequest
		err := json.Unmarshal([]byte(`{"amount": "2e3"}`), &req)

		assert.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidAmount, apperr.CodeOf(err))
	})

	t.Run("AcceptsPlainNumber", func(t *testing.T) {
		var req AmountRequest
		err := json.Unmarshal([]byte(`{"amount": 100.50}`), &req)

		assert.NoError(t, err)
		assert.True(t, req.Amount.Decimal.Equal(decimal.RequireFromString("100.50")))
	})

	t.Run("AcceptsQuotedNumber", func(t *testing.T) {
		var req AmountRequest
		err := json.Unmarshal([]byte(`{"amount": "250.75"}`), &req)

		assert.NoError(t, err)
		assert.True(t, req.Amount.Decimal.Equal(decimal.RequireFromString("250.75")))
	})
}

func TestDepositHandler(t *testing.T) {
	t.Run("ExponentAmountRejectedBeforeService", func(t *testing.T) {
		walletSvc := new(MockWalletService)
		h := newWalletHandler(walletSvc)

		rec := httptest.NewRecorder()
		h.Deposit(rec, authedRequest(http.MethodPost, "/api/v1/wallet/deposit", `{"amount": 1e6}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid-amount")
		walletSvc.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PlainAmountReachesService", func(t *testing.T) {
		walletSvc := new(MockWalletService)
		h := newWalletHandler(walletSvc)
		walletSvc.On("Deposit", mock.Anything, "juan@mail.com", mock.MatchedBy(func(amount decimal.Decimal) bool {
			return amount.Equal(decimal.RequireFromString("1000000"))
		})).Return(&service.WalletDetails{
			Alias:   "uno.dos.tres",
			CVU:     "1000000000000000000001",
			Balance: decimal.RequireFromString("1000500.00"),
		}, nil).Once()

		rec := httptest.NewRecorder()
		h.Deposit(rec, authedRequest(http.MethodPost, "/api/v1/wallet/deposit", `{"amount": 1000000}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "uno.dos.tres")
		walletSvc.AssertExpectations(t)
	})
}

func TestTransferHandlersRejectExponentAmounts(t *testing.T) {
	t.Run("ByCVU", func(t *testing.T) {
		walletSvc := new(MockWalletService)
		h := newWalletHandler(walletSvc)

		rec := httptest.NewRecorder()
		body := `{"cvu": "2000000000000000000002", "amount": 1e6}`
		h.TransferByCVU(rec, authedRequest(http.MethodPost, "/api/v1/wallet/transfer/cvu", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid-amount")
		walletSvc.AssertNotCalled(t, "TransferByCVU", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ByAlias", func(t *testing.T) {
		walletSvc := new(MockWalletService)
		h := newWalletHandler(walletSvc)

		rec := httptest.NewRecorder()
		body := `{"alias": "uno.dos.tres", "amount": 2.5e5}`
		h.TransferByAlias(rec, authedRequest(http.MethodPost, "/api/v1/wallet/transfer/alias", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid-amount")
		walletSvc.AssertNotCalled(t, "TransferByAlias", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("LoadCard", func(t *testing.T) {
		walletSvc := new(MockWalletService)
		h := newWalletHandler(walletSvc)

		rec := httptest.NewRecorder()
		body := `{"cardNumber": "4111111111111111", "cardHolder": "JUAN PEREZ", "expiration": "12/99", "cvv": "123", "amount": 3e6}`
		h.LoadCard(rec, authedRequest(http.MethodPost, "/api/v1/wallet/load-card", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid-amount")
		walletSvc.AssertNotCalled(t, "LoadCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MalformedBodyStaysInvalidArgument", func(t *testing.T) {
		walletSvc := new(MockWalletService)
		h := newWalletHandler(walletSvc)

		rec := httptest.NewRecorder()
		h.TransferByCVU(rec, authedRequest(http.MethodPost, "/api/v1/wallet/transfer/cvu", `{not-json`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid-argument")
	})
}
