// internal/api/handler/wallet.go
package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"cyberwallet-api/internal/api/middleware"
	"cyberwallet-api/internal/api/problem"
	"cyberwallet-api/internal/apperr"
	"cyberwallet-api/internal/card"
	"cyberwallet-api/internal/service"

	"github.com/shopspring/decimal"
)

// WalletHandler handles HTTP requests related to wallet operations.
type WalletHandler struct {
	wallet service.WalletService
	logger *slog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallet service.WalletService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{wallet: wallet, logger: logger}
}

func (h *WalletHandler) principal(w http.ResponseWriter, r *http.Request) (middleware.Principal, bool) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		problem.WriteCode(w, r, apperr.CodeUnauthorized, "", nil)
	}
	return principal, ok
}

// walletResponse is the wallet snapshot shared by most responses.
type walletResponse struct {
	Alias   string          `json:"alias"`
	CVU     string          `json:"cvu"`
	Balance decimal.Decimal `json:"balance"`
}

func toWalletResponse(d *service.WalletDetails) walletResponse {
	return walletResponse{Alias: d.Alias, CVU: d.CVU, Balance: d.Balance}
}

// Details returns the caller's wallet.
// GET /api/v1/wallet/details
func (h *WalletHandler) Details(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	details, err := h.wallet.Details(r.Context(), principal.Email)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, toWalletResponse(details))
}

// Money decodes a JSON money field. decimal.Decimal alone accepts exponent
// tokens such as 1e6 and normalizes them away, so the raw token is inspected
// before conversion.
type Money struct {
	decimal.Decimal
}

func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.ContainsAny(data, "eE") {
		return apperr.New(apperr.CodeInvalidAmount, "Formato de monto inválido: no se permiten exponentes.")
	}
	return m.Decimal.UnmarshalJSON(data)
}

// AmountRequest carries a bare monetary amount.
type AmountRequest struct {
	Amount Money `json:"amount"`
}

// Deposit credits the caller's wallet.
// POST /api/v1/wallet/deposit
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req AmountRequest
	if err := decodeBody(r, &req, apperr.CodeInvalidAmount, "Formato de monto inválido."); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	details, err := h.wallet.Deposit(r.Context(), principal.Email, req.Amount.Decimal)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, toWalletResponse(details))
}

// Withdraw debits the caller's wallet.
// POST /api/v1/wallet/withdraw
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req AmountRequest
	if err := decodeBody(r, &req, apperr.CodeInvalidAmount, "Formato de monto inválido."); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	details, err := h.wallet.Withdraw(r.Context(), principal.Email, req.Amount.Decimal)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, toWalletResponse(details))
}

// LoadCardRequest is the simulated card top-up form.
type LoadCardRequest struct {
	CardNumber string `json:"cardNumber"`
	Holder     string `json:"cardHolder"`
	Expiration string `json:"expiration"`
	CVV        string `json:"cvv"`
	Amount     Money  `json:"amount"`
}

// LoadCard credits the wallet from a simulated card.
// POST /api/v1/wallet/load-card
func (h *WalletHandler) LoadCard(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req LoadCardRequest
	if err := decodeBody(r, &req, apperr.CodeInvalidArgument, "El cuerpo de la solicitud no es un JSON válido."); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	result, err := h.wallet.LoadCard(r.Context(), principal.Email, card.Details{
		Number:     req.CardNumber,
		Holder:     req.Holder,
		Expiration: req.Expiration,
		CVV:        req.CVV,
	}, req.Amount.Decimal)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"alias":   result.Alias,
		"cvu":     result.CVU,
		"balance": result.Balance,
		"brand":   result.Brand,
	})
}

// TransferCVURequest targets a wallet by account number.
type TransferCVURequest struct {
	CVU    string `json:"cvu"`
	Amount Money  `json:"amount"`
}

// TransferByCVU moves funds to the wallet holding the CVU.
// POST /api/v1/wallet/transfer/cvu
func (h *WalletHandler) TransferByCVU(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req TransferCVURequest
	if err := decodeBody(r, &req, apperr.CodeInvalidArgument, "El cuerpo de la solicitud no es un JSON válido."); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	details, err := h.wallet.TransferByCVU(r.Context(), principal.Email, req.CVU, req.Amount.Decimal)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"alias":   details.Alias,
		"cvu":     details.CVU,
		"balance": details.Balance,
		"message": "Transferencia realizada correctamente.",
	})
}

// TransferAliasRequest targets a wallet by alias.
type TransferAliasRequest struct {
	Alias  string `json:"alias"`
	Amount Money  `json:"amount"`
}

// TransferByAlias moves funds to the wallet holding the alias.
// POST /api/v1/wallet/transfer/alias
func (h *WalletHandler) TransferByAlias(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req TransferAliasRequest
	if err := decodeBody(r, &req, apperr.CodeInvalidArgument, "El cuerpo de la solicitud no es un JSON válido."); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	details, err := h.wallet.TransferByAlias(r.Context(), principal.Email, req.Alias, req.Amount.Decimal)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"alias":   details.Alias,
		"cvu":     details.CVU,
		"balance": details.Balance,
		"message": "Transferencia realizada correctamente.",
	})
}

// UpdateAliasRequest exists for wire compatibility; the submitted alias is
// ignored and a fresh one is generated.
type UpdateAliasRequest struct {
	Alias string `json:"alias"`
}

// UpdateAlias rotates the caller's alias.
// PUT /api/v1/wallet/alias
func (h *WalletHandler) UpdateAlias(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req UpdateAliasRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	rotation, err := h.wallet.UpdateAlias(r.Context(), principal.Email)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"previousAlias": rotation.PreviousAlias,
		"alias":         rotation.NewAlias,
		"cvu":           rotation.CVU,
	})
}

// History returns the caller's journal, most recent first.
// GET /api/v1/transactions/history
func (h *WalletHandler) History(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	history, err := h.wallet.GetTransactionHistory(r.Context(), principal.Email)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, history)
}
