// internal/api/handler/dollar.go
package handler

import (
	"log/slog"
	"net/http"

	"cyberwallet-api/internal/service"
)

// DollarHandler handles the dollar quotation proxy.
type DollarHandler struct {
	dollar service.DollarService
	logger *slog.Logger
}

// NewDollarHandler creates a new DollarHandler.
func NewDollarHandler(dollar service.DollarService, logger *slog.Logger) *DollarHandler {
	return &DollarHandler{dollar: dollar, logger: logger}
}

// Quotes returns the upstream rates annotated with their movement.
// GET /api/v1/cotizaciones
func (h *DollarHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.dollar.Quotes(r.Context())
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, quotes)
}
