// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cyberwallet-api/internal/api/problem"
	"cyberwallet-api/internal/apperr"
)

// DefaultTimeout bounds a single request end to end.
const DefaultTimeout = 60 * time.Second

// respondWithJSON writes payload with the given status code.
func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// decodeBody decodes a JSON request body into dst. Application errors raised
// by custom field unmarshallers (such as Money) are kept; any other decode
// failure is reported as fallback with the given detail.
func decodeBody(r *http.Request, dst interface{}, fallback apperr.Code, detail string) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperr.New(fallback, detail)
	}
	return nil
}

// respondWithError routes err through the problem-details envelope.
func respondWithError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	problem.Write(w, r, logger, err)
}
