// internal/api/problem/problem.go
// Package problem writes RFC-7807 style error envelopes. Every response gets
// a fresh errorId; the traceId is taken from the inbound X-Trace-Id header
// when present.
package problem

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cyberwallet-api/internal/apperr"

	"github.com/google/uuid"
)

// TraceHeader is the inbound correlation header.
const TraceHeader = "X-Trace-Id"

// Details is the uniform error body.
type Details struct {
	Type        string              `json:"type"`
	Title       string              `json:"title"`
	Status      int                 `json:"status"`
	Detail      string              `json:"detail"`
	Instance    string              `json:"instance"`
	FieldErrors []apperr.FieldError `json:"fieldErrors,omitempty"`
	Extensions  map[string]string   `json:"extensions"`
	ErrorID     string              `json:"errorId"`
}

// Write maps err onto the envelope and writes it. Non-application errors are
// logged and surfaced as INTERNAL_SERVER_ERROR with only the default detail.
func Write(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := apperr.CodeInternal
	detail := apperr.CodeInternal.DefaultDetail()
	var fieldErrors []apperr.FieldError

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		code = appErr.Code
		detail = appErr.Detail
		fieldErrors = appErr.FieldErrors
	}
	if code.HTTPStatus() >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "code", code, "error", err)
		detail = code.DefaultDetail()
	}

	WriteCode(w, r, code, detail, fieldErrors)
}

// WriteCode writes the envelope for a known code with an explicit detail.
func WriteCode(w http.ResponseWriter, r *http.Request, code apperr.Code, detail string, fieldErrors []apperr.FieldError) {
	if detail == "" {
		detail = code.DefaultDetail()
	}

	errorID := uuid.NewString()
	traceID := r.Header.Get(TraceHeader)
	if traceID == "" {
		traceID = uuid.NewString()
	}

	body := Details{
		Type:        code.TypeURI(),
		Title:       code.Title(),
		Status:      code.HTTPStatus(),
		Detail:      detail,
		Instance:    r.URL.Path,
		FieldErrors: fieldErrors,
		Extensions: map[string]string{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"traceId":   traceID,
			"errorId":   errorID,
		},
		ErrorID: errorID,
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set(TraceHeader, traceID)
	w.WriteHeader(body.Status)
	_ = json.NewEncoder(w).Encode(body)
}
