// internal/api/handler/validation.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"cyberwallet-api/internal/apperr"
	"cyberwallet-api/internal/service"

	"github.com/go-chi/chi/v5"
)

// ValidationHandler handles the public registration helpers: reference data
// lookups and availability checks.
type ValidationHandler struct {
	reference service.ReferenceService
	logger    *slog.Logger
}

// NewValidationHandler creates a new ValidationHandler.
func NewValidationHandler(reference service.ReferenceService, logger *slog.Logger) *ValidationHandler {
	return &ValidationHandler{reference: reference, logger: logger}
}

// Countries lists country names.
// GET /api/v1/validations/countries
func (h *ValidationHandler) Countries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.reference.Countries(r.Context())
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, countries)
}

// CountriesWithIDs lists the full country catalog.
// GET /api/v1/validations/countries/with-ids
func (h *ValidationHandler) CountriesWithIDs(w http.ResponseWriter, r *http.Request) {
	countries, err := h.reference.CountriesWithIDs(r.Context())
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, countries)
}

// ProvincesByCountry lists province names for a country given by name.
// GET /api/v1/validations/provinces?country=...
func (h *ValidationHandler) ProvincesByCountry(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		respondWithError(w, r, h.logger, apperr.New(apperr.CodeInvalidArgument, "Falta el parámetro country."))
		return
	}
	provinces, err := h.reference.ProvincesByCountryName(r.Context(), country)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, provinces)
}

// ProvincesByISO2 lists province names for a country given by ISO code.
// GET /api/v1/validations/provinces/list/{iso2}
func (h *ValidationHandler) ProvincesByISO2(w http.ResponseWriter, r *http.Request) {
	provinces, err := h.reference.ProvincesByISO2(r.Context(), chi.URLParam(r, "iso2"))
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, provinces)
}

// ProvincesWithIDs lists the province catalog for a country id.
// GET /api/v1/validations/provinces/with-ids/{paisId}
func (h *ValidationHandler) ProvincesWithIDs(w http.ResponseWriter, r *http.Request) {
	countryID, err := strconv.ParseInt(chi.URLParam(r, "paisId"), 10, 64)
	if err != nil {
		respondWithError(w, r, h.logger, apperr.New(apperr.CodeInvalidArgument, "El identificador de país debe ser numérico."))
		return
	}
	provinces, err := h.reference.ProvincesWithIDs(r.Context(), countryID)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, provinces)
}

// EmailAvailable reports whether an email is free to register.
// GET /api/v1/validations/email/available?email=...
func (h *ValidationHandler) EmailAvailable(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		email = r.URL.Query().Get("value")
	}
	available, err := h.reference.EmailAvailable(r.Context(), email)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]bool{"available": available})
}

// UsernameAvailable reports whether a username is free to register.
// GET /api/v1/validations/username/available?username=...
func (h *ValidationHandler) UsernameAvailable(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		username = r.URL.Query().Get("value")
	}
	available, err := h.reference.UsernameAvailable(r.Context(), username)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]bool{"available": available})
}

// Health is the liveness probe for the validation surface.
// GET /api/v1/validations/health
func (h *ValidationHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}
