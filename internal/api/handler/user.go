// internal/api/handler/user.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"cyberwallet-api/internal/api/middleware"
	"cyberwallet-api/internal/api/problem"
	"cyberwallet-api/internal/apperr"
	"cyberwallet-api/internal/domain"
	"cyberwallet-api/internal/service"
)

// UserHandler handles HTTP requests for the authenticated user's profile.
type UserHandler struct {
	auth   service.AuthService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(auth service.AuthService, logger *slog.Logger) *UserHandler {
	return &UserHandler{auth: auth, logger: logger}
}

// ProfileResponse is the profile snapshot.
type ProfileResponse struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"nombre"`
	LastName   string `json:"apellido"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	DNI        string `json:"dni"`
	Street     string `json:"calle"`
	Number     int    `json:"numero"`
	BirthDate  string `json:"fechaNacimiento"`
	Gender     string `json:"genero"`
	Phone      string `json:"telefono"`
	CountryID  int64  `json:"paisId"`
	ProvinceID int64  `json:"provinciaId"`
	Status     string `json:"status"`
}

func profileResponse(user *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:         user.ID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		Username:   user.Username,
		DNI:        user.DNI,
		Street:     user.Street,
		Number:     user.Number,
		BirthDate:  user.BirthDate.Format("2006-01-02"),
		Gender:     user.Gender,
		Phone:      user.Phone,
		CountryID:  user.CountryID,
		ProvinceID: user.ProvinceID,
		Status:     string(user.Status),
	}
}

// Me returns the authenticated user's profile.
// GET /api/v1/user/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		problem.WriteCode(w, r, apperr.CodeUnauthorized, "", nil)
		return
	}
	user, err := h.auth.Profile(r.Context(), principal.Email)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, profileResponse(user))
}

// UpdateProfileRequest is a partial profile update. Omitted fields keep their
// current value.
type UpdateProfileRequest struct {
	Email           *string `json:"email"`
	Username        *string `json:"username"`
	Street          *string `json:"calle"`
	StreetNumber    *int    `json:"numero"`
	Phone           *string `json:"telefono"`
	CountryID       *int64  `json:"paisId"`
	ProvinceID      *int64  `json:"provinciaId"`
	CurrentPassword *string `json:"currentPassword"`
	NewPassword     *string `json:"newPassword"`
}

// UpdateProfile applies a partial profile update.
// PUT /api/v1/user/profile (also mounted at /api/v1/auth/profile)
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		problem.WriteCode(w, r, apperr.CodeUnauthorized, "", nil)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, h.logger, apperr.New(apperr.CodeInvalidArgument, "El cuerpo de la solicitud no es un JSON válido."))
		return
	}

	user, err := h.auth.UpdateProfile(r.Context(), principal.Email, service.ProfilePatch{
		Email:           req.Email,
		Username:        req.Username,
		Street:          req.Street,
		StreetNumber:    req.StreetNumber,
		Phone:           req.Phone,
		CountryID:       req.CountryID,
		ProvinceID:      req.ProvinceID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, profileResponse(user))
}

// Delete soft deletes the authenticated user.
// DELETE /api/v1/user/profile
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		problem.WriteCode(w, r, apperr.CodeUnauthorized, "", nil)
		return
	}
	if err := h.auth.DeleteAccount(r.Context(), principal.Email); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Cuenta eliminada correctamente."})
}
