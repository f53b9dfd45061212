// internal/api/handler/auth.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"cyberwallet-api/internal/api/middleware"
	"cyberwallet-api/internal/api/problem"
	"cyberwallet-api/internal/apperr"
	"cyberwallet-api/internal/service"
)

// AuthHandler handles HTTP requests for authentication and credential
// lifecycle.
type AuthHandler struct {
	auth   service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	FirstName    string `json:"nombre"`
	LastName     string `json:"apellido"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DNI          string `json:"dni"`
	Street       string `json:"calle"`
	StreetNumber int    `json:"numero"`
	BirthDate    string `json:"fechaNacimiento"`
	Gender       string `json:"genero"`
	Phone        string `json:"telefono"`
	CountryID    int64  `json:"paisId"`
	ProvinceID   int64  `json:"provinciaId"`
}

// Register handles the account creation request.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, h.logger, apperr.New(apperr.CodeInvalidArgument, "El cuerpo de la solicitud no es un JSON válido."))
		return
	}

	result, err := h.auth.Register(r.Context(), service.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Username:     req.Username,
		Password:     req.Password,
		DNI:          req.DNI,
		Street:       req.Street,
		StreetNumber: req.StreetNumber,
		BirthDate:    req.BirthDate,
		Gender:       req.Gender,
		Phone:        req.Phone,
		CountryID:    req.CountryID,
		ProvinceID:   req.ProvinceID,
	})
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"alias":       result.Alias,
		"cvu":         result.CVU,
		"tokenType":   "NONE",
		"accessToken": nil,
		"message":     "Registro exitoso. Ya podés iniciar sesión.",
	})
}

// LoginRequest carries the credentials; identifier may be email or username.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles the authentication request.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, h.logger, apperr.New(apperr.CodeInvalidArgument, "El cuerpo de la solicitud no es un JSON válido."))
		return
	}

	identifier := req.Email
	if identifier == "" {
		identifier = req.Username
	}
	result, err := h.auth.Authenticate(r.Context(), identifier, req.Password)
	if err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"accessToken": result.AccessToken,
		"tokenType":   result.TokenType,
		"alias":       result.Alias,
		"cvu":         result.CVU,
		"message":     "Inicio de sesión exitoso.",
	})
}

// Activate handles the activation-code redemption.
// POST /api/v1/auth/activate?token=...
func (h *AuthHandler) Activate(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondWithError(w, r, h.logger, apperr.New(apperr.CodeInvalidToken, ""))
		return
	}
	if err := h.auth.Activate(r.Context(), token); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Cuenta activada correctamente."})
}

// ForgotPasswordRequest carries the email to reset.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles the reset-token request. The response never depends
// on whether the email exists.
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, h.logger, apperr.New(apperr.CodeInvalidArgument, "El cuerpo de la solicitud no es un JSON válido."))
		return
	}
	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Si el email está registrado, se enviaron instrucciones para restablecer la contraseña.",
	})
}

// ResetPasswordRequest consumes a reset token.
type ResetPasswordRequest struct {
	Token              string `json:"token"`
	Email              string `json:"email"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// ResetPassword handles the token-based password reset.
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, h.logger, apperr.New(apperr.CodeInvalidArgument, "El cuerpo de la solicitud no es un JSON válido."))
		return
	}
	if err := h.auth.ResetPassword(r.Context(), req.Token, req.Email, req.NewPassword, req.ConfirmNewPassword); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Contraseña restablecida correctamente."})
}

// ChangePasswordRequest changes the password of the authenticated caller.
type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// ChangePassword handles the authenticated password change.
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		problem.WriteCode(w, r, apperr.CodeUnauthorized, "", nil)
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, h.logger, apperr.New(apperr.CodeInvalidArgument, "El cuerpo de la solicitud no es un JSON válido."))
		return
	}
	if err := h.auth.ChangePassword(r.Context(), principal.Email, req.CurrentPassword, req.NewPassword, req.ConfirmNewPassword); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Contraseña actualizada correctamente."})
}

// Logout handles session revocation.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), r.Header.Get("Authorization")); err != nil {
		respondWithError(w, r, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Sesión cerrada correctamente."})
}
