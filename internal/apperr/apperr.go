// internal/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies one entry of the closed error enumeration. Every code maps
// to a stable URN type, a title, a default detail and an HTTP status.
type Code string

const (
	// Identity and user errors.
	CodeDuplicateEmail     Code = "DUPLICATE_EMAIL"
	CodeDuplicateDNI       Code = "DUPLICATE_DNI"
	CodeDuplicateUsername  Code = "DUPLICATE_USERNAME"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeAccountInactive    Code = "ACCOUNT_INACTIVE"
	CodeUserNotFound       Code = "USER_NOT_FOUND"
	CodeNotFound           Code = "NOT_FOUND"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeUnauthorizedAccess Code = "UNAUTHORIZED_ACCESS"
	CodeMissingAuthHeader  Code = "MISSING_AUTHORIZATION_HEADER"

	// Token errors.
	CodeInvalidToken           Code = "INVALID_TOKEN"
	CodeActivationTokenExpired Code = "ACTIVATION_TOKEN_EXPIRED"
	CodeActivationTokenUsed    Code = "ACTIVATION_TOKEN_USED"
	CodeAlreadyLoggedOut       Code = "ALREADY_LOGGED_OUT"

	// Validation and business-rule errors.
	CodeWeakPassword          Code = "WEAK_PASSWORD"
	CodeValidationError       Code = "VALIDATION_ERROR"
	CodeBusinessRuleViolation Code = "BUSINESS_RULE_VIOLATION"
	CodeInvalidArgument       Code = "INVALID_ARGUMENT"
	CodeInvalidAmount         Code = "INVALID_AMOUNT"
	CodeInvalidAliasFormat    Code = "INVALID_ALIAS_FORMAT"
	CodeOperationNotAllowed   Code = "OPERATION_NOT_ALLOWED"
	CodeRateLimitExceeded     Code = "RATE_LIMIT_EXCEEDED"

	// Wallet and transfer errors.
	CodeWalletNotFound           Code = "WALLET_NOT_FOUND"
	CodeInsufficientFunds        Code = "INSUFFICIENT_FUNDS"
	CodeSelfTransfer             Code = "SELF_TRANSFER"
	CodeAliasAlreadyExists       Code = "ALIAS_ALREADY_EXISTS"
	CodeReceiverNotFound         Code = "RECEIVER_NOT_FOUND"
	CodeTransactionFailed        Code = "TRANSACTION_FAILED"
	CodeTransferPersistenceError Code = "TRANSFER_PERSISTENCE_ERROR"

	// Card errors.
	CodeInvalidCardFormat      Code = "INVALID_CARD_FORMAT"
	CodeCardExpired            Code = "CARD_EXPIRED"
	CodeCardholderNameMismatch Code = "CARDHOLDER_NAME_MISMATCH"
	CodeInvalidCardNumber      Code = "INVALID_CARD_NUMBER"
	CodeInvalidCardExpiration  Code = "INVALID_CARD_EXPIRATION"
	CodeAmountExceedsLimit     Code = "AMOUNT_EXCEEDS_LIMIT"

	// Technical errors.
	CodeMethodNotAllowed     Code = "METHOD_NOT_ALLOWED"
	CodeRequestTimeout       Code = "REQUEST_TIMEOUT"
	CodeInternal             Code = "INTERNAL_SERVER_ERROR"
	CodeNullPointer          Code = "NULL_POINTER"
	CodeDatabaseError        Code = "DATABASE_ERROR"
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
)

type meta struct {
	typeURI string
	title   string
	detail  string
	status  int
}

var registry = map[Code]meta{
	CodeDuplicateEmail:    {"urn:cyberwallet:problems:duplicate-email", "Email ya registrado", "El email ya está en uso.", http.StatusConflict},
	CodeDuplicateDNI:      {"urn:cyberwallet:problems:duplicate-dni", "DNI ya registrado", "El DNI ya está en uso.", http.StatusConflict},
	CodeDuplicateUsername: {"urn:cyberwallet:problems:duplicate-username", "Nombre de usuario ya registrado", "El nombre de usuario ya está en uso.", http.StatusConflict},

	CodeInvalidCredentials: {"urn:cyberwallet:problems:invalid-credentials", "Credenciales inválidas", "El correo electrónico o la contraseña son incorrectos.", http.StatusUnauthorized},
	CodeAccountInactive:    {"urn:cyberwallet:problems:account-inactive", "Cuenta inactiva", "La cuenta aún no ha sido activada.", http.StatusUnauthorized},
	CodeUserNotFound:       {"urn:cyberwallet:problems:user-not-found", "Usuario no encontrado", "El usuario solicitado no existe en el sistema.", http.StatusUnauthorized},
	CodeNotFound:           {"urn:cyberwallet:problems:not-found", "Recurso no encontrado", "El recurso solicitado no existe o fue eliminado.", http.StatusNotFound},
	CodeUnauthorized:       {"urn:cyberwallet:problems:unauthorized", "No autorizado", "Acceso denegado. No se proporcionaron credenciales válidas.", http.StatusUnauthorized},
	CodeUnauthorizedAccess: {"urn:cyberwallet:problems:unauthorized-access", "Acceso no autorizado", "No tienes permiso para acceder a este recurso.", http.StatusUnauthorized},
	CodeMissingAuthHeader:  {"urn:cyberwallet:problems:missing-auth-header", "Falta token de autorización", "No se proporcionó el token de autenticación requerido.", http.StatusUnauthorized},

	CodeInvalidToken:           {"urn:cyberwallet:problems:invalid-token", "Token inválido o expirado", "El token proporcionado no es válido o ha expirado.", http.StatusUnauthorized},
	CodeActivationTokenExpired: {"urn:cyberwallet:problems:activation-token-expired", "Token de activación expirado", "El token de activación ha expirado. Solicita uno nuevo.", http.StatusUnauthorized},
	CodeActivationTokenUsed:    {"urn:cyberwallet:problems:activation-token-used", "Token de activación ya utilizado", "Este token de activación ya fue usado previamente.", http.StatusUnauthorized},
	CodeAlreadyLoggedOut:       {"urn:cyberwallet:problems:already-logged-out", "Sesión ya cerrada", "El token ya ha sido invalidado previamente. Vuelve a iniciar sesión.", http.StatusUnauthorized},

	CodeWeakPassword:          {"urn:cyberwallet:problems:weak-password", "Contraseña insegura", "La contraseña no cumple con los requisitos de seguridad.", http.StatusBadRequest},
	CodeValidationError:       {"urn:cyberwallet:problems:validation-error", "Datos inválidos", "Hay errores en los datos enviados. Por favor, revisa los campos.", http.StatusBadRequest},
	CodeBusinessRuleViolation: {"urn:cyberwallet:problems:business-rule-violation", "Violación de regla de negocio", "No se pudo completar la operación debido a una restricción de negocio.", http.StatusBadRequest},
	CodeInvalidArgument:       {"urn:cyberwallet:problems:invalid-argument", "Argumento inválido", "El argumento proporcionado no es válido o está mal formado.", http.StatusBadRequest},
	CodeInvalidAmount:         {"urn:cyberwallet:problems:invalid-amount", "Monto inválido", "El monto excede el límite permitido o es inválido.", http.StatusBadRequest},
	CodeInvalidAliasFormat:    {"urn:cyberwallet:problems:invalid-alias-format", "Formato de alias inválido", "El alias no cumple con el formato requerido.", http.StatusBadRequest},
	CodeOperationNotAllowed:   {"urn:cyberwallet:problems:operation-not-allowed", "Operación no permitida", "No tienes permiso para realizar esta operación.", http.StatusForbidden},
	CodeRateLimitExceeded:     {"urn:cyberwallet:problems:rate-limit-exceeded", "Rate limit excedido", "Has excedido el límite de solicitudes permitidas. Intenta de nuevo más tarde.", http.StatusTooManyRequests},

	CodeWalletNotFound:           {"urn:cyberwallet:problems:wallet-not-found", "Billetera no encontrada", "No se encontró una billetera asociada al usuario.", http.StatusNotFound},
	CodeInsufficientFunds:        {"urn:cyberwallet:problems:insufficient-funds", "Fondos insuficientes", "No hay suficiente saldo para completar la transacción.", http.StatusBadRequest},
	CodeSelfTransfer:             {"urn:cyberwallet:problems:self-transfer", "Transferencia a la misma cuenta", "No se puede transferir a uno mismo.", http.StatusBadRequest},
	CodeAliasAlreadyExists:       {"urn:cyberwallet:problems:alias-already-exists", "Alias ya en uso", "El alias elegido ya está registrado.", http.StatusConflict},
	CodeReceiverNotFound:         {"urn:cyberwallet:problems:receiver-not-found", "Usuario destinatario no encontrado", "No se encontró un usuario con el alias especificado.", http.StatusNotFound},
	CodeTransactionFailed:        {"urn:cyberwallet:problems:transaction-failed", "Transacción fallida", "La transacción no pudo ser completada debido a un error interno.", http.StatusInternalServerError},
	CodeTransferPersistenceError: {"urn:cyberwallet:problems:transfer-persistence-error", "Error al procesar transferencia", "Ha ocurrido un error al guardar la transferencia.", http.StatusInternalServerError},

	CodeInvalidCardFormat:      {"urn:cyberwallet:problems:invalid-card-format", "Formato de tarjeta inválido", "El número de tarjeta proporcionado no cumple con el formato esperado.", http.StatusBadRequest},
	CodeCardExpired:            {"urn:cyberwallet:problems:card-expired", "Tarjeta vencida", "La tarjeta utilizada para la carga está vencida.", http.StatusBadRequest},
	CodeCardholderNameMismatch: {"urn:cyberwallet:problems:cardholder-name-mismatch", "Nombre del titular inválido", "El nombre del titular de la tarjeta no coincide con el usuario autenticado.", http.StatusBadRequest},
	CodeInvalidCardNumber:      {"urn:cyberwallet:problems:invalid-card-number", "Número de tarjeta inválido", "El número de tarjeta no pasa la validación de Luhn.", http.StatusBadRequest},
	CodeInvalidCardExpiration:  {"urn:cyberwallet:problems:invalid-card-expiration", "Fecha de expiración inválida", "La tarjeta está vencida o su fecha de expiración es incorrecta.", http.StatusBadRequest},
	CodeAmountExceedsLimit:     {"urn:cyberwallet:problems:amount-exceeds-limit", "Monto excede límite", "El monto de la operación excede el límite permitido.", http.StatusTooManyRequests},

	CodeMethodNotAllowed:     {"urn:cyberwallet:problems:method-not-allowed", "Método no permitido", "El método HTTP utilizado no está permitido para este recurso.", http.StatusMethodNotAllowed},
	CodeRequestTimeout:       {"urn:cyberwallet:problems:request-timeout", "Tiempo de espera agotado", "El servidor no pudo completar la solicitud a tiempo. Intenta nuevamente.", http.StatusRequestTimeout},
	CodeInternal:             {"urn:cyberwallet:problems:internal-server-error", "Error interno del servidor", "Ha ocurrido un error inesperado.", http.StatusInternalServerError},
	CodeNullPointer:          {"urn:cyberwallet:problems:null-pointer", "Error interno", "Se encontró una referencia nula inesperada.", http.StatusInternalServerError},
	CodeDatabaseError:        {"urn:cyberwallet:problems:database-error", "Error de base de datos", "Se produjo un error al acceder a la base de datos.", http.StatusInternalServerError},
	CodeExternalServiceError: {"urn:cyberwallet:problems:external-service-error", "Error en servicio externo", "Se produjo un error al comunicarse con un servicio externo.", http.StatusBadGateway},
	CodeServiceUnavailable:   {"urn:cyberwallet:problems:service-unavailable", "Servicio no disponible", "El servicio no está disponible temporalmente. Intenta nuevamente más tarde.", http.StatusServiceUnavailable},
}

// TypeURI returns the stable URN identifying the error family.
func (c Code) TypeURI() string { return registry[c].typeURI }

// Title returns the short human-readable summary for the code.
func (c Code) Title() string { return registry[c].title }

// DefaultDetail returns the canned detail used when none is supplied.
func (c Code) DefaultDetail() string { return registry[c].detail }

// HTTPStatus returns the HTTP status mapped to the code.
func (c Code) HTTPStatus() int {
	if m, ok := registry[c]; ok {
		return m.status
	}
	return http.StatusInternalServerError
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the service-boundary error carrying a Code from the closed
// enumeration plus an operator-facing detail and optional field errors.
type Error struct {
	Code        Code
	Detail      string
	FieldErrors []FieldError
	cause       error
}

// New creates an Error for code with the given detail. An empty detail falls
// back to the code's default.
func New(code Code, detail string) *Error {
	if detail == "" {
		detail = code.DefaultDetail()
	}
	return &Error{Code: code, Detail: detail}
}

// Newf creates an Error with a formatted detail.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to an Error for code.
func Wrap(code Code, detail string, cause error) *Error {
	e := New(code, detail)
	e.cause = cause
	return e
}

// WithFields returns a VALIDATION_ERROR carrying per-field messages.
func WithFields(fields []FieldError) *Error {
	e := New(CodeValidationError, "")
	e.FieldErrors = fields
	return e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Detail, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is match two apperr values by code.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// CodeOf extracts the Code from err, or CodeInternal when err is not an
// application error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
