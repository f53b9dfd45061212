// internal/validate/validate.go
package validate

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"cyberwallet-api/internal/apperr"
)

// Server-side field rules. These mirror the registration form but are
// enforced here regardless of what any client sends.
var (
	emailRe    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)
	dniRe      = regexp.MustCompile(`^[0-9]{7,8}$`)
	phoneRe    = regexp.MustCompile(`^\d{10}$`)
	aliasRe    = regexp.MustCompile(`^[a-z]{2,}\.[a-z]{2,}\.[a-z]{2,}$`)
	cvuRe      = regexp.MustCompile(`^[1-9][0-9]{21}$`)
	nameRe     = regexp.MustCompile(`^[\p{L}' \-]+$`)
	streetRe   = regexp.MustCompile(`^[\p{L}\p{N}'\-\.#°ªº, ]+$`)
	birthRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

var genders = map[string]string{
	"masculino":           "Masculino",
	"femenino":            "Femenino",
	"otro":                "Otro",
	"prefiero no decirlo": "Prefiero no decirlo",
}

// Amount limits shared by wallet operations.
var (
	MinAmount         = decimal.RequireFromString("0.01")
	MaxAmount         = decimal.RequireFromString("3000000.00")
	MaxTransferAmount = decimal.RequireFromString("1000000.00")
	MaxDailyTransfer  = decimal.RequireFromString("3000000.00")
)

// Email checks format and length; callers lower-case before storing.
func Email(email string) error {
	email = strings.TrimSpace(email)
	if len(email) < 5 || len(email) > 100 || !emailRe.MatchString(email) {
		return apperr.New(apperr.CodeValidationError, "El email contiene caracteres no permitidos.")
	}
	return nil
}

// Username checks the allowed character set and length 4-20.
func Username(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 4 || len(username) > 20 || !usernameRe.MatchString(username) {
		return apperr.New(apperr.CodeValidationError, "El nombre de usuario contiene caracteres no permitidos.")
	}
	return nil
}

// Password enforces 8-64 chars with at least one lowercase, one uppercase,
// one digit and one special character. Returns WEAK_PASSWORD on failure.
func Password(password string) error {
	if len(password) < 8 || len(password) > 64 {
		return apperr.New(apperr.CodeWeakPassword, "")
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !lower || !upper || !digit || !special {
		return apperr.New(apperr.CodeWeakPassword, "")
	}
	return nil
}

// DNI checks a 7-8 digit national id with no leading zero.
func DNI(dni string) error {
	if !dniRe.MatchString(dni) || strings.HasPrefix(dni, "0") {
		return apperr.New(apperr.CodeValidationError, "El DNI debe tener 7 u 8 dígitos y no comenzar con 0.")
	}
	return nil
}

// Phone checks a 10-digit number that starts with neither 0 nor 15 and is
// not a run of identical digits.
func Phone(phone string) error {
	if !phoneRe.MatchString(phone) || strings.HasPrefix(phone, "0") || strings.HasPrefix(phone, "15") {
		return apperr.New(apperr.CodeValidationError, "El teléfono debe tener exactamente 10 dígitos y no comenzar con 0 ni 15.")
	}
	if strings.Count(phone, phone[:1]) == len(phone) {
		return apperr.New(apperr.CodeValidationError, "El teléfono no puede ser una secuencia de dígitos idénticos.")
	}
	return nil
}

// PersonName validates a given or family name against the Unicode letter
// rule with the respective length limit.
func PersonName(name string, maxLen int) error {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 || len([]rune(name)) > maxLen || !nameRe.MatchString(name) {
		return apperr.New(apperr.CodeValidationError, "El nombre contiene caracteres no permitidos.")
	}
	return nil
}

// Street validates the street field, 3-100 characters.
func Street(street string) error {
	street = strings.TrimSpace(street)
	if len([]rune(street)) < 3 || len([]rune(street)) > 100 || !streetRe.MatchString(street) {
		return apperr.New(apperr.CodeValidationError, "La calle contiene caracteres inválidos o es demasiado corta.")
	}
	return nil
}

// StreetNumber validates the 1-9999 range.
func StreetNumber(number int) error {
	if number < 1 || number > 9999 {
		return apperr.New(apperr.CodeValidationError, "El número de calle debe ser entre 1 y 9999.")
	}
	return nil
}

// BirthDate parses YYYY-MM-DD and enforces age 18-100 at the given instant.
func BirthDate(value string, now time.Time) (time.Time, error) {
	if !birthRe.MatchString(value) {
		return time.Time{}, apperr.New(apperr.CodeValidationError, "Formato de fecha de nacimiento inválido.")
	}
	birth, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperr.New(apperr.CodeValidationError, "Formato de fecha de nacimiento inválido.")
	}
	if birth.After(now.AddDate(-18, 0, 0)) || birth.Before(now.AddDate(-100, 0, 0)) {
		return time.Time{}, apperr.New(apperr.CodeValidationError, "La edad debe ser entre 18 y 100 años.")
	}
	return birth, nil
}

// Gender normalizes the submitted value case-insensitively to its canonical
// form, or fails when it is not one of the accepted options.
func Gender(value string) (string, error) {
	canonical, ok := genders[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return "", apperr.New(apperr.CodeValidationError, "El género indicado no es una opción válida.")
	}
	return canonical, nil
}

// Alias validates the word.word.word wallet alias format.
func Alias(alias string) error {
	if len(alias) < 6 || len(alias) > 30 ||
		strings.Count(alias, ".") != 2 || !aliasRe.MatchString(alias) {
		return apperr.New(apperr.CodeInvalidAliasFormat, "")
	}
	return nil
}

// CVU validates 22 digits with a non-zero first digit.
func CVU(cvu string) error {
	if !cvuRe.MatchString(cvu) {
		return apperr.New(apperr.CodeValidationError, "El CVU debe tener 22 dígitos y no comenzar con 0.")
	}
	return nil
}

// Amount enforces the shared money rules: at least 0.01, at most 3,000,000,
// no more than two decimal places. Exponent-form tokens never reach this
// point; the request decoder rejects them before conversion.
func Amount(amount decimal.Decimal) error {
	if amount.LessThan(MinAmount) {
		return apperr.New(apperr.CodeInvalidAmount, "El monto debe ser mayor o igual a 0.01.")
	}
	if amount.GreaterThan(MaxAmount) {
		return apperr.New(apperr.CodeInvalidAmount, "El monto no puede superar los 3 millones.")
	}
	if amount.Exponent() < -2 {
		return apperr.New(apperr.CodeInvalidAmount, "El monto admite hasta 2 decimales.")
	}
	return nil
}

// TransferAmount applies the shared Amount rules plus the 1,000,000
// per-operation cap for transfers.
func TransferAmount(amount decimal.Decimal) error {
	if err := Amount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(MaxTransferAmount) {
		return apperr.New(apperr.CodeInvalidAmount, "La transferencia no puede superar 1 millón por operación.")
	}
	return nil
}
