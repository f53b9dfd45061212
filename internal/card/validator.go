// internal/card/validator.go
package card

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"cyberwallet-api/internal/apperr"
)

// Brand is the card network detected from the BIN.
type Brand string

const (
	BrandVisa       Brand = "VISA"
	BrandMastercard Brand = "MASTERCARD"
	BrandAmex       Brand = "AMEX"
	BrandUnknown    Brand = "UNKNOWN"
)

var (
	numberRe = regexp.MustCompile(`^\d{16}$`)
	cvvRe    = regexp.MustCompile(`^\d{3}$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

// Details is the card data submitted with a top-up request.
type Details struct {
	Number     string
	Holder     string
	Expiration string // MM/YY
	CVV        string
}

// Validate runs the full card check chain: format, BIN, Luhn, expiry and
// holder match against the registered user name. It returns the detected
// brand on success.
func Validate(d Details, registeredName string, now time.Time) (Brand, error) {
	if !numberRe.MatchString(d.Number) {
		return BrandUnknown, apperr.New(apperr.CodeInvalidCardFormat, "El número de tarjeta debe tener 16 dígitos.")
	}
	brand := BrandFromBIN(d.Number)
	if brand == BrandUnknown {
		return BrandUnknown, apperr.New(apperr.CodeInvalidCardFormat, "El BIN de la tarjeta no es válido (Visa, Mastercard, Amex).")
	}
	if !luhnValid(d.Number) {
		return BrandUnknown, apperr.New(apperr.CodeInvalidCardFormat, "El número de tarjeta no pasa la validación de Luhn.")
	}
	if !cvvRe.MatchString(d.CVV) {
		return BrandUnknown, apperr.New(apperr.CodeInvalidCardFormat, "El CVV debe tener 3 dígitos.")
	}
	if err := ValidateExpiration(d.Expiration, now); err != nil {
		return BrandUnknown, err
	}
	if err := ValidateHolder(d.Holder, registeredName); err != nil {
		return BrandUnknown, err
	}
	return brand, nil
}

// BrandFromBIN classifies the issuer from the leading digits: 4 is Visa,
// 51-55 is Mastercard, 34 and 37 are Amex.
func BrandFromBIN(number string) Brand {
	if len(number) < 2 {
		return BrandUnknown
	}
	if number[0] == '4' {
		return BrandVisa
	}
	switch number[:2] {
	case "51", "52", "53", "54", "55":
		return BrandMastercard
	case "34", "37":
		return BrandAmex
	}
	return BrandUnknown
}

// ValidateExpiration parses MM/YY, extends to the last day of the month and
// fails with CARD_EXPIRED when that date is before today.
func ValidateExpiration(expiration string, now time.Time) error {
	if !expiryRe.MatchString(expiration) {
		return apperr.New(apperr.CodeCardExpired, "La tarjeta está vencida o su fecha de expiración es inválida.")
	}
	exp, err := time.Parse("01/06", expiration)
	if err != nil {
		return apperr.New(apperr.CodeCardExpired, "La tarjeta está vencida o su fecha de expiración es inválida.")
	}
	// First day of the following month minus one day = end of expiry month.
	lastDay := exp.AddDate(0, 1, -1)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if lastDay.Before(today) {
		return apperr.New(apperr.CodeCardExpired, "")
	}
	return nil
}

// ValidateHolder requires the registered user name to be contained in the
// submitted holder after both are stripped of accents and lower-cased.
func ValidateHolder(holder, registeredName string) error {
	if strings.TrimSpace(holder) == "" || strings.TrimSpace(registeredName) == "" {
		return apperr.New(apperr.CodeCardholderNameMismatch, "El nombre del titular de la tarjeta es inválido o no está registrado.")
	}
	if !strings.Contains(normalizeName(holder), normalizeName(registeredName)) {
		return apperr.New(apperr.CodeCardholderNameMismatch, "El nombre del titular de la tarjeta no coincide con el registrado en el sistema.")
	}
	return nil
}

func luhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		n := int(number[i] - '0')
		if double {
			n *= 2
			if n > 9 {
				n = n%10 + 1
			}
		}
		sum += n
		double = !double
	}
	return sum%10 == 0
}

var markStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

func normalizeName(name string) string {
	stripped, _, err := transform.String(markStripper, name)
	if err != nil {
		stripped = name
	}
	return strings.TrimSpace(strings.ToLower(stripped))
}
