// internal/security/jwt.go
package security

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"cyberwallet-api/internal/apperr"
)

// DefaultTokenTTL is the session lifetime used when no override is
// configured.
const DefaultTokenTTL = 24 * time.Hour

// TokenManager issues and verifies HS256 session tokens. The subject is the
// user's email; every token carries a random session id in the jti claim.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager decodes the base64 signing secret. ttl <= 0 selects the
// 24h default.
func NewTokenManager(base64Secret string, ttl time.Duration) (*TokenManager, error) {
	secret, err := base64.StdEncoding.DecodeString(strings.TrimSpace(base64Secret))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 JWT secret: %w", err)
	}
	if len(secret) == 0 {
		return nil, errors.New("empty JWT secret")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: secret, ttl: ttl}, nil
}

// Issue signs a session token for the given email.
func (m *TokenManager) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Subject verifies signature and expiry and returns the email subject.
// Any parse failure maps to INVALID_TOKEN.
func (m *TokenManager) Subject(tokenString string) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperr.New(apperr.CodeInvalidToken, "")
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", apperr.New(apperr.CodeInvalidToken, "")
	}
	return subject, nil
}

// Expiry returns the exp claim without requiring a currently valid token, so
// that an expired token can still be recorded in the revocation set.
func (m *TokenManager) Expiry(tokenString string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	_, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, apperr.New(apperr.CodeInvalidToken, "No se pudo determinar la expiración del token.")
	}
	return claims.ExpiresAt.Time, nil
}

// StripBearer removes an optional "Bearer " prefix from an Authorization
// value.
func StripBearer(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 7 && strings.EqualFold(value[:7], "Bearer ") {
		return strings.TrimSpace(value[7:])
	}
	return value
}
