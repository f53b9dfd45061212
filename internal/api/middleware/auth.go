// internal/api/middleware/auth.go
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"cyberwallet-api/internal/api/problem"
	"cyberwallet-api/internal/apperr"
	"cyberwallet-api/internal/repository"
	"cyberwallet-api/internal/security"
)

// Principal identifies the authenticated caller bound by the session gate.
type Principal struct {
	UserID int64
	Email  string
}

type principalKey struct{}

// PrincipalFromContext returns the bound principal, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// ContextWithPrincipal returns ctx carrying the authenticated principal.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// publicPrefixes are served without a session. Everything else goes through
// the full gate.
var publicPrefixes = []string{
	"/api/v1/auth/register",
	"/api/v1/auth/login",
	"/api/v1/auth/activate",
	"/api/v1/auth/forgot-password",
	"/api/v1/auth/reset-password",
	"/api/v1/validations",
	"/api/v1/cotizaciones",
	"/health",
	"/swagger",
}

// SessionGate is the per-request authentication middleware. Order: public
// short-circuit, bearer extraction, revoked-set check, signature parse,
// principal binding. A missing or unparsable token does not fail here; the
// request continues without a principal and RequirePrincipal rejects it.
type SessionGate struct {
	tokens      *security.TokenManager
	revokedRepo repository.RevokedTokenRepository
	userRepo    repository.UserRepository
	dbExecutor  repository.DBExecutor
	logger      *slog.Logger
}

// NewSessionGate creates the session gate middleware.
func NewSessionGate(
	tokens *security.TokenManager,
	revokedRepo repository.RevokedTokenRepository,
	userRepo repository.UserRepository,
	dbExecutor repository.DBExecutor,
	logger *slog.Logger,
) *SessionGate {
	return &SessionGate{
		tokens:      tokens,
		revokedRepo: revokedRepo,
		userRepo:    userRepo,
		dbExecutor:  dbExecutor,
		logger:      logger,
	}
}

// Handler wraps next with the session gate.
func (g *SessionGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token := security.StripBearer(r.Header.Get("Authorization"))
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		revoked, err := g.revokedRepo.IsTokenRevoked(r.Context(), g.dbExecutor, token)
		if err != nil {
			g.logger.ErrorContext(r.Context(), "revocation check failed", "error", err)
			problem.WriteCode(w, r, apperr.CodeInternal, "", nil)
			return
		}
		if revoked {
			problem.WriteCode(w, r, apperr.CodeAlreadyLoggedOut, "", nil)
			return
		}

		email, err := g.tokens.Subject(token)
		if err != nil {
			// Unparsable token: continue without a principal.
			next.ServeHTTP(w, r)
			return
		}

		user, err := g.userRepo.GetUserByEmail(r.Context(), g.dbExecutor, email)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := ContextWithPrincipal(r.Context(), Principal{UserID: user.ID, Email: user.Email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePrincipal rejects requests that reached a protected handler without
// an authenticated principal.
func RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFromContext(r.Context()); !ok {
			if r.Header.Get("Authorization") == "" {
				problem.WriteCode(w, r, apperr.CodeMissingAuthHeader, "", nil)
				return
			}
			problem.WriteCode(w, r, apperr.CodeInvalidToken, "", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isPublicPath(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
