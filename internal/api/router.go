// internal/api/router.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"cyberwallet-api/internal/api/handler"
	mw "cyberwallet-api/internal/api/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Wallet     *handler.WalletHandler
	Validation *handler.ValidationHandler
	Dollar     *handler.DollarHandler
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, gate *mw.SessionGate, loginLimiter *mw.LoginRateLimiter) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(handler.DefaultTimeout))
	r.Use(cors.Handler(cors.Options{
		// TODO: restrict origins before exposing this outside the dev stack.
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(gate.Handler)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Handler).Post("/login", h.Auth.Login)
			r.Post("/register", h.Auth.Register)
			r.Post("/activate", h.Auth.Activate)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequirePrincipal)
				r.Post("/change-password", h.Auth.ChangePassword)
				r.Post("/logout", h.Auth.Logout)
				r.Put("/profile", h.User.UpdateProfile)
			})
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(mw.RequirePrincipal)
			r.Get("/me", h.User.Me)
			r.Put("/profile", h.User.UpdateProfile)
			r.Delete("/profile", h.User.Delete)
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Use(mw.RequirePrincipal)
			r.Get("/details", h.Wallet.Details)
			r.Post("/deposit", h.Wallet.Deposit)
			r.Post("/withdraw", h.Wallet.Withdraw)
			r.Post("/load-card", h.Wallet.LoadCard)
			r.Post("/transfer/cvu", h.Wallet.TransferByCVU)
			r.Post("/transfer/alias", h.Wallet.TransferByAlias)
			r.Put("/alias", h.Wallet.UpdateAlias)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(mw.RequirePrincipal)
			r.Get("/history", h.Wallet.History)
		})

		r.Route("/validations", func(r chi.Router) {
			r.Get("/countries", h.Validation.Countries)
			r.Get("/countries/with-ids", h.Validation.CountriesWithIDs)
			r.Get("/provinces", h.Validation.ProvincesByCountry)
			r.Get("/provinces/list/{iso2}", h.Validation.ProvincesByISO2)
			r.Get("/provinces/with-ids/{paisId}", h.Validation.ProvincesWithIDs)
			r.Get("/email/available", h.Validation.EmailAvailable)
			r.Get("/username/available", h.Validation.UsernameAvailable)
			r.Get("/health", h.Validation.Health)
		})

		r.Get("/cotizaciones", h.Dollar.Quotes)
	})

	return r
}
