package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/pattarawat/identity-api/internal/middleware"
	"github.com/pattarawat/identity-api/internal/model"
)

// NewRouter wires the auth routes behind the access gate.
func NewRouter(logger zerolog.Logger, authHandler *AuthHandler, gate *middleware.Authenticator) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.AccessHandler(func(req *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(req).Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("request")
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/request-password-reset", authHandler.RequestPasswordReset)
		r.Post("/reset-password", authHandler.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(gate.Authenticate)

			r.Get("/me", authHandler.Me)

			r.Group(func(r chi.Router) {
				r.Use(gate.RequireRole(model.RoleAdmin))

				r.Get("/users", authHandler.ListUsers)
			})
		})
	})

	return r
}
