package routers

import (
	"github.com/kushhpatell/r-intervyou/internal/handlers"
	"github.com/kushhpatell/r-intervyou/internal/middleware"
	"github.com/kushhpatell/r-intervyou/internal/models"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(router *chi.Mux, authHandler *handlers.AuthHandler, verifier middleware.TokenVerifier) {
	router.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.RegisterRequest]()).Post("/register", authHandler.RegisterHandler)
		r.With(middleware.ValidateRequest[*models.LoginRequest]()).Post("/login", authHandler.LoginHandler)
		r.With(middleware.RequireAuth(verifier)).Get("/me", authHandler.MeHandler)
	})
}
