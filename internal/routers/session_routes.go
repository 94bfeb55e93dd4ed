package routers

import (
	"github.com/kushhpatell/r-intervyou/internal/handlers"
	"github.com/kushhpatell/r-intervyou/internal/middleware"
	"github.com/kushhpatell/r-intervyou/internal/models"

	"github.com/go-chi/chi/v5"
)

func SessionRoutes(router *chi.Mux, sessionHandler *handlers.SessionHandler, verifier middleware.TokenVerifier) {
	router.Route("/api/sessions", func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier))
		r.With(middleware.ValidateRequest[*models.CreateSessionRequest]()).Post("/", sessionHandler.CreateSessionHandler)
		r.Get("/", sessionHandler.ListSessionsHandler)
		r.Get("/{id}", sessionHandler.GetSessionHandler)
		r.Delete("/{id}", sessionHandler.DeleteSessionHandler)
	})
}
