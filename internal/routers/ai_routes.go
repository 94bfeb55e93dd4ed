package routers

import (
	"github.com/kushhpatell/r-intervyou/internal/handlers"
	"github.com/kushhpatell/r-intervyou/internal/middleware"
	"github.com/kushhpatell/r-intervyou/internal/models"

	"github.com/go-chi/chi/v5"
)

// AIRoutes mounts question generation. Authentication is optional here; a
// signed-in caller only gets deduplication against their history.
func AIRoutes(router *chi.Mux, questionHandler *handlers.QuestionHandler, verifier middleware.TokenVerifier) {
	router.Route("/api/ai", func(r chi.Router) {
		r.With(
			middleware.OptionalAuth(verifier),
			middleware.ValidateRequest[*models.GenerateQuestionsRequest](),
		).Post("/generate-questions", questionHandler.GenerateQuestionsHandler)
	})
}
