package routers

import (
	"github.com/kushhpatell/r-intervyou/internal/handlers"

	"github.com/go-chi/chi/v5"
)

func HealthRoutes(router *chi.Mux, healthHandler *handlers.HealthHandler) {
	router.Get("/", healthHandler.RootHandler)
	router.Get("/health", healthHandler.HealthHandler)
	router.Get("/healthz", healthHandler.LivenessHandler)
	router.Get("/readyz", healthHandler.ReadinessHandler)
}
