package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/kushhpatell/r-intervyou/internal/models"
	"github.com/kushhpatell/r-intervyou/internal/utils"

	"go.uber.org/zap"
)

const readyTimeout = 2 * time.Second

type HealthHandler struct {
	Store  Pinger
	Logger *zap.Logger
}

func NewHealthHandler(store Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{Store: store, Logger: logger}
}

func (h *HealthHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("IntervYou API is running. See /health and /api."))
}

func (h *HealthHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, models.OKResponse{OK: true})
}

func (h *HealthHandler) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// ReadinessHandler reports ready only while the store answers a ping.
func (h *HealthHandler) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	if h.Store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := h.Store.Ping(ctx); err != nil {
			h.Logger.Warn("readiness check failed", zap.Error(err))
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
