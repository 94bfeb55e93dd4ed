package handlers

import (
	"errors"
	"net/http"

	"github.com/kushhpatell/r-intervyou/internal/events"
	"github.com/kushhpatell/r-intervyou/internal/metrics"
	"github.com/kushhpatell/r-intervyou/internal/middleware"
	"github.com/kushhpatell/r-intervyou/internal/models"
	"github.com/kushhpatell/r-intervyou/internal/repositories"
	"github.com/kushhpatell/r-intervyou/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SessionHandler serves the owner-scoped interview history.
type SessionHandler struct {
	Repo      SessionRepository
	Publisher events.Publisher
	Logger    *zap.Logger
}

func NewSessionHandler(repo SessionRepository, publisher events.Publisher, logger *zap.Logger) *SessionHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &SessionHandler{Repo: repo, Publisher: publisher, Logger: logger}
}

func (h *SessionHandler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateSessionRequest](r)
	userID := middleware.UserIDFromContext(r.Context())

	session := req.ToSession(userID)
	if err := h.Repo.Create(r.Context(), session); err != nil {
		h.Logger.Error("create session failed", zap.String("userId", userID), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error")
		return
	}
	metrics.SessionCreated()

	// the session is already stored; a lost notification must not fail the request
	if err := h.Publisher.PublishSessionCreated(r.Context(), events.NewSessionCreatedEvent(session)); err != nil {
		metrics.EventPublishFailed()
		h.Logger.Warn("publish session event failed", zap.String("sessionId", session.ID), zap.Error(err))
	}

	utils.JSON(w, http.StatusCreated, session)
}

// ListSessionsHandler returns the caller's sessions, newest first.
func (h *SessionHandler) ListSessionsHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	sessions, err := h.Repo.ListByUser(r.Context(), userID)
	if err != nil {
		h.Logger.Error("list sessions failed", zap.String("userId", userID), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error")
		return
	}
	if sessions == nil {
		sessions = []models.InterviewSession{}
	}
	utils.JSON(w, http.StatusOK, sessions)
}

func (h *SessionHandler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	session, err := h.Repo.GetByIDForUser(r.Context(), id, userID)
	if errors.Is(err, repositories.ErrSessionNotFound) {
		utils.JSONError(w, http.StatusNotFound, "session_not_found", "Not found")
		return
	}
	if err != nil {
		h.Logger.Error("get session failed", zap.String("sessionId", id), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error")
		return
	}
	utils.JSON(w, http.StatusOK, session)
}

// DeleteSessionHandler succeeds whether or not a matching session existed.
func (h *SessionHandler) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.Repo.DeleteByIDForUser(r.Context(), id, userID); err != nil {
		h.Logger.Error("delete session failed", zap.String("sessionId", id), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error")
		return
	}
	utils.JSON(w, http.StatusOK, models.OKResponse{OK: true})
}
