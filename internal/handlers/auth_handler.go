package handlers

import (
	"errors"
	"net/http"

	"github.com/kushhpatell/r-intervyou/internal/auth"
	"github.com/kushhpatell/r-intervyou/internal/middleware"
	"github.com/kushhpatell/r-intervyou/internal/models"
	"github.com/kushhpatell/r-intervyou/internal/utils"

	"go.uber.org/zap"
)

// AuthHandler manages authentication endpoints.
type AuthHandler struct {
	Service AuthService
	Logger  *zap.Logger
}

func NewAuthHandler(service AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Service: service, Logger: logger}
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RegisterRequest](r)

	token, user, err := h.Service.Register(r.Context(), req.Username, req.Email, req.Password)
	if errors.Is(err, auth.ErrConflict) {
		utils.JSONError(w, http.StatusConflict, "conflict", "Username or email already exists")
		return
	}
	if errors.Is(err, auth.ErrPasswordTooLong) {
		utils.JSONError(w, http.StatusBadRequest, "invalid_password", "Password must be at most 72 bytes")
		return
	}
	if err != nil {
		h.Logger.Error("register failed", zap.String("username", req.Username), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error")
		return
	}
	utils.JSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.LoginRequest](r)

	token, user, err := h.Service.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrNotFound):
		utils.JSONError(w, http.StatusNotFound, "user_not_found", "User not found")
	case errors.Is(err, auth.ErrUnauthorized):
		utils.JSONError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
	case err != nil:
		h.Logger.Error("login failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error")
	default:
		utils.JSON(w, http.StatusOK, models.AuthResponse{Token: token, User: user})
	}
}

func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	user, err := h.Service.Me(r.Context(), userID)
	if errors.Is(err, auth.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "user_not_found", "User not found")
		return
	}
	if err != nil {
		h.Logger.Error("load current user failed", zap.String("userId", userID), zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Server error")
		return
	}
	utils.JSON(w, http.StatusOK, user)
}
