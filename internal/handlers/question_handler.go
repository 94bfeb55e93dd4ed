package handlers

import (
	"net/http"

	"github.com/kushhpatell/r-intervyou/internal/metrics"
	"github.com/kushhpatell/r-intervyou/internal/middleware"
	"github.com/kushhpatell/r-intervyou/internal/models"
	"github.com/kushhpatell/r-intervyou/internal/questions"
	"github.com/kushhpatell/r-intervyou/internal/utils"

	"go.uber.org/zap"
)

type QuestionHandler struct {
	Selector QuestionSelector
	Logger   *zap.Logger
}

func NewQuestionHandler(selector QuestionSelector, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{Selector: selector, Logger: logger}
}

// GenerateQuestionsHandler serves questions from the template tables, skipping
// ones the caller was already asked when the request is authenticated.
func (h *QuestionHandler) GenerateQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.GenerateQuestionsRequest](r)

	count := req.ResolvedCount()
	userID := middleware.UserIDFromContext(r.Context())
	// label metrics with what is served, never with raw client input
	category, level := h.Selector.Resolve(questions.CategoryFor(req.Type, req.Role), questions.ParseLevel(req.Level))

	list, err := h.Selector.Select(r.Context(), questions.Request{
		UserID:   userID,
		Category: category,
		Level:    level,
		Count:    count,
	})
	if err != nil {
		h.Logger.Error("question selection failed",
			zap.String("userId", userID),
			zap.String("category", string(category)),
			zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "internal_error", "Failed to generate questions")
		return
	}

	metrics.ObserveQuestions(string(category), count, len(list))
	if len(list) < count {
		h.Logger.Info("returning fewer questions than requested",
			zap.String("userId", userID),
			zap.String("category", string(category)),
			zap.Int("requested", count),
			zap.Int("returned", len(list)))
	}
	utils.JSON(w, http.StatusOK, models.QuestionsResponse{Questions: list})
}
