package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kushhpatell/r-intervyou/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

// Create stores a new session; id and createdAt are assigned here.
func (r *SessionRepository) Create(ctx context.Context, session *models.InterviewSession) error {
	session.ID = uuid.NewString()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	return r.DB.WithContext(ctx).Create(session).Error
}

// ListByUser returns the user's sessions, newest first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID string) ([]models.InterviewSession, error) {
	sessions := []models.InterviewSession{}
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) GetByIDForUser(ctx context.Context, id, userID string) (*models.InterviewSession, error) {
	var session models.InterviewSession
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteByIDForUser is a no-op when the session does not exist or is not owned by userID.
func (r *SessionRepository) DeleteByIDForUser(ctx context.Context, id, userID string) error {
	return r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.InterviewSession{}).Error
}

// SeenQuestions collects the trimmed question texts from all of the user's sessions.
func (r *SessionRepository) SeenQuestions(ctx context.Context, userID string) (map[string]struct{}, error) {
	var rows []models.InterviewSession
	if err := r.DB.WithContext(ctx).
		Select("feedback").
		Where("user_id = ?", userID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	for _, row := range rows {
		for _, f := range row.Feedback {
			if q := strings.TrimSpace(f.Question); q != "" {
				seen[q] = struct{}{}
			}
		}
	}
	return seen, nil
}

// Ping checks the underlying connection pool.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
