package handlers

import (
	"context"

	"github.com/kushhpatell/r-intervyou/internal/models"
	"github.com/kushhpatell/r-intervyou/internal/questions"
)

// AuthService captures the account operations required by handlers.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, models.PublicUser, error)
	Login(ctx context.Context, identifier, password string) (string, models.PublicUser, error)
	Me(ctx context.Context, userID string) (models.PublicUser, error)
}

// SessionRepository captures the session persistence operations required by handlers.
type SessionRepository interface {
	Create(ctx context.Context, session *models.InterviewSession) error
	ListByUser(ctx context.Context, userID string) ([]models.InterviewSession, error)
	GetByIDForUser(ctx context.Context, id, userID string) (*models.InterviewSession, error)
	DeleteByIDForUser(ctx context.Context, id, userID string) error
}

type QuestionSelector interface {
	Select(ctx context.Context, req questions.Request) ([]string, error)
	Resolve(category questions.Category, level questions.Level) (questions.Category, questions.Level)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }
