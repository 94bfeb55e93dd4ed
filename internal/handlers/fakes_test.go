package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kushhpatell/r-intervyou/internal/events"
	"github.com/kushhpatell/r-intervyou/internal/middleware"
	"github.com/kushhpatell/r-intervyou/internal/models"
	"github.com/kushhpatell/r-intervyou/internal/questions"
)

type mockAuthService struct {
	registerFn func(ctx context.Context, username, email, password string) (string, models.PublicUser, error)
	loginFn    func(ctx context.Context, identifier, password string) (string, models.PublicUser, error)
	meFn       func(ctx context.Context, userID string) (models.PublicUser, error)
}

func (m *mockAuthService) Register(ctx context.Context, username, email, password string) (string, models.PublicUser, error) {
	if m.registerFn == nil {
		panic("unexpected call to Register")
	}
	return m.registerFn(ctx, username, email, password)
}

func (m *mockAuthService) Login(ctx context.Context, identifier, password string) (string, models.PublicUser, error) {
	if m.loginFn == nil {
		panic("unexpected call to Login")
	}
	return m.loginFn(ctx, identifier, password)
}

func (m *mockAuthService) Me(ctx context.Context, userID string) (models.PublicUser, error) {
	if m.meFn == nil {
		panic("unexpected call to Me")
	}
	return m.meFn(ctx, userID)
}

type mockSessionRepo struct {
	createFn func(context.Context, *models.InterviewSession) error
	listFn   func(context.Context, string) ([]models.InterviewSession, error)
	getFn    func(context.Context, string, string) (*models.InterviewSession, error)
	deleteFn func(context.Context, string, string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, s *models.InterviewSession) error {
	if m.createFn == nil {
		panic("unexpected call to Create")
	}
	return m.createFn(ctx, s)
}

func (m *mockSessionRepo) ListByUser(ctx context.Context, userID string) ([]models.InterviewSession, error) {
	if m.listFn == nil {
		panic("unexpected call to ListByUser")
	}
	return m.listFn(ctx, userID)
}

func (m *mockSessionRepo) GetByIDForUser(ctx context.Context, id, userID string) (*models.InterviewSession, error) {
	if m.getFn == nil {
		panic("unexpected call to GetByIDForUser")
	}
	return m.getFn(ctx, id, userID)
}

func (m *mockSessionRepo) DeleteByIDForUser(ctx context.Context, id, userID string) error {
	if m.deleteFn == nil {
		panic("unexpected call to DeleteByIDForUser")
	}
	return m.deleteFn(ctx, id, userID)
}

type mockSelector struct {
	selectFn  func(context.Context, questions.Request) ([]string, error)
	resolveFn func(questions.Category, questions.Level) (questions.Category, questions.Level)
}

func (m *mockSelector) Select(ctx context.Context, req questions.Request) ([]string, error) {
	return m.selectFn(ctx, req)
}

func (m *mockSelector) Resolve(category questions.Category, level questions.Level) (questions.Category, questions.Level) {
	if m.resolveFn != nil {
		return m.resolveFn(category, level)
	}
	return questions.Default().Resolve(category, level)
}

type recordingPublisher struct {
	events []events.SessionCreatedEvent
	err    error
}

func (p *recordingPublisher) PublishSessionCreated(_ context.Context, e events.SessionCreatedEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// serve runs h behind request validation for T, as the routers mount it.
func serve[T middleware.Validator](h http.HandlerFunc, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	middleware.ValidateRequest[T]()(h).ServeHTTP(rec, req)
	return rec
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp.Code
}
