package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/kushhpatell/r-intervyou/internal/models"
	"github.com/kushhpatell/r-intervyou/internal/testhelpers"
)

func newSessionRepo(t *testing.T) *SessionRepository {
	t.Helper()
	return &SessionRepository{DB: testhelpers.SetupTestDB(t)}
}

func seedSession(t *testing.T, repo *SessionRepository, userID string, createdAt time.Time, questions ...string) *models.InterviewSession {
	t.Helper()
	s := &models.InterviewSession{
		UserID:       userID,
		Type:         "technical",
		Level:        "mid",
		Role:         "Backend Engineer",
		Duration:     600,
		Score:        7,
		Strengths:    []string{"clarity"},
		Improvements: []string{"depth"},
		CreatedAt:    createdAt,
	}
	for _, q := range questions {
		s.Feedback = append(s.Feedback, models.FeedbackEntry{Question: q, Feedback: "ok"})
	}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return s
}

func TestSessionRepository_Create(t *testing.T) {
	repo := newSessionRepo(t)
	s := &models.InterviewSession{UserID: "u1", Type: "behavioral", Level: "entry"}

	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if s.ID == "" {
		t.Fatal("expected id to be assigned")
	}
	if s.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be assigned")
	}
}

func TestSessionRepository_ListByUserNewestFirst(t *testing.T) {
	repo := newSessionRepo(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	oldest := seedSession(t, repo, "u1", base, "q1")
	newest := seedSession(t, repo, "u1", base.Add(2*time.Hour), "q2")
	middle := seedSession(t, repo, "u1", base.Add(time.Hour), "q3")
	seedSession(t, repo, "u2", base.Add(3*time.Hour), "q4")

	got, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(got))
	}
	want := []string{newest.ID, middle.ID, oldest.ID}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	if len(got[0].Feedback) != 1 || got[0].Feedback[0].Question != "q2" {
		t.Fatalf("expected feedback to round-trip, got %+v", got[0].Feedback)
	}

	empty, err := repo.ListByUser(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestSessionRepository_GetByIDForUser(t *testing.T) {
	repo := newSessionRepo(t)
	s := seedSession(t, repo, "owner", time.Now().UTC(), "q1")

	t.Run("owner", func(t *testing.T) {
		got, err := repo.GetByIDForUser(context.Background(), s.ID, "owner")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Role != "Backend Engineer" || len(got.Strengths) != 1 {
			t.Fatalf("unexpected session %+v", got)
		}
	})

	t.Run("other user", func(t *testing.T) {
		if _, err := repo.GetByIDForUser(context.Background(), s.ID, "intruder"); err != ErrSessionNotFound {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := repo.GetByIDForUser(context.Background(), "missing", "owner"); err != ErrSessionNotFound {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestSessionRepository_DeleteByIDForUser(t *testing.T) {
	repo := newSessionRepo(t)
	s := seedSession(t, repo, "owner", time.Now().UTC(), "q1")

	if err := repo.DeleteByIDForUser(context.Background(), s.ID, "intruder"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.GetByIDForUser(context.Background(), s.ID, "owner"); err != nil {
		t.Fatalf("session must survive a delete by another user: %v", err)
	}

	if err := repo.DeleteByIDForUser(context.Background(), s.ID, "owner"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.GetByIDForUser(context.Background(), s.ID, "owner"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}

	if err := repo.DeleteByIDForUser(context.Background(), s.ID, "owner"); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
}

func TestSessionRepository_SeenQuestions(t *testing.T) {
	repo := newSessionRepo(t)
	now := time.Now().UTC()
	seedSession(t, repo, "u1", now, "Tell me about yourself.", "  Why this role?  ")
	seedSession(t, repo, "u1", now.Add(time.Minute), "Tell me about yourself.")
	seedSession(t, repo, "u2", now, "Not mine")

	seen, err := repo.SeenQuestions(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 seen questions, got %v", seen)
	}
	for _, q := range []string{"Tell me about yourself.", "Why this role?"} {
		if _, ok := seen[q]; !ok {
			t.Fatalf("expected %q in seen set %v", q, seen)
		}
	}

	none, err := repo.SeenQuestions(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty seen set, got %v", none)
	}
}

func TestSessionRepository_DatabaseError(t *testing.T) {
	repo := newSessionRepo(t)
	testhelpers.DropSessionTable(t, repo.DB)

	if _, err := repo.SeenQuestions(context.Background(), "u1"); err == nil {
		t.Fatal("expected error from SeenQuestions")
	}
	if _, err := repo.ListByUser(context.Background(), "u1"); err == nil {
		t.Fatal("expected error from ListByUser")
	}
	if _, err := repo.GetByIDForUser(context.Background(), "x", "u1"); err == nil || err == ErrSessionNotFound {
		t.Fatalf("expected underlying DB error, got %v", err)
	}
}

func TestPing(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	if err := Ping(context.Background(), db); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}
