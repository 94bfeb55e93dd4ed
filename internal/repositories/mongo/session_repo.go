package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kushhpatell/r-intervyou/internal/models"
	"github.com/kushhpatell/r-intervyou/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionsCollection = "interview_sessions"

// SessionRepo wraps the interview_sessions collection
type SessionRepo struct{ col *mongo.Collection }

// NewSessionRepo ensures the owner/createdAt index used by listing
func NewSessionRepo(ctx context.Context, db *mongo.Database) (*SessionRepo, error) {
	r := &SessionRepo{col: db.Collection(sessionsCollection)}
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create session indexes: %w", err)
	}
	return r, nil
}

func (r *SessionRepo) Create(ctx context.Context, session *models.InterviewSession) error {
	session.ID = primitive.NewObjectID().Hex()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, session)
	return err
}

// ListByUser returns the user's sessions, newest first
func (r *SessionRepo) ListByUser(ctx context.Context, userID string) ([]models.InterviewSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.InterviewSession{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SessionRepo) GetByIDForUser(ctx context.Context, id, userID string) (*models.InterviewSession, error) {
	var session models.InterviewSession
	err := r.col.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteByIDForUser is a no-op when nothing matches
func (r *SessionRepo) DeleteByIDForUser(ctx context.Context, id, userID string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	return err
}

type feedbackQuestions struct {
	Feedback []struct {
		Question string `bson:"question"`
	} `bson:"feedback"`
}

// SeenQuestions projects only feedback.question across the user's sessions
func (r *SessionRepo) SeenQuestions(ctx context.Context, userID string) (map[string]struct{}, error) {
	opts := options.Find().SetProjection(bson.M{"feedback.question": 1})
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	seen := make(map[string]struct{})
	for cur.Next(ctx) {
		var doc feedbackQuestions
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		for _, f := range doc.Feedback {
			if q := strings.TrimSpace(f.Question); q != "" {
				seen[q] = struct{}{}
			}
		}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return seen, nil
}
