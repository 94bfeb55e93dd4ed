package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kushhpatell/r-intervyou/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SessionCreatedChannel is the Redis channel session creations are announced on.
const SessionCreatedChannel = "interview_session_created"

type SessionCreatedEvent struct {
	SessionID     string    `json:"sessionId"`
	UserID        string    `json:"userId"`
	Type          string    `json:"type"`
	Level         string    `json:"level"`
	Role          string    `json:"role"`
	Score         float64   `json:"score"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewSessionCreatedEvent summarizes a stored session.
func NewSessionCreatedEvent(s *models.InterviewSession) SessionCreatedEvent {
	return SessionCreatedEvent{
		SessionID:     s.ID,
		UserID:        s.UserID,
		Type:          s.Type,
		Level:         s.Level,
		Role:          s.Role,
		Score:         s.Score,
		QuestionCount: len(s.Feedback),
		CreatedAt:     s.CreatedAt,
	}
}

type Publisher interface {
	PublishSessionCreated(ctx context.Context, event SessionCreatedEvent) error
	Close() error
}

type RedisPublisher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisPublisher(addr string, logger *zap.Logger) *RedisPublisher {
	return NewRedisPublisherWithClient(redis.NewClient(&redis.Options{Addr: addr}), logger)
}

func NewRedisPublisherWithClient(rdb *redis.Client, logger *zap.Logger) *RedisPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPublisher{rdb: rdb, logger: logger}
}

func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func (p *RedisPublisher) PublishSessionCreated(ctx context.Context, event SessionCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal session event: %w", err)
	}
	receivers, err := p.rdb.Publish(ctx, SessionCreatedChannel, payload).Result()
	if err != nil {
		return fmt.Errorf("publish %s: %w", SessionCreatedChannel, err)
	}
	p.logger.Debug("published session event",
		zap.String("sessionId", event.SessionID),
		zap.Int64("receivers", receivers))
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}

// NopPublisher drops every event. Used when no Redis address is configured.
type NopPublisher struct{}

func (NopPublisher) PublishSessionCreated(context.Context, SessionCreatedEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
