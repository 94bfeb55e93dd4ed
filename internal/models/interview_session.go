package models

import "time"

// FeedbackEntry is the feedback recorded for a single question of a session.
type FeedbackEntry struct {
	Question string  `bson:"question" json:"question"`
	Answer   string  `bson:"answer,omitempty" json:"answer,omitempty"`
	Feedback string  `bson:"feedback,omitempty" json:"feedback,omitempty"`
	Score    float64 `bson:"score,omitempty" json:"score,omitempty"`
}

// InterviewSession represents a completed practice interview.
// Sessions are immutable once stored; the owner may only delete them.
type InterviewSession struct {
	ID           string          `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	UserID       string          `gorm:"not null;index:idx_sessions_user_created" bson:"userId" json:"userId"`
	Type         string          `bson:"type" json:"type"`
	Level        string          `bson:"level" json:"level"`
	Role         string          `bson:"role" json:"role"`
	Duration     int             `bson:"duration" json:"duration"`
	Score        float64         `bson:"score" json:"score"`
	Feedback     []FeedbackEntry `gorm:"serializer:json" bson:"feedback" json:"feedback"`
	Strengths    []string        `gorm:"serializer:json" bson:"strengths" json:"strengths"`
	Improvements []string        `gorm:"serializer:json" bson:"improvements" json:"improvements"`
	CreatedAt    time.Time       `gorm:"index:idx_sessions_user_created" bson:"createdAt" json:"createdAt"`
}

// Questions returns the question texts of the session in order.
func (s *InterviewSession) Questions() []string {
	out := make([]string, 0, len(s.Feedback))
	for _, f := range s.Feedback {
		out = append(out, f.Question)
	}
	return out
}
