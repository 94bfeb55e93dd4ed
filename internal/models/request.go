package models

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultQuestionCount = 15
	MaxQuestionCount     = 20

	// bcrypt only accepts passwords up to this many bytes
	MaxPasswordBytes = 72
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// implements the Validator interface
func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	if r.Username == "" || r.Email == "" || r.Password == "" {
		return &ErrorResponse{Code: "missing_fields", Message: "Missing fields"}
	}
	if len(r.Password) > MaxPasswordBytes {
		return &ErrorResponse{Code: "invalid_password", Message: "Password must be at most 72 bytes"}
	}
	return nil
}

// LoginRequest accepts either a username or an email in Username.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" || r.Password == "" {
		return &ErrorResponse{Code: "missing_fields", Message: "Missing fields"}
	}
	return nil
}

type GenerateQuestionsRequest struct {
	Type  string        `json:"type"`
	Role  string        `json:"role"`
	Level string        `json:"level"`
	Count QuestionCount `json:"count,omitempty"`
}

func (r *GenerateQuestionsRequest) Validate() error {
	if r.Type == "" || r.Role == "" || r.Level == "" {
		return &ErrorResponse{Code: "missing_fields", Message: "type, role and level are required"}
	}
	return nil
}

// QuestionCount decodes the requested number of questions leniently: clients
// send numbers, numeric strings and fractions. Anything unparseable decodes to
// zero, which resolves to the default.
type QuestionCount float64

func (c *QuestionCount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "true":
		*c = 1
		return nil
	case strings.HasPrefix(raw, `"`):
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*c = 0
			return nil
		}
		raw = strings.TrimSpace(str)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || math.IsNaN(f) {
		f = 0
	}
	*c = QuestionCount(f)
	return nil
}

// ResolvedCount applies the default, clamps to [1, MaxQuestionCount] and
// drops any fractional part.
func (r *GenerateQuestionsRequest) ResolvedCount() int {
	n := float64(r.Count)
	if n == 0 {
		n = DefaultQuestionCount
	}
	n = math.Min(math.Max(n, 1), MaxQuestionCount)
	return int(math.Floor(n))
}

type CreateSessionRequest struct {
	Type         string          `json:"type"`
	Level        string          `json:"level"`
	Role         string          `json:"role"`
	Duration     int             `json:"duration"`
	Score        float64         `json:"score"`
	Feedback     []FeedbackEntry `json:"feedback"`
	Strengths    []string        `json:"strengths"`
	Improvements []string        `json:"improvements"`
}

func (r *CreateSessionRequest) Validate() error {
	if strings.TrimSpace(r.Type) == "" || strings.TrimSpace(r.Level) == "" {
		return &ErrorResponse{Code: "missing_fields", Message: "type and level are required"}
	}
	if r.Duration < 0 {
		return &ErrorResponse{Code: "invalid_duration", Message: "duration must not be negative"}
	}
	for i := range r.Feedback {
		r.Feedback[i].Question = strings.TrimSpace(r.Feedback[i].Question)
		if r.Feedback[i].Question == "" {
			return &ErrorResponse{Code: "invalid_feedback", Message: "every feedback entry needs a question"}
		}
	}
	return nil
}

// ToSession builds an unsaved session owned by userID.
func (r *CreateSessionRequest) ToSession(userID string) *InterviewSession {
	s := &InterviewSession{
		UserID:       userID,
		Type:         r.Type,
		Level:        r.Level,
		Role:         r.Role,
		Duration:     r.Duration,
		Score:        r.Score,
		Feedback:     r.Feedback,
		Strengths:    r.Strengths,
		Improvements: r.Improvements,
	}
	if s.Feedback == nil {
		s.Feedback = []FeedbackEntry{}
	}
	if s.Strengths == nil {
		s.Strengths = []string{}
	}
	if s.Improvements == nil {
		s.Improvements = []string{}
	}
	return s
}
