package questions

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// SeenQuestionSource returns the question texts a user has already been asked.
type SeenQuestionSource interface {
	SeenQuestions(ctx context.Context, userID string) (map[string]struct{}, error)
}

type Request struct {
	UserID   string // empty for anonymous callers
	Category Category
	Level    Level
	Count    int
}

// Selector picks questions a user has not seen yet.
type Selector struct {
	catalog *Catalog
	seen    SeenQuestionSource

	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Selector)

// WithRand makes the shuffle deterministic, mostly for tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) { s.rng = r }
}

func NewSelector(catalog *Catalog, seen SeenQuestionSource, opts ...Option) *Selector {
	s := &Selector{
		catalog: catalog,
		seen:    seen,
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve reports the (category, level) a request is served from.
func (s *Selector) Resolve(category Category, level Level) (Category, Level) {
	return s.catalog.Resolve(category, level)
}

// Select returns up to req.Count distinct questions, preferring ones the user
// has not seen. Unseen generic questions backfill a short primary list. A short
// or empty result is not an error; failing to read the user's history is.
func (s *Selector) Select(ctx context.Context, req Request) ([]string, error) {
	if req.Count <= 0 {
		return []string{}, nil
	}

	seen := map[string]struct{}{}
	if req.UserID != "" && s.seen != nil {
		var err error
		if seen, err = s.seen.SeenQuestions(ctx, req.UserID); err != nil {
			return nil, fmt.Errorf("load seen questions: %w", err)
		}
	}

	candidates := make([]string, 0, req.Count)
	included := make(map[string]struct{})
	add := func(list []string) {
		for _, q := range list {
			if _, ok := seen[q]; ok {
				continue
			}
			if _, ok := included[q]; ok {
				continue
			}
			included[q] = struct{}{}
			candidates = append(candidates, q)
		}
	}

	add(s.catalog.Questions(req.Category, req.Level))
	if len(candidates) < req.Count {
		add(s.catalog.Generic())
	}

	s.shuffle(candidates)
	if len(candidates) > req.Count {
		candidates = candidates[:req.Count]
	}
	return candidates, nil
}

// Fisher-Yates
func (s *Selector) shuffle(list []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(list) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		list[i], list[j] = list[j], list[i]
	}
}
