package sessions

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu        sync.RWMutex
	sessions  map[string]Session
	questions map[string][]Question
	answers   map[string]map[string]Answer
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		sessions:  make(map[string]Session),
		questions: make(map[string][]Question),
		answers:   make(map[string]map[string]Answer),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, s Session, questions []Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	r.questions[s.ID] = append([]Question(nil), questions...)
	r.answers[s.ID] = make(map[string]Answer)
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, userID, sessionID string) (Aggregate, error) {
	if err := ctx.Err(); err != nil {
		return Aggregate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	if !ok || s.UserID != userID {
		return Aggregate{}, ErrNotFound
	}
	agg := Aggregate{
		Session:   s,
		Questions: append([]Question(nil), r.questions[sessionID]...),
		Answers:   make([]Answer, 0, len(r.answers[sessionID])),
	}
	for _, a := range r.answers[sessionID] {
		agg.Answers = append(agg.Answers, a)
	}
	sort.Slice(agg.Answers, func(i, j int) bool {
		return agg.Answers[i].CreatedAt.Before(agg.Answers[j].CreatedAt)
	})
	return agg, nil
}

func (r *MemoryRepo) SaveAnswers(ctx context.Context, sessionID string, answers []Answer, status Status, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	if s.Status.Terminal() {
		return ErrSessionClosed
	}
	byQuestion := r.answers[sessionID]
	for _, a := range answers {
		if prev, ok := byQuestion[a.QuestionID]; ok {
			a.ID = prev.ID
			a.CreatedAt = prev.CreatedAt
		}
		byQuestion[a.QuestionID] = a
	}
	s.Status = status
	s.UpdatedAt = at
	r.sessions[sessionID] = s
	return nil
}

func (r *MemoryRepo) SetStatus(ctx context.Context, sessionID string, status Status, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	if s.Status.Terminal() {
		return ErrSessionClosed
	}
	s.Status = status
	s.UpdatedAt = at
	r.sessions[sessionID] = s
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, userID string, f ListFilter) ([]Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Session, 0)
	for _, s := range r.sessions {
		if s.UserID == userID && f.matches(s) {
			out = append(out, s)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f ListFilter) matches(s Session) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(s.ObjectLabel), q) && !strings.Contains(strings.ToLower(s.ObjectSummary), q) {
			return false
		}
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.Category != "" && s.Object.DetectedCategory != f.Category {
		return false
	}
	if f.From != nil && s.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && s.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

var _ Repo = (*MemoryRepo)(nil)
