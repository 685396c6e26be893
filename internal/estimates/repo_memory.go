package estimates

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu        sync.RWMutex
	estimates map[string]WeightEstimate
	bySession map[string]string
	details   map[string]Details
	feedback  map[string]WeightFeedback
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		estimates: make(map[string]WeightEstimate),
		bySession: make(map[string]string),
		details:   make(map[string]Details),
		feedback:  make(map[string]WeightFeedback),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, est WeightEstimate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bySession[est.SessionID]; ok {
		return ErrAlreadyExists
	}
	r.estimates[est.ID] = est
	r.bySession[est.SessionID] = est.ID
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, estimateID string) (WeightEstimate, error) {
	if err := ctx.Err(); err != nil {
		return WeightEstimate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	est, ok := r.estimates[estimateID]
	if !ok || est.UserID != userID {
		return WeightEstimate{}, ErrNotFound
	}
	return est, nil
}

func (r *MemoryRepo) GetBySession(ctx context.Context, sessionID string) (WeightEstimate, error) {
	if err := ctx.Err(); err != nil {
		return WeightEstimate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.bySession[sessionID]
	if !ok {
		return WeightEstimate{}, ErrNotFound
	}
	return r.estimates[id], nil
}

// ListByUser returns the user's estimates, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]WeightEstimate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]WeightEstimate, 0)
	for _, est := range r.estimates {
		if est.UserID == userID {
			out = append(out, est)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) UpdateMetadata(ctx context.Context, estimateID string, metadata []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	est, ok := r.estimates[estimateID]
	if !ok {
		return ErrNotFound
	}
	est.CategoryMetadata = append([]byte(nil), metadata...)
	r.estimates[estimateID] = est
	return nil
}

func (r *MemoryRepo) SaveDetails(ctx context.Context, estimateID string, d Details) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.estimates[estimateID]; !ok {
		return ErrNotFound
	}
	r.details[estimateID] = d
	return nil
}

func (r *MemoryRepo) Details(ctx context.Context, estimateID string) (Details, error) {
	if err := ctx.Err(); err != nil {
		return Details{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.details[estimateID], nil
}

func (r *MemoryRepo) CreateFeedback(ctx context.Context, fb WeightFeedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.estimates[fb.EstimateID]; !ok {
		return ErrNotFound
	}
	if _, ok := r.feedback[fb.EstimateID]; ok {
		return ErrFeedbackExists
	}
	r.feedback[fb.EstimateID] = fb
	return nil
}

func (r *MemoryRepo) Feedback(ctx context.Context, estimateID string) (WeightFeedback, error) {
	if err := ctx.Err(); err != nil {
		return WeightFeedback{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fb, ok := r.feedback[estimateID]
	if !ok {
		return WeightFeedback{}, ErrNotFound
	}
	return fb, nil
}

var _ Repo = (*MemoryRepo)(nil)
