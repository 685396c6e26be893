package images

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Image
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Image)}
}

func (r *MemoryRepo) Create(ctx context.Context, img Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[img.ID] = img
	return nil
}

// GetByID returns the image only when it belongs to userID.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, imageID string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.data[imageID]
	if !ok || img.UserID != userID {
		return Image{}, ErrNotFound
	}
	return img, nil
}
