package reference

import (
	"context"
	"sync"
)

// MemoryStore serves reference rows from process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data Data
}

// NewMemoryStore copies and orders the given snapshot.
func NewMemoryStore(d Data) *MemoryStore {
	cp := Data{
		Foods:         append([]FoodNutrition(nil), d.Foods...),
		Carriers:      append([]ShippingCarrier(nil), d.Carriers...),
		Breeds:        append([]BreedReference(nil), d.Breeds...),
		BMICategories: append([]BMICategory(nil), d.BMICategories...),
	}
	sortData(&cp)
	return &MemoryStore{data: cp}
}

// NewSeededMemoryStore returns a MemoryStore over Seed().
func NewSeededMemoryStore() *MemoryStore {
	return NewMemoryStore(Seed())
}

func (s *MemoryStore) Foods(ctx context.Context) ([]FoodNutrition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]FoodNutrition(nil), s.data.Foods...), nil
}

func (s *MemoryStore) Carriers(ctx context.Context) ([]ShippingCarrier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ShippingCarrier(nil), s.data.Carriers...), nil
}

func (s *MemoryStore) Breeds(ctx context.Context) ([]BreedReference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]BreedReference(nil), s.data.Breeds...), nil
}

func (s *MemoryStore) BMICategories(ctx context.Context) ([]BMICategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]BMICategory(nil), s.data.BMICategories...), nil
}

var _ Store = (*MemoryStore)(nil)
