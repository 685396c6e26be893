package reference

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	cacheKeyFoods    = "foods"
	cacheKeyCarriers = "carriers"
	cacheKeyBreeds   = "breeds"
	cacheKeyBMI      = "bmi_categories"
)

// CachedStore memoizes each table of a backing Store for ttl.
type CachedStore struct {
	base  Store
	cache *cache.Cache
}

// NewCachedStore wraps base. A non-positive ttl defaults to ten minutes.
func NewCachedStore(base Store, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedStore{
		base:  base,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *CachedStore) Foods(ctx context.Context) ([]FoodNutrition, error) {
	return cached(ctx, s.cache, cacheKeyFoods, s.base.Foods)
}

func (s *CachedStore) Carriers(ctx context.Context) ([]ShippingCarrier, error) {
	return cached(ctx, s.cache, cacheKeyCarriers, s.base.Carriers)
}

func (s *CachedStore) Breeds(ctx context.Context) ([]BreedReference, error) {
	return cached(ctx, s.cache, cacheKeyBreeds, s.base.Breeds)
}

func (s *CachedStore) BMICategories(ctx context.Context) ([]BMICategory, error) {
	return cached(ctx, s.cache, cacheKeyBMI, s.base.BMICategories)
}

// Invalidate drops every cached table.
func (s *CachedStore) Invalidate() {
	s.cache.Flush()
}

func cached[T any](ctx context.Context, c *cache.Cache, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if v, ok := c.Get(key); ok {
		if rows, ok := v.([]T); ok {
			return append([]T(nil), rows...), nil
		}
	}
	rows, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.SetDefault(key, rows)
	return append([]T(nil), rows...), nil
}

var _ Store = (*CachedStore)(nil)
