package store

import (
	"context"
	"time"

	"uprala/pkg/types"

	"github.com/patrickmn/go-cache"
)

const (
	supportTypesCacheKey = "support_types"
	scalesCacheKey       = "scales"
)

// LookupSource is the uncached reference data reader, satisfied by
// *LookupRepository.
type LookupSource interface {
	SupportTypes(ctx context.Context) ([]*types.SupportType, error)
	SupportType(ctx context.Context, id string) (*types.SupportType, error)
	Scales(ctx context.Context) ([]*types.Scale, error)
	Scale(ctx context.Context, id string) (*types.Scale, error)
}

// CachedLookups keeps the support type and scale lists in memory. The tables
// only change when the seeder runs, so a TTL is enough for invalidation.
type CachedLookups struct {
	source LookupSource
	cache  *cache.Cache
}

func NewCachedLookups(source LookupSource, ttl time.Duration) *CachedLookups {
	return &CachedLookups{
		source: source,
		cache:  cache.New(ttl, 2*ttl),
	}
}

func (c *CachedLookups) SupportTypes(ctx context.Context) ([]*types.SupportType, error) {
	if cached, ok := c.cache.Get(supportTypesCacheKey); ok {
		return cached.([]*types.SupportType), nil
	}

	list, err := c.source.SupportTypes(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.SetDefault(supportTypesCacheKey, list)
	return list, nil
}

func (c *CachedLookups) SupportType(ctx context.Context, id string) (*types.SupportType, error) {
	list, err := c.SupportTypes(ctx)
	if err != nil {
		return nil, err
	}

	for _, st := range list {
		if st.ID == id {
			return st, nil
		}
	}

	// Not in the cached list; it may have been seeded since.
	return c.source.SupportType(ctx, id)
}

func (c *CachedLookups) Scales(ctx context.Context) ([]*types.Scale, error) {
	if cached, ok := c.cache.Get(scalesCacheKey); ok {
		return cached.([]*types.Scale), nil
	}

	list, err := c.source.Scales(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.SetDefault(scalesCacheKey, list)
	return list, nil
}

func (c *CachedLookups) Scale(ctx context.Context, id string) (*types.Scale, error) {
	list, err := c.Scales(ctx)
	if err != nil {
		return nil, err
	}

	for _, s := range list {
		if s.ID == id {
			return s, nil
		}
	}

	return c.source.Scale(ctx, id)
}

func (c *CachedLookups) Flush() {
	c.cache.Flush()
}
