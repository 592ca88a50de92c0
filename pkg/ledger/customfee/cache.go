package customfee

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
)

// DefaultCacheSize is the number of schedules CachedSchedules keeps by
// default.
const DefaultCacheSize = 1024

// CachedSchedules is a Schedules wrapper keeping recently used schedules in
// memory. It must be purged whenever any schedule changes.
type CachedSchedules struct {
	lower Schedules
	cache *lru.Cache
}

// NewCachedSchedules wraps lower with an LRU cache of the given size.
func NewCachedSchedules(lower Schedules, size int) *CachedSchedules {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, _ := lru.New(size) // Never errors for positive size.
	return &CachedSchedules{lower: lower, cache: c}
}

// Lookup implements the Schedules interface.
func (c *CachedSchedules) Lookup(token ledger.TokenID) ([]Fee, error) {
	if v, ok := c.cache.Get(token); ok {
		return v.([]Fee), nil
	}
	fees, err := c.lower.Lookup(token)
	if err != nil {
		return nil, err
	}
	c.cache.Add(token, fees)
	return fees, nil
}

// Invalidate drops the cached schedule of the token.
func (c *CachedSchedules) Invalidate(token ledger.TokenID) {
	c.cache.Remove(token)
}

// Purge drops all cached schedules.
func (c *CachedSchedules) Purge() {
	c.cache.Purge()
}
