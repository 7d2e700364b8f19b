package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/benchsplit/internal/model"
)

// MemoryCache implements in-memory caching with expiry
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a split result from the cache
func (c *MemoryCache) Get(key string) (*model.SplitResult, bool) {
	if val, found := c.cache.Get(key); found {
		if result, ok := val.(*model.SplitResult); ok {
			return result, true
		}
	}
	return nil, false
}

// Set stores a split result with the given TTL (0 uses the default)
func (c *MemoryCache) Set(key string, value *model.SplitResult, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all values from the cache
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}

// Len returns the number of cached items, including expired ones not yet
// cleaned up
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
