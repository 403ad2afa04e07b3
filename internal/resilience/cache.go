package resilience

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TTLCache is a concurrency-safe expiring cache. Each instance carries its
// own TTL (embeddings 24h, rerank results 1h, final answers 24h) and is
// constructor injected by the owning service.
type TTLCache struct {
	cache *gocache.Cache
}

// NewTTLCache creates a cache whose entries expire after ttl
func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached value, or false once the entry has expired
func (c *TTLCache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

// Set stores a value under the cache's default TTL
func (c *TTLCache) Set(key string, value interface{}) {
	c.cache.Set(key, value, gocache.DefaultExpiration)
}

// Flush removes all entries; used by tests to reset state between runs
func (c *TTLCache) Flush() {
	c.cache.Flush()
}

// ItemCount returns the number of live entries
func (c *TTLCache) ItemCount() int {
	return c.cache.ItemCount()
}
