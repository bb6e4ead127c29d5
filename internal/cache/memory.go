package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps recently fetched documents in process memory. It is
// the hot layer: cheap hits for the common case where several quotes in
// one file cite the same paper.
type MemoryCache struct {
	entries *gocache.Cache
}

// NewMemoryCache builds a memory cache with the given default entry TTL
// and the interval at which expired entries are swept.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{entries: gocache.New(defaultTTL, cleanupInterval)}
}

// Get returns the cached bytes for key, if present and unexpired.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	return val.([]byte), true
}

// Set stores value under key. A zero ttl means the cache's default TTL.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.entries.Set(key, value, ttl)
	return nil
}

// Delete drops the entry for key.
func (c *MemoryCache) Delete(key string) error {
	c.entries.Delete(key)
	return nil
}

// Clear drops every entry.
func (c *MemoryCache) Clear() error {
	c.entries.Flush()
	return nil
}
