// Package cache is the HTTP server's read cache on patrickmn/go-cache.
// Read endpoints render through Fetch; every catalog mutation calls
// Invalidate.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache memoizes rendered read responses by key.
type Cache struct {
	items *gocache.Cache

	// generation counts invalidations. A value computed across one is
	// returned but not stored. mu orders the store against Invalidate.
	mu         sync.Mutex
	generation atomic.Uint64

	hits          atomic.Int64
	misses        atomic.Int64
	invalidations atomic.Int64
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Items         int   `json:"items"`
	Hits          int64 `json:"hits"`
	Misses        int64 `json:"misses"`
	Invalidations int64 `json:"invalidations"`
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{items: gocache.New(ttl, 2*ttl)}
}

// Fetch returns the value stored under key, or computes and stores it.
// hit reports whether the value came from the cache.
func (c *Cache) Fetch(key string, compute func() any) (value any, hit bool) {
	if v, ok := c.items.Get(key); ok {
		c.hits.Add(1)
		return v, true
	}
	c.misses.Add(1)
	gen := c.generation.Load()
	v := compute()

	c.mu.Lock()
	if c.generation.Load() == gen {
		c.items.SetDefault(key, v)
	}
	c.mu.Unlock()
	return v, false
}

// Invalidate drops every entry, including any being computed.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.generation.Add(1)
	c.items.Flush()
	c.mu.Unlock()
	c.invalidations.Add(1)
}

// ItemCount returns the number of entries, expired ones included until the
// next cleanup.
func (c *Cache) ItemCount() int {
	return c.items.ItemCount()
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Items:         c.items.ItemCount(),
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Invalidations: c.invalidations.Load(),
	}
}
