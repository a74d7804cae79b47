package elevation

import (
	"fmt"
	"sync"
)

// CacheKey rounds a coordinate to 5 decimal places (about 1 m of ground
// precision), which is the cache and provider batching granularity
func CacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.5f,%.5f", lat, lon)
}

// Cache is a process-local read-through elevation cache keyed by rounded
// coordinate. Writes are idempotent; a stale read for the same rounded key
// is acceptable
type Cache struct {
	mu   sync.RWMutex
	data map[string]float64
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{data: make(map[string]float64)}
}

// Get returns the cached elevation for a coordinate
func (c *Cache) Get(lat, lon float64) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[CacheKey(lat, lon)]
	return v, ok
}

// Set stores an elevation for a coordinate
func (c *Cache) Set(lat, lon, elevation float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[CacheKey(lat, lon)] = elevation
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
