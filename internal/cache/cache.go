// Package cache provides a time-bounded key/value store used by the
// data-fetching handlers.
package cache

import (
	"sync"
	"time"
)

// entry pairs a stored value with its storage instant.
type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Cache is a lock-protected expiring map. Entries expire lazily: a
// lookup past the TTL reports a miss but the stale value remains
// readable through GetStale until overwritten. Nothing is proactively
// purged; the key space is bounded by the instrument table.
type Cache[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry[T]
	now     func() time.Time // injectable clock for testing
}

// New creates a cache whose entries are valid for ttl.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		ttl:     ttl,
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

// Get returns the value for key if it was stored less than ttl ago.
// An entry aged exactly ttl is treated as expired.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

// GetStale returns the last stored value for key regardless of age.
// Used by handlers whose policy allows masking a provider failure with
// expired data.
func (c *Cache[T]) GetStale(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, overwriting any previous entry.
func (c *Cache[T]) Put(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[T]{value: value, storedAt: c.now()}
}

// Len returns the number of stored entries, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// SetClock replaces the cache's clock. Intended for tests.
func (c *Cache[T]) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
