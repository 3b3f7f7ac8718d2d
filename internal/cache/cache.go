// Package cache provides a time-boxed memoization store for expensive
// aggregations and directory scans.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	storedAt time.Time
	value    any
}

// Cache memoizes computed values under string keys with a per-call TTL.
// Expiry is lazy: an entry is only discarded when a later Do call finds it
// stale. The clock is injectable for tests.
type Cache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]entry
}

// New returns an empty cache using the wall clock.
func New() *Cache {
	return NewWithClock(time.Now)
}

// NewWithClock returns an empty cache using the given clock.
func NewWithClock(now func() time.Time) *Cache {
	return &Cache{now: now, entries: make(map[string]entry)}
}

// Do returns the cached value for key if it is younger than ttl, otherwise
// runs compute, stores its result, and returns it. Errors are not cached.
//
// Keys must encode the operation identity and its arguments, e.g.
// "replay:"+sessionID. Calls for the same key are not deduplicated across
// goroutines; the second caller recomputes if the first has not stored yet.
func (c *Cache) Do(key string, ttl time.Duration, compute func() (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.storedAt) < ttl {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	v, err := compute()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = entry{storedAt: c.now(), value: v}
	c.mu.Unlock()
	return v, nil
}

// Invalidate removes the entry for key, if present.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len returns the number of stored entries, including stale ones not yet
// evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
