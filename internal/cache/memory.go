package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// Memory is a process-local Cache. Expired entries are dropped lazily on Get;
// there is no background sweeper and no capacity bound.
type Memory struct {
	mu   sync.RWMutex
	m    map[string]entry
	nowF func() time.Time
}

// NewMemory returns an empty in-memory cache using the wall clock.
func NewMemory() *Memory {
	return NewMemoryWithClock(time.Now)
}

// NewMemoryWithClock returns an empty in-memory cache that reads time from now.
func NewMemoryWithClock(now func() time.Time) *Memory {
	return &Memory{
		m:    make(map[string]entry),
		nowF: now,
	}
}

// Get returns the value for key if present and not expired. An expired entry is deleted.
func (c *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && c.nowF().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have replaced it.
		if cur, ok := c.m[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.m, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key until now+ttl.
func (c *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.nowF().Add(ttl)
	}
	c.mu.Lock()
	c.m[key] = entry{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

func (c *Memory) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
}

func (c *Memory) Clear(ctx context.Context) {
	c.mu.Lock()
	c.m = make(map[string]entry)
	c.mu.Unlock()
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
