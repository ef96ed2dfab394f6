// Package cache provides the read-through cache used by the news endpoints.
// Two backends implement Cache: an in-process Memory store and a Redis store.
package cache

import (
	"context"
	"time"
)

// Status reports whether a read was served from cache.
type Status string

const (
	Hit  Status = "HIT"
	Miss Status = "MISS"
)

// Cache is a key/value store with a per-entry TTL.
// An entry is absent once its TTL has passed. A ttl <= 0 stores the entry without expiry.
type Cache interface {
	// Get returns the value for key and true, or nil and false if the key was never set or has expired.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key for ttl, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context)
}
