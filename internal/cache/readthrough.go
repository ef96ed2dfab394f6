package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// ReadThrough returns the value cached under key, or calls load, caches its
// result for ttl and returns it. Errors from load are returned and nothing is cached.
// Concurrent misses on the same key may each call load; the last Set wins.
func ReadThrough[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, Status, error) {
	if raw, ok := c.Get(ctx, key); ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, Hit, nil
		}
		slog.WarnContext(ctx, "cache entry undecodable, reloading", "key", key)
	}

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, Miss, err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		slog.WarnContext(ctx, "cache entry unencodable, skipping", "key", key, "error", err)
		return v, Miss, nil
	}
	c.Set(ctx, key, raw, ttl)
	return v, Miss, nil
}
