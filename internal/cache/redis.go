package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const clearScanCount = 500

// Redis is a Cache backed by a shared Redis server. Keys are namespaced with
// prefix so Clear only touches this application's entries. Expiry uses native
// key TTLs, so an expired key reads as absent exactly like the Memory store.
//
// Backend errors are logged and reported as a miss; the caller falls through to storage.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis returns a Redis cache using client. prefix is prepended to every key.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// NewRedisFromURL parses a redis:// URL and returns a Redis cache with its own client.
func NewRedisFromURL(url, prefix string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return NewRedis(redis.NewClient(opts), prefix), nil
}

// Ping checks connectivity to the Redis server.
func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (c *Redis) Close() error {
	return c.client.Close()
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return val, true
}

func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "cache set failed", "key", key, "error", err)
	}
}

func (c *Redis) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		slog.WarnContext(ctx, "cache delete failed", "key", key, "error", err)
	}
}

// Clear deletes every key under the prefix using SCAN, never FLUSHDB.
func (c *Redis) Clear(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", clearScanCount).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= clearScanCount {
			c.del(ctx, batch)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		slog.WarnContext(ctx, "cache clear scan failed", "error", err)
	}
	if len(batch) > 0 {
		c.del(ctx, batch)
	}
}

func (c *Redis) del(ctx context.Context, keys []string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.WarnContext(ctx, "cache clear failed", "error", err)
	}
}
