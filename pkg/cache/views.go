package cache

import (
	"context"
	"time"

	"log/slog"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "view:"

// ViewCache caches rendered view payloads in Redis and doubles as the
// view-invalidation hook: mutations call Invalidate with the stale route
// names and the next read repopulates. A nil client degrades to a no-op, so
// correctness never depends on Redis being up.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewViewCache(client *redis.Client, ttl time.Duration, log *slog.Logger) *ViewCache {
	return &ViewCache{client: client, ttl: ttl, log: log}
}

// Get returns the cached payload for a view key, or nil on miss or error.
func (c *ViewCache) Get(ctx context.Context, view string) []byte {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, keyPrefix+view).Bytes()
	if err != nil {
		if err != redis.Nil && c.log != nil {
			c.log.Warn("view cache get failed", "view", view, "error", err)
		}
		return nil
	}
	return data
}

// Set stores a payload for a view key with the configured TTL.
func (c *ViewCache) Set(ctx context.Context, view string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+view, payload, c.ttl).Err(); err != nil && c.log != nil {
		c.log.Warn("view cache set failed", "view", view, "error", err)
	}
}

// Invalidate drops the cached payloads for the given views. Fire-and-forget:
// failures are logged and swallowed.
func (c *ViewCache) Invalidate(ctx context.Context, views ...string) {
	if c == nil || c.client == nil || len(views) == 0 {
		return
	}
	keys := make([]string, len(views))
	for i, v := range views {
		keys[i] = keyPrefix + v
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil && c.log != nil {
		c.log.Warn("view invalidation failed", "views", views, "error", err)
	}
}
