package cache_test

import (
	"context"
	"testing"
	"time"

	"pathbridge-backend/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestCache(t *testing.T) (*cache.ViewCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewViewCache(client, time.Minute, nil), mr
}

func TestViewCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	assert.Nil(t, c.Get(ctx, "jobs"), "miss before set")

	c.Set(ctx, "jobs", []byte(`[{"id":"a1"}]`))
	assert.Equal(t, []byte(`[{"id":"a1"}]`), c.Get(ctx, "jobs"))
}

func TestViewCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "jobs", []byte("a"))
	c.Set(ctx, "refer", []byte("b"))
	c.Set(ctx, "messages", []byte("c"))

	c.Invalidate(ctx, "jobs", "refer")

	assert.Nil(t, c.Get(ctx, "jobs"))
	assert.Nil(t, c.Get(ctx, "refer"))
	assert.Equal(t, []byte("c"), c.Get(ctx, "messages"))
}

func TestViewCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	c := cache.NewViewCache(client, time.Second, nil)
	ctx := context.Background()

	c.Set(ctx, "jobs", []byte("a"))
	mr.FastForward(2 * time.Second)

	assert.Nil(t, c.Get(ctx, "jobs"))
}

func TestViewCacheNilClient(t *testing.T) {
	c := cache.NewViewCache(nil, time.Minute, nil)
	ctx := context.Background()

	// All operations degrade to no-ops.
	c.Set(ctx, "jobs", []byte("a"))
	c.Invalidate(ctx, "jobs")
	assert.Nil(t, c.Get(ctx, "jobs"))
}
