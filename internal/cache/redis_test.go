package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: mr.Addr(), Prefix: "test:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestRedisCacheSetGet(t *testing.T) {
	mr, c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "managers", []byte(`[{"id":1}]`), time.Hour))
	assert.True(t, mr.Exists("test:managers"))
	assert.Equal(t, time.Hour, mr.TTL("test:managers"))

	got, err := c.Get(ctx, "managers")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	_, err = c.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrMiss)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, 1, stats.Size)
}

func TestRedisCacheExpiry(t *testing.T) {
	mr, c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "teams", []byte("{}"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "teams")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisCacheFlushOnlyTouchesPrefix(t *testing.T) {
	mr, c := newTestRedis(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("other:key", "keep"))
	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))

	require.NoError(t, c.Delete(ctx, "a"))
	assert.False(t, mr.Exists("test:a"))

	require.NoError(t, c.Flush(ctx))
	assert.False(t, mr.Exists("test:b"))
	assert.True(t, mr.Exists("other:key"))
}

func TestRedisCacheConnectFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisCache(context.Background(), RedisConfig{Addr: addr}, nil)
	assert.ErrorContains(t, err, "redis connection failed")
}

func TestRedisCacheGetErrorWhenServerDown(t *testing.T) {
	mr, c := newTestRedis(t)
	mr.Close()

	_, err := c.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}

func TestRedisCachePing(t *testing.T) {
	mr, c := newTestRedis(t)
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}
