package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "managers", []byte(`[1,2]`), time.Minute))
	got, err := c.Get(ctx, "managers")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, 1, stats.Size)
}

func TestMemoryCacheValuesAreCopied(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()
	buf := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", buf, 0))
	buf[0] = 'x'

	got, _ := c.Get(ctx, "k")
	got[1] = 'y'
	again, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryCacheExpires(t *testing.T) {
	c := NewMemoryCache(0)
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "teams", []byte("{}"), time.Hour))
	now = now.Add(59 * time.Minute)
	_, err := c.Get(ctx, "teams")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = c.Get(ctx, "teams")
	assert.ErrorIs(t, err, ErrMiss)

	c.deleteExpired()
	assert.Equal(t, 0, c.Stats().Size)
	assert.Equal(t, int64(1), c.Stats().Evictions)
}

func TestMemoryCacheDeleteAndFlush(t *testing.T) {
	c := NewMemoryCache(0)
	ctx := context.Background()
	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)

	require.NoError(t, c.Delete(ctx, "a"))
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Flush(ctx))
	assert.Equal(t, 0, c.Stats().Size)
}

func TestMemoryCacheJanitorEvictsAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewMemoryCache(5 * time.Millisecond)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "short", []byte("x"), time.Millisecond))

	assert.Eventually(t, func() bool { return c.Stats().Size == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestNewSelectsBackend(t *testing.T) {
	ctx := context.Background()

	mem, err := New(ctx, "", RedisConfig{}, 0, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, mem)
	require.NoError(t, mem.Close())

	_, err = New(ctx, "memcached", RedisConfig{}, 0, nil)
	assert.ErrorContains(t, err, "unknown cache backend")
}
