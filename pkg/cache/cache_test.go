package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type price struct {
	ID        string            `json:"id"`
	Recurring bool              `json:"recurring"`
	Metadata  map[string]string `json:"metadata"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	in := price{ID: "price_1", Metadata: map[string]string{"pages": "50"}}
	require.NoError(t, mc.Set(ctx, "p", in, time.Minute))

	var out price
	require.NoError(t, mc.Get(ctx, "p", &out))
	assert.Equal(t, in, out)

	require.NoError(t, mc.Set(ctx, "s", "plain", time.Minute))
	var s string
	require.NoError(t, mc.Get(ctx, "s", &s))
	assert.Equal(t, "plain", s)

	require.NoError(t, mc.Delete(ctx, "p"))
	assert.ErrorIs(t, mc.Get(ctx, "p", &out), ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	var s string
	assert.ErrorIs(t, mc.Get(ctx, "k", &s), ErrCacheMiss)
	ok, err := mc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "a", "1", time.Minute))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "b", "2", time.Minute))
	time.Sleep(time.Millisecond)
	var s string
	require.NoError(t, mc.Get(ctx, "a", &s))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "c", "3", time.Minute))

	assert.ErrorIs(t, mc.Get(ctx, "b", &s), ErrCacheMiss)
	assert.NoError(t, mc.Get(ctx, "a", &s))
	assert.NoError(t, mc.Get(ctx, "c", &s))
}

func TestTryLockIsExclusive(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	ok, err := mc.TryLock(ctx, "evt_1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mc.TryLock(ctx, "evt_1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mc.Unlock(ctx, "evt_1"))
	ok, err = mc.TryLock(ctx, "evt_1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLayeredCacheFillsL1FromRemote(t *testing.T) {
	ctx := context.Background()
	remote := NewMemoryCache()
	lc := NewLayeredCache(remote)
	defer lc.Close()

	require.NoError(t, remote.Set(ctx, "p", price{ID: "price_1", Recurring: true}, time.Hour))

	var out price
	require.NoError(t, lc.Get(ctx, "p", &out))
	assert.True(t, out.Recurring)

	// served from L1 once the remote copy is gone
	require.NoError(t, remote.Delete(ctx, "p"))
	var again price
	require.NoError(t, lc.Get(ctx, "p", &again))
	assert.Equal(t, "price_1", again.ID)

	require.NoError(t, lc.Delete(ctx, "p"))
	assert.ErrorIs(t, lc.Get(ctx, "p", &again), ErrCacheMiss)
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	calls := 0
	load := func(context.Context) (price, error) {
		calls++
		return price{ID: "price_1"}, nil
	}

	for i := 0; i < 3; i++ {
		p, err := GetOrLoad(ctx, mc, "price:price_1", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, "price_1", p.ID)
	}
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err := GetOrLoad(ctx, mc, "price:other", time.Minute, func(context.Context) (price, error) {
		return price{}, boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := GetOrLoad[price](ctx, nil, "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, "price_1", p.ID)
}

func TestCacheOptions(t *testing.T) {
	lc := NewLayeredCache(NewMemoryCache(), WithLayeredMemoryTTL(5*time.Second))
	defer lc.Close()
	assert.Equal(t, 5*time.Second, lc.memoryTTL)
	assert.Equal(t, 5*time.Second, lc.l1TTL(time.Hour))
	assert.Equal(t, time.Second, lc.l1TTL(time.Second))

	unset := NewLayeredCache(NewMemoryCache(), WithLayeredMemoryTTL(0))
	defer unset.Close()
	assert.Equal(t, time.Minute, unset.memoryTTL)

	s := &redisSettings{}
	for _, opt := range []RedisOption{
		WithRedisAddr("cache.internal", 6380),
		WithRedisAuth("secret", 3),
		WithRedisPoolSize(0),
		WithRedisPrefix("raptor-test"),
	} {
		opt(s)
	}
	assert.Equal(t, "cache.internal:6380", s.Addr)
	assert.Equal(t, "secret", s.Password)
	assert.Equal(t, 3, s.DB)
	assert.Zero(t, s.PoolSize)
	assert.Equal(t, "raptor-test", s.prefix)
}
