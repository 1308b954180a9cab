package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTLCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.SetBytes(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.SetBytes(ctx, "forever", []byte("f"), 0))

	b, ok, err := c.GetBytes(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(b))

	now = now.Add(2 * time.Minute)
	_, ok, err = c.GetBytes(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	b, ok, _ = c.GetBytes(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, "f", string(b))
}

func TestTTLCacheCopiesValue(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache()
	v := []byte("abc")
	require.NoError(t, c.SetBytes(ctx, "k", v, 0))
	v[0] = 'z'

	b, _, _ := c.GetBytes(ctx, "k")
	assert.Equal(t, "abc", string(b))
}

func TestNop(t *testing.T) {
	var c BytesCache = Nop{}
	require.NoError(t, c.SetBytes(context.Background(), "k", []byte("v"), time.Minute))
	_, ok, err := c.GetBytes(context.Background(), "k")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisKeyPrefix(t *testing.T) {
	assert.Equal(t, "pp:abc", (&RedisCache{prefix: "pp"}).key("abc"))
	assert.Equal(t, "abc", (&RedisCache{}).key("abc"))
}

func TestLayeredPromotesFromShared(t *testing.T) {
	ctx := context.Background()
	shared := NewTTLCache()
	require.NoError(t, shared.SetBytes(ctx, "k", []byte("v"), 0))

	c := NewLayered(shared, time.Minute)
	b, ok, err := c.GetBytes(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(b))
	assert.Equal(t, 1, c.mem.Len())

	_, ok, err = c.GetBytes(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLayeredWriteThrough(t *testing.T) {
	ctx := context.Background()
	shared := NewTTLCache()
	c := NewLayered(shared, time.Minute)

	require.NoError(t, c.SetBytes(ctx, "k", []byte("v"), 5*time.Minute))
	assert.Equal(t, 1, shared.Len())
	assert.Equal(t, 1, c.mem.Len())

	require.NoError(t, c.Close())
	assert.Equal(t, 0, shared.Len())
	assert.Equal(t, 0, c.mem.Len())
}
