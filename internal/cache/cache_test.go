package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestCache_SetGet(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := New(client, time.Hour)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte(`{"success":true}`)))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"success":true}`, string(got))
	assert.Equal(t, time.Hour, mr.TTL("k"))
}

func TestCache_Expiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := New(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_ServerDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := New(client, time.Minute)
	mr.Close()

	_, ok, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Set(context.Background(), "k", []byte("v")))
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	c, err := Dial(context.Background(), addr, time.Minute)
	require.NoError(t, err)
	assert.NoError(t, c.Close())

	mr.Close()
	_, err = Dial(context.Background(), addr, time.Minute)
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	k := Key("lyrics", "#1DB954")
	assert.True(t, strings.HasPrefix(k, "lyricloud:wc:"))
	assert.Len(t, strings.TrimPrefix(k, "lyricloud:wc:"), 64)

	assert.Equal(t, k, Key("lyrics", "#1DB954"))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}
