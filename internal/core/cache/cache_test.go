package cache

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	N int `json:"n"`
}

func TestCache_DisabledLoadsEveryTime(t *testing.T) {
	c := New("", "", 0, "t:")
	assert.False(t, c.Enabled())

	var calls int32
	load := func(context.Context) (*payload, error) {
		atomic.AddInt32(&calls, 1)
		return &payload{N: 7}, nil
	}
	for i := 0; i < 3; i++ {
		v, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, 7, v.N)
	}
	assert.Equal(t, int32(3), calls)
	assert.NoError(t, c.Invalidate(context.Background(), "k"))
	assert.NoError(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
}

func TestCache_LoadErrorPropagates(t *testing.T) {
	c := New("", "", 0, "")
	boom := errors.New("boom")
	_, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, func(context.Context) (*payload, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

// skipIfNoRedis 未设置 APP_TEST_REDIS_ADDR 时跳过
func skipIfNoRedis(t *testing.T) string {
	addr := os.Getenv("APP_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping Redis tests: APP_TEST_REDIS_ADDR not set")
	}
	return addr
}

func TestCache_RedisReadThrough(t *testing.T) {
	addr := skipIfNoRedis(t)
	c := New(addr, "", 0, "test:"+t.Name()+":")
	defer func() { _ = c.Close() }()
	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))
	_ = c.Invalidate(ctx, "k")

	var calls int32
	load := func(context.Context) (*payload, error) {
		atomic.AddInt32(&calls, 1)
		return &payload{N: 42}, nil
	}
	for i := 0; i < 3; i++ {
		v, err := GetOrLoadJSON(c, ctx, "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, 42, v.N)
	}
	assert.Equal(t, int32(1), calls)

	require.NoError(t, c.Invalidate(ctx, "k"))
	_, err := GetOrLoadJSON(c, ctx, "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls)
}
