package cachex

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

func TestLocalJobCache_SetGetDel(t *testing.T) {
	c, err := NewLocalJobCache(0, 0)
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "job:1", `{"id":"1"}`, 0))
	v, ok, err := c.Get(ctx, "job:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"1"}`, v)

	require.NoError(t, c.Del(ctx, "job:1"))
	_, ok, _ = c.Get(ctx, "job:1")
	assert.False(t, ok)
}

func TestLocalJobCache_Expire(t *testing.T) {
	c, err := NewLocalJobCache(10, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", "v", 50*time.Millisecond))
	assert.Eventually(t, func() bool {
		_, ok, _ := c.Get(ctx, "short")
		return !ok
	}, 2*time.Second, 20*time.Millisecond)
}

func TestLocalJobCache_CancelledContext(t *testing.T) {
	c, err := NewLocalJobCache(10, time.Hour)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = c.Get(ctx, "k")
	assert.True(t, errorx.Is(err, errorx.CodeLockTimeout))
	assert.True(t, errorx.Is(c.Set(ctx, "k", "v", 0), errorx.CodeLockTimeout))
	assert.True(t, errorx.Is(c.Del(ctx, "k"), errorx.CodeLockTimeout))
	assert.False(t, c.IsOK(ctx))
	assert.True(t, c.IsOK(context.Background()))
}

func TestLocalJobCache_Concurrent(t *testing.T) {
	c, err := NewLocalJobCache(1000, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, "shared", "v", 0)
			_, _, _ = c.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	v, ok, err := c.Get(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
