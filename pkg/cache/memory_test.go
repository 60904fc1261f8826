package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSetDelete(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.True(t, errors.Is(err, ErrMiss))
}

func TestMemory_Expiration(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", 10*time.Second))

	ttl, err := c.TTL(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, ttl)

	now = now.Add(11 * time.Second)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	_, err = c.TTL(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func countItems(m *Memory) int {
	n := 0
	m.items.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// 只写不读的过期 key 也会被回收
func TestMemory_SweepsWriteOnlyKeys(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	now := time.Now()
	c.now = func() time.Time { return now }

	for i := 0; i < 5000; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("wechat:code:%d", i), "openid", time.Millisecond))
	}

	now = now.Add(sweepInterval)
	require.NoError(t, c.Set(ctx, "fresh", "v", time.Minute))
	assert.Equal(t, 1, countItems(c))

	v, err := c.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

// 写入频繁时不必等到时间间隔
func TestMemory_SweepsByWriteCount(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	now := time.Now()
	c.now = func() time.Time { return now }

	for i := 0; i < 2000; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("cooldown:%d", i), "1", time.Millisecond))
	}
	now = now.Add(time.Second)
	for i := 0; i < sweepWrites; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("live:%d", i), "1", time.Hour))
	}

	assert.LessOrEqual(t, countItems(c), sweepWrites)
	_, err := c.Get(ctx, "live:0")
	assert.NoError(t, err)
}

func TestMemory_NoTTL(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	ttl, err := c.TTL(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)
}

func TestMemory_SetNXConcurrent(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := c.SetNX(ctx, "lock", "1", time.Minute)
			if err == nil && ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestNew_DefaultsToMemory(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	_, ok := c.(*Memory)
	assert.True(t, ok)

	_, err = New("not-a-url")
	assert.Error(t, err)
}
