package cache

import (
	"context"
	"sync"
	"time"
)

// cacheItem 内部结构，包含值和过期时间
type cacheItem struct {
	value      string
	expiration time.Time
}

func (i cacheItem) expired(now time.Time) bool {
	return !i.expiration.IsZero() && now.After(i.expiration)
}

// 写入触发的过期清理：距上次清理超过 sweepInterval 或累计写入 sweepWrites 次
const (
	sweepInterval = time.Minute
	sweepWrites   = 1024
)

// Memory 进程内缓存，使用 sync.Map 保证并发安全
// 多实例部署时应配置 REDIS_URL
type Memory struct {
	items sync.Map
	mu    sync.Mutex // SetNX 需要原子判断
	now   func() time.Time

	sweepMu   sync.Mutex
	writes    int
	lastSweep time.Time
}

// NewMemory 创建进程内缓存
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) load(key string) (cacheItem, bool) {
	val, ok := m.items.Load(key)
	if !ok {
		return cacheItem{}, false
	}
	item := val.(cacheItem)
	if item.expired(m.now()) {
		m.items.Delete(key) // 懒删除
		return cacheItem{}, false
	}
	return item, true
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	item, ok := m.load(key)
	if !ok {
		return "", ErrMiss
	}
	return item.value, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	now := m.now()
	item := cacheItem{value: value}
	if ttl > 0 {
		item.expiration = now.Add(ttl)
	}
	m.items.Store(key, item)
	m.maybeSweep(now)
	return nil
}

// maybeSweep 只写不读的 key (微信 code、冷却标记) 靠这里回收
func (m *Memory) maybeSweep(now time.Time) {
	m.sweepMu.Lock()
	m.writes++
	due := m.writes >= sweepWrites || now.Sub(m.lastSweep) >= sweepInterval
	if due {
		m.writes = 0
		m.lastSweep = now
	}
	m.sweepMu.Unlock()

	if due {
		m.sweep(now)
	}
}

// sweep 删除所有已过期条目，返回删除数量
func (m *Memory) sweep(now time.Time) int {
	removed := 0
	m.items.Range(func(key, val any) bool {
		if val.(cacheItem).expired(now) && m.items.CompareAndDelete(key, val) {
			removed++
		}
		return true
	})
	return removed
}

func (m *Memory) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.load(key); ok {
		return false, nil
	}
	return true, m.Set(ctx, key, value, ttl)
}

func (m *Memory) TTL(_ context.Context, key string) (time.Duration, error) {
	item, ok := m.load(key)
	if !ok {
		return 0, ErrMiss
	}
	if item.expiration.IsZero() {
		return -1, nil
	}
	return item.expiration.Sub(m.now()), nil
}

// Delete 删除缓存 (用完即焚)
func (m *Memory) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
