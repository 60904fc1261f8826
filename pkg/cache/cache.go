package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss 缓存未命中
var ErrMiss = errors.New("cache: key not found")

// Cache 键值缓存
// 微信 code 换取结果、邀请码冷却等短期数据都放在这里
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// SetNX 仅当 key 不存在时写入，返回是否写入成功
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// TTL 返回剩余有效期，key 不存在时返回 ErrMiss
	TTL(ctx context.Context, key string) (time.Duration, error)
	Delete(ctx context.Context, key string) error
	// Ping 检查后端是否可用
	Ping(ctx context.Context) error
	Close() error
}

// New 根据 redisURL 选择实现，为空时使用进程内缓存
func New(redisURL string) (Cache, error) {
	if redisURL == "" {
		return NewMemory(), nil
	}
	return NewRedis(redisURL)
}
