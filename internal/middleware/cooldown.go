package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"yuntuke_server/pkg/cache"
)

// ==================== CooldownLimiter 操作冷却 ====================

// CooldownLimiter 按用户 + 操作维度的冷却限制
// 冷却状态存在 cache 中，配置 Redis 后多实例共享
type CooldownLimiter struct {
	store cache.Cache
}

// NewCooldownLimiter 创建冷却限制器
func NewCooldownLimiter(store cache.Cache) *CooldownLimiter {
	return &CooldownLimiter{store: store}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查并占用冷却窗口
// key: 限流键，如 "cooldown:invite_refresh:<user_id>"
func (l *CooldownLimiter) Check(ctx context.Context, key string, interval time.Duration) (CheckResult, error) {
	ok, err := l.store.SetNX(ctx, key, time.Now().Format(time.RFC3339), interval)
	if err != nil {
		return CheckResult{}, err
	}
	if ok {
		return CheckResult{Allowed: true}, nil
	}

	ttl, err := l.store.TTL(ctx, key)
	if err != nil {
		// 刚好过期
		return CheckResult{Allowed: true}, nil
	}
	if ttl < 0 {
		ttl = interval
	}
	return CheckResult{Allowed: false, RetryAfter: ttl}, nil
}

// Reset 释放冷却，业务失败时调用，避免用户白白等待
func (l *CooldownLimiter) Reset(ctx context.Context, key string) error {
	return l.store.Delete(ctx, key)
}

// ==================== Key 生成工具 ====================

// Action 受冷却限制的操作
type Action string

const (
	ActionInviteRefresh Action = "invite_refresh"
	ActionSampleCreate  Action = "sample_create"
)

// CooldownKey 生成用户级冷却 Key
func CooldownKey(action Action, userID uuid.UUID) string {
	return fmt.Sprintf("cooldown:%s:%s", action, userID)
}

// DefaultIntervals 默认冷却间隔
var DefaultIntervals = map[Action]time.Duration{
	ActionInviteRefresh: time.Minute,
	ActionSampleCreate:  10 * time.Second,
}

// GetInterval 获取操作的默认间隔
func GetInterval(action Action) time.Duration {
	if interval, ok := DefaultIntervals[action]; ok {
		return interval
	}
	return 10 * time.Second
}
