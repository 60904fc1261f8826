package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ==================== 冷却中间件 ====================

// Cooldown 用户级冷却中间件，需放在 JWTAuth 之后
// 请求失败（状态码 >= 400）时释放冷却
//
// 使用示例:
//
//	rel.POST("/invite-code/refresh",
//	    middleware.Cooldown(limiter, middleware.ActionInviteRefresh, 0, log),
//	    relCtl.RefreshInviteCode,
//	)
//
// 参数:
//   - action: 操作类型
//   - interval: 冷却间隔，0 表示使用默认值
func Cooldown(limiter *CooldownLimiter, action Action, interval time.Duration, log *zap.Logger) gin.HandlerFunc {
	if interval == 0 {
		interval = GetInterval(action)
	}

	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == uuid.Nil {
			abortUnauthorized(c, "未登录")
			return
		}

		key := CooldownKey(action, userID)
		result, err := limiter.Check(c.Request.Context(), key, interval)
		if err != nil {
			// 缓存不可用时放行
			log.Warn("冷却检查失败", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds() + 0.5)
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", fmt.Sprint(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":       429,
				"error_code": "cooldown",
				"message":    formatRetryMessage(result.RetryAfter),
				"data": gin.H{
					"retry_after": retryAfter,
					"action":      action,
				},
			})
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			_ = limiter.Reset(c.Request.Context(), key)
		}
	}
}

// ==================== 辅助函数 ====================

// formatRetryMessage 格式化重试提示信息
func formatRetryMessage(d time.Duration) string {
	seconds := int(d.Seconds() + 0.5)
	if seconds < 1 {
		seconds = 1
	}

	if seconds < 60 {
		return fmt.Sprintf("操作过于频繁，请 %d 秒后重试", seconds)
	}

	minutes := seconds / 60
	remainingSeconds := seconds % 60

	if remainingSeconds == 0 {
		return fmt.Sprintf("操作过于频繁，请 %d 分钟后重试", minutes)
	}

	return fmt.Sprintf("操作过于频繁，请 %d 分 %d 秒后重试", minutes, remainingSeconds)
}
