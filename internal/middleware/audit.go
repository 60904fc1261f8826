package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ==================== 审计上下文 ====================

// AuditContext Key
type auditContextKey struct{}

// AuditInfo 审计信息
type AuditInfo struct {
	UserID uuid.UUID
	Role   string
}

// WithAuditInfo 注入审计信息到 context
func WithAuditInfo(ctx context.Context, userID uuid.UUID, role string) context.Context {
	return context.WithValue(ctx, auditContextKey{}, &AuditInfo{
		UserID: userID,
		Role:   role,
	})
}

// GetAuditInfo 从 context 获取审计信息
func GetAuditInfo(ctx context.Context) *AuditInfo {
	if ctx == nil {
		return nil
	}
	if info, ok := ctx.Value(auditContextKey{}).(*AuditInfo); ok {
		return info
	}
	return nil
}

// ==================== Gin 中间件 ====================

// AuditContext 审计上下文中间件
// 将 JWT 中的用户信息注入到 request context，供 GORM 回调使用
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := GetUserID(c); userID != uuid.Nil {
			ctx := WithAuditInfo(c.Request.Context(), userID, GetUserRole(c))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// ==================== GORM 回调 ====================

// RegisterAuditCallbacks 注册 GORM 审计回调
// 写操作成功后记录 操作人/表/影响行数，没有操作人的系统任务记为 system
func RegisterAuditCallbacks(db *gorm.DB, log *zap.Logger) error {
	log = log.Named("audit")
	cb := db.Callback()

	if err := cb.Create().After("gorm:create").Register("audit:create", auditHook(log, "create")); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("audit:update", auditHook(log, "update")); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("audit:delete", auditHook(log, "delete"))
}

func auditHook(log *zap.Logger, op string) func(tx *gorm.DB) {
	return func(tx *gorm.DB) {
		if tx.Error != nil || tx.Statement.RowsAffected == 0 {
			return
		}

		operator := "system"
		if info := GetAuditInfo(tx.Statement.Context); info != nil {
			operator = info.UserID.String()
		}

		log.Info(op,
			zap.String("table", tx.Statement.Table),
			zap.String("operator", operator),
			zap.Int64("rows", tx.Statement.RowsAffected),
		)
	}
}
