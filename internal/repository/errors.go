package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres 约束错误码
const (
	UniqueViolationCode     = "23505"
	ForeignKeyViolationCode = "23503"
	CheckViolationCode      = "23514"
	NotNullViolationCode    = "23502"
)

var (
	ErrNotFound       = errors.New("记录不存在")
	ErrDuplicate      = errors.New("记录已存在")
	ErrForeignKey     = errors.New("关联数据不存在或仍被引用")
	ErrCheckViolation = errors.New("数据不满足约束")
)

// AsPgError 提取 Postgres 错误
func AsPgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// TranslateError 把驱动层的约束错误转换为仓库错误
// 兼容 Postgres（pgconn.PgError）和 SQLite（测试环境）
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	if pe, ok := AsPgError(err); ok {
		switch pe.Code {
		case UniqueViolationCode:
			return fmt.Errorf("%w: %s", ErrDuplicate, pe.ConstraintName)
		case ForeignKeyViolationCode:
			return fmt.Errorf("%w: %s", ErrForeignKey, pe.ConstraintName)
		case CheckViolationCode, NotNullViolationCode:
			return fmt.Errorf("%w: %s", ErrCheckViolation, pe.ConstraintName)
		}
		return err
	}

	// SQLite 驱动错误只能按消息识别
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %s", ErrDuplicate, msg)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %s", ErrForeignKey, msg)
	case strings.Contains(msg, "CHECK constraint failed"), strings.Contains(msg, "NOT NULL constraint failed"):
		return fmt.Errorf("%w: %s", ErrCheckViolation, msg)
	}
	return err
}

// ==================== 分页 ====================

var (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SetPageLimits 启动时按配置设置分页默认值和上限
func SetPageLimits(defaultSize, maxSize int) {
	if defaultSize > 0 {
		DefaultPageSize = defaultSize
	}
	if maxSize >= DefaultPageSize {
		MaxPageSize = maxSize
	}
}

// Pagination 分页参数
type Pagination struct {
	Page     int
	PageSize int
}

// Normalize 修正非法分页参数
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset 偏移量
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func paginate(p Pagination) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		p.Normalize()
		return db.Offset(p.Offset()).Limit(p.PageSize)
	}
}
