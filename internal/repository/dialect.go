package repository

import (
	"strings"

	"gorm.io/gorm"
)

// ==================== 方言差异 ====================

func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// likeOp Postgres 的 LIKE 区分大小写，关键词搜索统一用 ILIKE
func likeOp(db *gorm.DB) string {
	if isPostgres(db) {
		return "ILIKE"
	}
	return "LIKE"
}

// keywordCondition 生成 "col1 ILIKE ? OR col2 ILIKE ?" 及对应参数
// columns 只接受代码内常量
func keywordCondition(db *gorm.DB, keyword string, columns ...string) (string, []interface{}) {
	op := likeOp(db)
	pattern := "%" + keyword + "%"
	parts := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		parts[i] = col + " " + op + " ?"
		args[i] = pattern
	}
	return strings.Join(parts, " OR "), args
}

// ==================== JSONB 表达式 ====================

// jsonIntExpr 生成读取 JSON 数值字段的 SQL 表达式
// key 只接受代码内常量，不能来自用户输入
func jsonIntExpr(db *gorm.DB, column, key string) string {
	if isPostgres(db) {
		return "COALESCE((" + column + "->>'" + key + "')::bigint, 0)"
	}
	return "COALESCE(CAST(json_extract(" + column + ", '$." + key + "') AS INTEGER), 0)"
}
