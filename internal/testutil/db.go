// Package testutil 测试辅助：内存 SQLite 数据库和常用数据构造
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"yuntuke_server/internal/model"
)

// NewTestDB 创建开启外键约束的内存数据库并迁移全部模型
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	// 内存库每个连接相互独立
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层 SQL DB 失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

// CreateUser 创建指定角色的用户
func CreateUser(t *testing.T, db *gorm.DB, role string) *model.User {
	t.Helper()

	id := uuid.New()
	user := &model.User{
		BaseModel:    model.BaseModel{ID: id},
		WechatOpenID: "openid-" + id.String(),
		Role:         role,
		Nickname:     fmt.Sprintf("%s-%s", role, id.String()[:8]),
		IsActive:     true,
		ProfileData:  map[string]interface{}{},
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user
}

// CreateProduct 创建上架商品
func CreateProduct(t *testing.T, db *gorm.DB, merchantID uuid.UUID, price string, stock int) *model.Product {
	t.Helper()

	p := &model.Product{
		MerchantID:     merchantID,
		Title:          "测试商品 " + price,
		Category:       "beauty",
		Platform:       model.PlatformDouyin,
		Price:          decimal.RequireFromString(price),
		CommissionRate: decimal.RequireFromString("0.1"),
		Stock:          stock,
		Images:         []string{"https://img.example.com/1.jpg"},
		Tags:           []string{"护肤"},
		AllowSample:    true,
		Status:         model.ProductStatusActive,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}
	return p
}
