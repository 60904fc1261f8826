package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel 所有业务表共用的主键和时间戳
// updated_at 在 Postgres 中由 set_updated_at() 触发器维护
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate 未指定主键时生成 UUID
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// AllModels 返回全部业务模型，按外键依赖排序
// 用于测试环境 AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Product{},
		&Order{},
		&OrderItem{},
		&Collection{},
		&CollectionItem{},
		&SampleRequest{},
		&UserRelationship{},
	}
}
