package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ==================== 选品集状态 ====================

const (
	CollectionStatusActive   = "active"
	CollectionStatusInactive = "inactive"
	CollectionStatusArchived = "archived"
)

// ValidCollectionStatus 状态值是否合法
func ValidCollectionStatus(status string) bool {
	switch status {
	case CollectionStatusActive, CollectionStatusInactive, CollectionStatusArchived:
		return true
	}
	return false
}

// ==================== Collection 选品集 ====================

// Collection 团长维护的有序商品清单
type Collection struct {
	BaseModel

	LeaderID uuid.UUID `gorm:"type:uuid;not null;index" json:"leader_id"`
	Leader   *User     `gorm:"foreignKey:LeaderID;constraint:OnDelete:CASCADE" json:"leader,omitempty"`

	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text;not null;default:''" json:"description"`
	CoverImage  string         `gorm:"size:512;not null;default:''" json:"cover_image"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	IsPublic    bool           `gorm:"not null" json:"is_public"`
	Status      string         `gorm:"size:20;not null;default:active;check:chk_collections_status,status IN ('active','inactive','archived')" json:"status"`
	ViewCount   int            `gorm:"not null;default:0" json:"view_count"`

	Items []CollectionItem `gorm:"foreignKey:CollectionID" json:"items,omitempty"`

	// 列表查询时填充
	ItemCount int64 `gorm:"-" json:"item_count"`
}

func (Collection) TableName() string {
	return "collections"
}

// VisibleTo 用户是否可查看
func (c *Collection) VisibleTo(userID uuid.UUID) bool {
	if c.LeaderID == userID {
		return true
	}
	return c.IsPublic && c.Status == CollectionStatusActive
}

// ==================== CollectionItem 选品集商品 ====================

// CollectionItem 选品集中的一个商品及推荐语
type CollectionItem struct {
	BaseModel

	CollectionID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uq_collection_items_product,priority:1;index:idx_collection_items_sort,priority:1" json:"collection_id"`
	Collection   *Collection `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE" json:"-"`
	ProductID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uq_collection_items_product,priority:2" json:"product_id"`
	Product      *Product    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`

	SortOrder      int    `gorm:"not null;default:0;index:idx_collection_items_sort,priority:2" json:"sort_order"`
	Recommendation string `gorm:"size:500;not null;default:''" json:"recommendation"`
}

func (CollectionItem) TableName() string {
	return "collection_items"
}
