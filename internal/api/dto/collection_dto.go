package dto

import "github.com/google/uuid"

// ==================== 选品集 ====================

// CreateCollectionRequest 创建选品集
type CreateCollectionRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	CoverImage  string   `json:"cover_image" binding:"omitempty,max=512"`
	Tags        []string `json:"tags" binding:"omitempty,max=10,dive,max=20"`
	IsPublic    *bool    `json:"is_public"` // 默认公开
}

// UpdateCollectionRequest 修改选品集
type UpdateCollectionRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	CoverImage  *string  `json:"cover_image" binding:"omitempty,max=512"`
	Tags        []string `json:"tags" binding:"omitempty,max=10,dive,max=20"`
	IsPublic    *bool    `json:"is_public"`
	Status      *string  `json:"status" binding:"omitempty,oneof=active inactive archived"`
}

// CollectionListQuery 选品集列表
type CollectionListQuery struct {
	Keyword  string `form:"keyword" binding:"omitempty,max=100"`
	Tag      string `form:"tag" binding:"omitempty,max=20"`
	LeaderID string `form:"leader_id" binding:"omitempty,uuid"`
	Mine     bool   `form:"mine"` // 只看自己创建的
	Status   string `form:"status" binding:"omitempty,oneof=active inactive archived"`
	PageQuery
}

// ==================== 选品集商品 ====================

// AddCollectionItemRequest 添加商品
type AddCollectionItemRequest struct {
	ProductID      uuid.UUID `json:"product_id" binding:"required"`
	Recommendation string    `json:"recommendation" binding:"omitempty,max=500"`
	SortOrder      *int      `json:"sort_order" binding:"omitempty,gte=0"` // 为空时追加到末尾
}

// UpdateCollectionItemRequest 修改推荐语或排序
type UpdateCollectionItemRequest struct {
	Recommendation *string `json:"recommendation" binding:"omitempty,max=500"`
	SortOrder      *int    `json:"sort_order" binding:"omitempty,gte=0"`
}

// ReorderItemsRequest 按给定顺序重排，必须包含选品集的全部商品
type ReorderItemsRequest struct {
	ItemIDs []uuid.UUID `json:"item_ids" binding:"required,min=1,max=200"`
}

// CollectionStats 团长选品集统计
type CollectionStats struct {
	Days              int     `json:"days"`
	TotalCollections  int64   `json:"total_collections"`
	ActiveCollections int64   `json:"active_collections"`
	PublicCollections int64   `json:"public_collections"`
	RecentCollections int64   `json:"recent_collections"`
	TotalViews        int64   `json:"total_views"`
	TotalItems        int64   `json:"total_items"`
	AvgItems          float64 `json:"avg_items_per_collection"`
}
