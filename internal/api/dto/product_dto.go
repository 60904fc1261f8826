package dto

import "github.com/shopspring/decimal"

// ==================== 商品查询 ====================

// ProductListQuery 商品列表查询参数
type ProductListQuery struct {
	Keyword    string   `form:"keyword" binding:"omitempty,max=100"`
	Category   string   `form:"category" binding:"omitempty,oneof=beauty fashion food home electronics health baby sports books other"`
	Platform   string   `form:"platform" binding:"omitempty,oneof=douyin kuaishou xiaohongshu wechat taobao other"`
	MerchantID string   `form:"merchant_id" binding:"omitempty,uuid"`
	Status     string   `form:"status" binding:"omitempty,oneof=active inactive all"` // 仅查询自己的商品时生效
	MinPrice   *float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice   *float64 `form:"max_price" binding:"omitempty,gte=0"`
	SortBy     string   `form:"sort_by" binding:"omitempty,oneof=created_at price sales_count commission_rate view_count"`
	SortOrder  string   `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	PageQuery
}

// ==================== 商品写入 ====================

// CreateProductRequest 发布商品
type CreateProductRequest struct {
	Title          string           `json:"title" binding:"required,max=200"`
	Description    string           `json:"description" binding:"omitempty,max=5000"`
	Category       string           `json:"category" binding:"required,oneof=beauty fashion food home electronics health baby sports books other"`
	Brand          string           `json:"brand" binding:"omitempty,max=100"`
	Platform       string           `json:"platform" binding:"omitempty,oneof=douyin kuaishou xiaohongshu wechat taobao other"`
	Price          decimal.Decimal  `json:"price" binding:"required,decimal_gt0"`
	OriginalPrice  *decimal.Decimal `json:"original_price" binding:"omitempty,decimal_gt0"`
	CommissionRate decimal.Decimal  `json:"commission_rate" binding:"gte=0,lte=1"`
	Stock          int              `json:"stock" binding:"gte=0"`
	Images         []string         `json:"images" binding:"omitempty,max=9,dive,max=512"`
	Tags           []string         `json:"tags" binding:"omitempty,max=10,dive,max=20"`
	AllowSample    bool             `json:"allow_sample"`
}

// UpdateProductRequest 修改商品，未传字段保持不变
type UpdateProductRequest struct {
	Title          *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description    *string          `json:"description" binding:"omitempty,max=5000"`
	Category       *string          `json:"category" binding:"omitempty,oneof=beauty fashion food home electronics health baby sports books other"`
	Brand          *string          `json:"brand" binding:"omitempty,max=100"`
	Platform       *string          `json:"platform" binding:"omitempty,oneof=douyin kuaishou xiaohongshu wechat taobao other"`
	Price          *decimal.Decimal `json:"price" binding:"omitempty,decimal_gt0"`
	OriginalPrice  *decimal.Decimal `json:"original_price" binding:"omitempty,decimal_gt0"`
	CommissionRate *decimal.Decimal `json:"commission_rate" binding:"omitempty,gte=0,lte=1"`
	Stock          *int             `json:"stock" binding:"omitempty,gte=0"`
	Images         []string         `json:"images" binding:"omitempty,max=9,dive,max=512"`
	Tags           []string         `json:"tags" binding:"omitempty,max=10,dive,max=20"`
	AllowSample    *bool            `json:"allow_sample"`
}

// UpdateProductStatusRequest 上下架
type UpdateProductStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// AdjustStockRequest 增减库存，正数增加，负数减少
type AdjustStockRequest struct {
	QuantityChange int `json:"quantity_change" binding:"required,min=-100000,max=100000"`
}

// CategoryOption 商品分类选项
type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
