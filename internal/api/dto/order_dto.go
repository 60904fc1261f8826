package dto

import "github.com/google/uuid"

// ==================== 下单 ====================

// OrderItemRequest 下单商品
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1,max=999"`
}

// CreateOrderRequest 创建订单，一个订单只包含同一商家的商品
type CreateOrderRequest struct {
	MerchantID      uuid.UUID          `json:"merchant_id" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,max=50,dive"`
	InfluencerID    *uuid.UUID         `json:"influencer_id"` // 推广达人，为空时不计佣
	ShippingAddress AddressRequest     `json:"shipping_address" binding:"required"`
	Remark          string             `json:"remark" binding:"omitempty,max=500"`
}

// ==================== 查询 ====================

// OrderListQuery 订单列表
type OrderListQuery struct {
	View   string `form:"view" binding:"omitempty,oneof=buyer merchant influencer leader"` // 为空时按角色推断
	Status string `form:"status" binding:"omitempty,oneof=pending paid shipped completed cancelled refunded"`
	PageQuery
}

// OrderStatsQuery 订单统计
type OrderStatsQuery struct {
	View string `form:"view" binding:"omitempty,oneof=buyer merchant influencer leader"`
}

// ==================== 状态变更 ====================

// UpdateOrderStatusRequest 订单状态变更
type UpdateOrderStatusRequest struct {
	Status          string `json:"status" binding:"required,oneof=paid shipped completed cancelled refunded"`
	TrackingNumber  string `json:"tracking_number" binding:"omitempty,max=64"`
	ShippingCompany string `json:"shipping_company" binding:"omitempty,max=64"`
}
