package dto

import "github.com/google/uuid"

// CreateSampleRequest 申请样品
type CreateSampleRequest struct {
	ProductID       uuid.UUID      `json:"product_id" binding:"required"`
	Quantity        int            `json:"quantity" binding:"omitempty,min=1,max=10"`
	Reason          string         `json:"reason" binding:"omitempty,max=500"`
	ShippingAddress AddressRequest `json:"shipping_address" binding:"required"`
}

// SampleListQuery 样品申请列表
type SampleListQuery struct {
	Box    string `form:"box" binding:"omitempty,oneof=sent received"` // 默认按角色：商家看收到的
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected shipped completed cancelled"`
	PageQuery
}

// UpdateSampleStatusRequest 审核/发货/取消/确认收货
type UpdateSampleStatusRequest struct {
	Status         string `json:"status" binding:"required,oneof=approved rejected shipped completed cancelled"`
	Note           string `json:"note" binding:"omitempty,max=500"`
	TrackingNumber string `json:"tracking_number" binding:"omitempty,max=64"`
}

// ==================== 统计 ====================

// SampleBoxStats 发出或收到的样品申请统计
type SampleBoxStats struct {
	Total        int64            `json:"total"`
	StatusCounts map[string]int64 `json:"status_counts"`
	Recent       int64            `json:"recent"`        // 时间窗口内新提交
	ApprovalRate float64          `json:"approval_rate"` // 已审核申请中通过的比例
}

// SampleOverview 样品申请概览
type SampleOverview struct {
	Days     int             `json:"days"`
	Sent     *SampleBoxStats `json:"sent"`
	Received *SampleBoxStats `json:"received"`
}
