package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== 用户信息 ====================

// UserInfo 当前用户完整信息
type UserInfo struct {
	ID          uuid.UUID              `json:"id"`
	Role        string                 `json:"role"`
	Nickname    string                 `json:"nickname"`
	AvatarURL   string                 `json:"avatar_url"`
	Phone       string                 `json:"phone"`
	ProfileData map[string]interface{} `json:"profile_data"`
	InviteCode  string                 `json:"invite_code,omitempty"`
	IsActive    bool                   `json:"is_active"`
	LastLoginAt *time.Time             `json:"last_login_at,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// PublicUser 对外展示的用户资料，不含手机号等隐私字段
type PublicUser struct {
	ID          uuid.UUID              `json:"id"`
	Role        string                 `json:"role"`
	Nickname    string                 `json:"nickname"`
	AvatarURL   string                 `json:"avatar_url"`
	ProfileData map[string]interface{} `json:"profile_data"`
	CreatedAt   time.Time              `json:"created_at"`
}

// UpdateProfileRequest 更新个人资料，未传字段保持不变
type UpdateProfileRequest struct {
	Nickname    *string                `json:"nickname" binding:"omitempty,min=1,max=64"`
	AvatarURL   *string                `json:"avatar_url" binding:"omitempty,max=512"`
	Phone       *string                `json:"phone" binding:"omitempty,cn_phone"`
	ProfileData map[string]interface{} `json:"profile_data"` // 与已有资料合并，值为 null 表示删除该键
}

// ==================== 统计 ====================

// OrderStats 订单统计
type OrderStats struct {
	View            string           `json:"view"`
	StatusCounts    map[string]int64 `json:"status_counts"`
	TotalOrders     int64            `json:"total_orders"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	TotalCommission decimal.Decimal  `json:"total_commission"`
}

// UserStats 按角色返回不同的统计项
type UserStats struct {
	Role          string           `json:"role"`
	ProductCounts map[string]int64 `json:"product_counts,omitempty"` // merchant
	Orders        *OrderStats      `json:"orders,omitempty"`
	Samples       map[string]int64 `json:"samples,omitempty"`
	Collections   *int64           `json:"collections,omitempty"` // leader
	TeamSize      *int64           `json:"team_size,omitempty"`   // leader
	HasLeader     *bool            `json:"has_leader,omitempty"`  // influencer
}
