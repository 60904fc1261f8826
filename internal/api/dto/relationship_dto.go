package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BindLeaderRequest 达人通过邀请码绑定团长
type BindLeaderRequest struct {
	InviteCode string `json:"invite_code" binding:"required,alphanum,min=6,max=16"`
}

// InviteCodeResponse 团长邀请码
type InviteCodeResponse struct {
	InviteCode  string     `json:"invite_code"`
	RefreshedAt *time.Time `json:"refreshed_at,omitempty"`
	TeamSize    int64      `json:"team_size"`
}

// TeamQuery 团队成员列表
type TeamQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
	PageQuery
}

// TeamMember 团队成员
type TeamMember struct {
	RelationshipID uuid.UUID   `json:"relationship_id"`
	Status         string      `json:"status"`
	BoundAt        time.Time   `json:"bound_at"`
	Influencer     *PublicUser `json:"influencer"`
}

// LeaderInfo 达人当前的团长
type LeaderInfo struct {
	RelationshipID uuid.UUID   `json:"relationship_id"`
	BoundAt        time.Time   `json:"bound_at"`
	Leader         *PublicUser `json:"leader"`
}

// RelationshipStats 团长团队统计
type RelationshipStats struct {
	Days            int             `json:"days"`
	ActiveMembers   int64           `json:"active_members"`
	InactiveMembers int64           `json:"inactive_members"`
	NewMembers      int64           `json:"new_members"` // 时间窗口内绑定
	TeamOrders      int64           `json:"team_orders"`
	TeamGMV         decimal.Decimal `json:"team_gmv"`
	TeamCommission  decimal.Decimal `json:"team_commission"`
}
