package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== 用户角色 ====================

const (
	RoleMerchant   = "merchant"   // 商家
	RoleLeader     = "leader"     // 团长
	RoleInfluencer = "influencer" // 达人
)

// ValidRole 角色是否合法
func ValidRole(role string) bool {
	switch role {
	case RoleMerchant, RoleLeader, RoleInfluencer:
		return true
	}
	return false
}

// ==================== User 用户 ====================

// User 平台用户，通过微信小程序登录
type User struct {
	BaseModel

	WechatOpenID  string  `gorm:"size:64;not null;uniqueIndex:idx_users_wechat_openid" json:"-"`
	WechatUnionID *string `gorm:"size:64" json:"-"`

	Role      string `gorm:"size:20;not null;default:influencer;index;check:chk_users_role,role IN ('merchant','leader','influencer')" json:"role"`
	Nickname  string `gorm:"size:64;not null;default:''" json:"nickname"`
	AvatarURL string `gorm:"size:512;not null;default:''" json:"avatar_url"`
	Phone     string `gorm:"size:20;not null;default:''" json:"phone,omitempty"`

	// 自由扩展的资料字段
	// merchant: company, business_license, verified
	// leader: team_name, wechat_id, team_size
	// influencer: fans_count, category, platform_accounts, bio, location, tags
	ProfileData datatypes.JSONMap `gorm:"type:jsonb" json:"profile_data"`

	// 团长邀请码，仅 leader 拥有
	InviteCode   *string    `gorm:"size:16;uniqueIndex:idx_users_invite_code" json:"invite_code,omitempty"`
	InviteCodeAt *time.Time `json:"-"`

	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsMerchant 是否为商家
func (u *User) IsMerchant() bool { return u.Role == RoleMerchant }

// IsLeader 是否为团长
func (u *User) IsLeader() bool { return u.Role == RoleLeader }

// IsInfluencer 是否为达人
func (u *User) IsInfluencer() bool { return u.Role == RoleInfluencer }

// ProfileString 读取资料中的字符串字段
func (u *User) ProfileString(key string) string {
	if u.ProfileData == nil {
		return ""
	}
	if v, ok := u.ProfileData[key].(string); ok {
		return v
	}
	return ""
}

// ProfileInt 读取资料中的数值字段，JSON 数字反序列化为 float64
func (u *User) ProfileInt(key string) int64 {
	if u.ProfileData == nil {
		return 0
	}
	switch v := u.ProfileData[key].(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	}
	return 0
}
