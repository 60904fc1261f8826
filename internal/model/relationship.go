package model

import "github.com/google/uuid"

const (
	RelationshipStatusActive   = "active"
	RelationshipStatusInactive = "inactive"
)

// UserRelationship 团长与达人的绑定关系
// 同一对用户只有一条记录，一个达人同时只能有一个生效的团长
type UserRelationship struct {
	BaseModel

	LeaderID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_relationships_pair,priority:1;index" json:"leader_id"`
	Leader       *User     `gorm:"foreignKey:LeaderID;constraint:OnDelete:CASCADE" json:"leader,omitempty"`
	InfluencerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_relationships_pair,priority:2;uniqueIndex:idx_user_relationships_active_influencer,where:status = 'active'" json:"influencer_id"`
	Influencer   *User     `gorm:"foreignKey:InfluencerID;constraint:OnDelete:CASCADE" json:"influencer,omitempty"`

	InviteCode string `gorm:"size:16;not null;default:''" json:"invite_code"`
	Status     string `gorm:"size:20;not null;default:active;check:chk_user_relationships_status,status IN ('active','inactive')" json:"status"`
}

func (UserRelationship) TableName() string {
	return "user_relationships"
}

// Involves 用户是否为关系一方
func (r *UserRelationship) Involves(userID uuid.UUID) bool {
	return r.LeaderID == userID || r.InfluencerID == userID
}
