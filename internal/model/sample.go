package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ==================== 样品申请状态 ====================

const (
	SampleStatusPending   = "pending"   // 待审核
	SampleStatusApproved  = "approved"  // 已通过
	SampleStatusRejected  = "rejected"  // 已拒绝
	SampleStatusShipped   = "shipped"   // 已寄出
	SampleStatusCompleted = "completed" // 已完成
	SampleStatusCancelled = "cancelled" // 已取消
)

// SampleStatuses 全部样品状态
var SampleStatuses = []string{
	SampleStatusPending, SampleStatusApproved, SampleStatusRejected,
	SampleStatusShipped, SampleStatusCompleted, SampleStatusCancelled,
}

var sampleNext = map[string]map[string]bool{
	SampleStatusPending:   {SampleStatusApproved: true, SampleStatusRejected: true, SampleStatusCancelled: true},
	SampleStatusApproved:  {SampleStatusShipped: true, SampleStatusCompleted: true, SampleStatusCancelled: true},
	SampleStatusShipped:   {SampleStatusCompleted: true},
	SampleStatusRejected:  {},
	SampleStatusCompleted: {},
	SampleStatusCancelled: {},
}

// CanSampleTransition 样品状态流转是否合法
func CanSampleTransition(from, to string) bool {
	return sampleNext[from][to]
}

// ValidSampleStatus 状态值是否合法
func ValidSampleStatus(status string) bool {
	_, ok := sampleNext[status]
	return ok
}

// ==================== SampleRequest 样品申请 ====================

// SampleRequest 达人/团长向商家申请样品
type SampleRequest struct {
	BaseModel

	SampleNumber string `gorm:"size:40;not null;uniqueIndex:idx_sample_requests_number" json:"sample_number"`

	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product     *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index" json:"requester_id"`
	Requester   *User     `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE" json:"requester,omitempty"`
	// 接收方为商品所属商家
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Recipient   *User     `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`

	Quantity        int                                 `gorm:"not null;default:1;check:chk_sample_requests_quantity,quantity > 0" json:"quantity"`
	Reason          string                              `gorm:"size:500;not null;default:''" json:"reason"`
	ShippingAddress datatypes.JSONType[ShippingAddress] `gorm:"type:jsonb" json:"shipping_address"`
	ContactName     string                              `gorm:"size:64;not null;default:''" json:"contact_name"`
	ContactPhone    string                              `gorm:"size:20;not null;default:''" json:"contact_phone"`

	Status         string `gorm:"size:20;not null;default:pending;index;check:chk_sample_requests_status,status IN ('pending','approved','rejected','shipped','completed','cancelled')" json:"status"`
	ReviewNote     string `gorm:"size:500;not null;default:''" json:"review_note"`
	TrackingNumber string `gorm:"size:64;not null;default:''" json:"tracking_number"`

	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (SampleRequest) TableName() string {
	return "sample_requests"
}

