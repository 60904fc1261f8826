package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ==================== 订单状态常量 ====================

const (
	OrderStatusPending   = "pending"   // 待支付
	OrderStatusPaid      = "paid"      // 已支付
	OrderStatusShipped   = "shipped"   // 已发货
	OrderStatusCompleted = "completed" // 已完成
	OrderStatusCancelled = "cancelled" // 已取消
	OrderStatusRefunded  = "refunded"  // 已退款
)

// OrderStatuses 全部订单状态，统计时按此顺序输出
var OrderStatuses = []string{
	OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
	OrderStatusCompleted, OrderStatusCancelled, OrderStatusRefunded,
}

var orderNext = map[string]map[string]bool{
	OrderStatusPending:   {OrderStatusPaid: true, OrderStatusCancelled: true},
	OrderStatusPaid:      {OrderStatusShipped: true, OrderStatusCancelled: true, OrderStatusRefunded: true},
	OrderStatusShipped:   {OrderStatusCompleted: true, OrderStatusRefunded: true},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
	OrderStatusRefunded:  {},
}

// CanOrderTransition 订单状态流转是否合法
func CanOrderTransition(from, to string) bool {
	return orderNext[from][to]
}

// ValidOrderStatus 状态值是否合法
func ValidOrderStatus(status string) bool {
	_, ok := orderNext[status]
	return ok
}

// ==================== 收货地址 ====================

// ShippingAddress 收货地址，以 JSONB 存储
type ShippingAddress struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
	City     string `json:"city"`
	District string `json:"district"`
	Detail   string `json:"detail"`
	Postcode string `json:"postcode,omitempty"`
}

// ==================== Order 订单主表 ====================

// Order 订单，同一订单只包含同一商家的商品
type Order struct {
	BaseModel

	OrderNumber string `gorm:"size:32;not null;uniqueIndex:idx_orders_order_number" json:"order_number"`

	BuyerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"buyer_id"`
	Buyer      *User     `gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE" json:"-"`
	MerchantID uuid.UUID `gorm:"type:uuid;not null;index" json:"merchant_id"`
	Merchant   *User     `gorm:"foreignKey:MerchantID;constraint:OnDelete:CASCADE" json:"-"`

	// 推广归属
	InfluencerID *uuid.UUID `gorm:"type:uuid;index" json:"influencer_id,omitempty"`
	Influencer   *User      `gorm:"foreignKey:InfluencerID;constraint:OnDelete:SET NULL" json:"-"`
	LeaderID     *uuid.UUID `gorm:"type:uuid;index" json:"leader_id,omitempty"`
	Leader       *User      `gorm:"foreignKey:LeaderID;constraint:OnDelete:SET NULL" json:"-"`

	Status string `gorm:"size:20;not null;default:pending;index;check:chk_orders_status,status IN ('pending','paid','shipped','completed','cancelled','refunded')" json:"status"`

	TotalAmount      decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"total_amount"`
	CommissionAmount decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"commission_amount"`

	ShippingAddress datatypes.JSONType[ShippingAddress] `gorm:"type:jsonb" json:"shipping_address"`
	Remark          string                              `gorm:"size:500;not null;default:''" json:"remark"`
	TrackingNumber  string                              `gorm:"size:64;not null;default:''" json:"tracking_number"`
	ShippingCompany string                              `gorm:"size:64;not null;default:''" json:"shipping_company"`

	PaidAt      *time.Time `json:"paid_at,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// IsParticipant 用户是否为订单相关方
func (o *Order) IsParticipant(userID uuid.UUID) bool {
	if o.BuyerID == userID || o.MerchantID == userID {
		return true
	}
	if o.InfluencerID != nil && *o.InfluencerID == userID {
		return true
	}
	return o.LeaderID != nil && *o.LeaderID == userID
}

// RestoresStock 进入该状态时是否需要回补库存
func RestoresStock(status string) bool {
	return status == OrderStatusCancelled || status == OrderStatusRefunded
}

// ==================== OrderItem 订单明细 ====================

// OrderItem 订单商品行，下单时快照价格和佣金比例
type OrderItem struct {
	BaseModel

	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Order     *Order    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`

	ProductTitle string `gorm:"size:200;not null" json:"product_title"`
	ProductImage string `gorm:"size:512;not null;default:''" json:"product_image"`

	UnitPrice        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	Quantity         int             `gorm:"not null;check:chk_order_items_quantity,quantity > 0" json:"quantity"`
	CommissionRate   decimal.Decimal `gorm:"type:numeric(5,4);not null;default:0" json:"commission_rate"`
	Subtotal         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	CommissionAmount decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"commission_amount"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
