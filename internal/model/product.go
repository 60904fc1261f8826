package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ==================== 商品状态 ====================

const (
	ProductStatusActive   = "active"   // 上架
	ProductStatusInactive = "inactive" // 下架
	ProductStatusDeleted  = "deleted"  // 已删除
)

// ==================== 推广平台 ====================

const (
	PlatformDouyin      = "douyin"
	PlatformKuaishou    = "kuaishou"
	PlatformXiaohongshu = "xiaohongshu"
	PlatformWechat      = "wechat"
	PlatformTaobao      = "taobao"
	PlatformOther       = "other"
)

// ProductCategories 商品分类
var ProductCategories = []string{
	"beauty", "fashion", "food", "home", "electronics",
	"health", "baby", "sports", "books", "other",
}

// ==================== Product 商品 ====================

// Product 商家发布的商品
type Product struct {
	BaseModel

	MerchantID uuid.UUID `gorm:"type:uuid;not null;index" json:"merchant_id"`
	Merchant   *User     `gorm:"foreignKey:MerchantID;constraint:OnDelete:CASCADE" json:"merchant,omitempty"`

	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	Category    string `gorm:"size:32;not null;default:other;index" json:"category"`
	Brand       string `gorm:"size:100;not null;default:''" json:"brand"`
	Platform    string `gorm:"size:20;not null;default:other;check:chk_products_platform,platform IN ('douyin','kuaishou','xiaohongshu','wechat','taobao','other')" json:"platform"`

	Price          decimal.Decimal  `gorm:"type:numeric(10,2);not null;check:chk_products_price,price > 0" json:"price"`
	OriginalPrice  *decimal.Decimal `gorm:"type:numeric(10,2)" json:"original_price,omitempty"`
	CommissionRate decimal.Decimal  `gorm:"type:numeric(5,4);not null;default:0;check:chk_products_commission_rate,commission_rate >= 0 AND commission_rate <= 1" json:"commission_rate"`

	Stock       int            `gorm:"not null;default:0;check:chk_products_stock,stock >= 0" json:"stock"`
	Images      pq.StringArray `gorm:"type:text[]" json:"images"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	AllowSample bool           `gorm:"not null;default:false" json:"allow_sample"`

	Status     string `gorm:"size:20;not null;default:active;index;check:chk_products_status,status IN ('active','inactive','deleted')" json:"status"`
	ViewCount  int    `gorm:"not null;default:0" json:"view_count"`
	SalesCount int    `gorm:"not null;default:0" json:"sales_count"`
}

func (Product) TableName() string {
	return "products"
}

// IsAvailable 是否可下单
func (p *Product) IsAvailable() bool {
	return p.Status == ProductStatusActive
}

// CommissionFor 计算给定金额的佣金，保留两位小数
func (p *Product) CommissionFor(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(p.CommissionRate).Round(2)
}

// CoverImage 首图
func (p *Product) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ValidPlatform 平台是否合法
func ValidPlatform(platform string) bool {
	switch platform {
	case PlatformDouyin, PlatformKuaishou, PlatformXiaohongshu, PlatformWechat, PlatformTaobao, PlatformOther:
		return true
	}
	return false
}
