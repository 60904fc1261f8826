package dto

import "github.com/shopspring/decimal"

// InfluencerListQuery 达人广场筛选
type InfluencerListQuery struct {
	Keyword  string `form:"keyword" binding:"omitempty,max=100"`
	Category string `form:"category" binding:"omitempty,max=32"`
	MinFans  int64  `form:"min_fans" binding:"omitempty,gte=0"`
	PageQuery
}

// InfluencerDetail 达人详情
type InfluencerDetail struct {
	PublicUser
	OrderCount      int64           `json:"order_count"`
	CompletedOrders int64           `json:"completed_orders"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	Leader          *PublicUser     `json:"leader,omitempty"`
}
