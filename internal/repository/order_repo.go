package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"yuntuke_server/internal/model"
)

// ==================== 接口定义 ====================

// OrderRepository 订单仓储接口
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error)

	// UpdateStatus 仅当当前状态为 from 时更新，返回 false 表示状态已被并发修改
	UpdateStatus(ctx context.Context, id uuid.UUID, from string, fields map[string]interface{}) (bool, error)

	// 定时任务
	ListExpiredPending(ctx context.Context, before time.Time, limit int) ([]model.Order, error)

	// 统计
	Stats(ctx context.Context, view string, userID uuid.UUID) (*OrderStats, error)

	// 事务
	WithTx(tx *gorm.DB) OrderRepository
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ==================== 过滤条件 ====================

// 订单视角
const (
	OrderViewBuyer      = "buyer"
	OrderViewMerchant   = "merchant"
	OrderViewInfluencer = "influencer"
	OrderViewLeader     = "leader"
)

var orderViewColumns = map[string]string{
	OrderViewBuyer:      "buyer_id",
	OrderViewMerchant:   "merchant_id",
	OrderViewInfluencer: "influencer_id",
	OrderViewLeader:     "leader_id",
}

// ValidOrderView 视角是否合法
func ValidOrderView(view string) bool {
	_, ok := orderViewColumns[view]
	return ok
}

// OrderFilter 订单过滤条件
type OrderFilter struct {
	UserID uuid.UUID
	View   string
	Status string
	Pagination
}

// OrderStats 订单统计
type OrderStats struct {
	StatusCounts    map[string]int64 `json:"status_counts"`
	TotalOrders     int64            `json:"total_orders"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	TotalCommission decimal.Decimal  `json:"total_commission"`
}

// ==================== 仓储实现 ====================

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

// Create 创建订单及明细
func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	return TranslateError(r.db.WithContext(ctx).Create(order).Error)
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	column, ok := orderViewColumns[filter.View]
	if !ok {
		column = orderViewColumns[OrderViewBuyer]
	}

	query := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where(column+" = ?", filter.UserID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Items").
		Order("created_at DESC").
		Scopes(paginate(filter.Pagination)).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from string, fields map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	if result.Error != nil {
		return false, TranslateError(result.Error)
	}
	return result.RowsAffected == 1, nil
}

// ListExpiredPending 超时未支付订单
func (r *orderRepo) ListExpiredPending(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ? AND created_at < ?", model.OrderStatusPending, before).
		Order("created_at ASC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

// Stats 按视角统计订单数量、成交额和佣金
// 成交额和佣金只计算已支付及之后未退款的订单
func (r *orderRepo) Stats(ctx context.Context, view string, userID uuid.UUID) (*OrderStats, error) {
	column, ok := orderViewColumns[view]
	if !ok {
		column = orderViewColumns[OrderViewBuyer]
	}

	type row struct {
		Status     string
		Count      int64
		Amount     decimal.Decimal
		Commission decimal.Decimal
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS amount, COALESCE(SUM(commission_amount), 0) AS commission").
		Where(column+" = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &OrderStats{
		StatusCounts:    make(map[string]int64, len(model.OrderStatuses)),
		TotalAmount:     decimal.Zero,
		TotalCommission: decimal.Zero,
	}
	for _, s := range model.OrderStatuses {
		stats.StatusCounts[s] = 0
	}
	for _, rw := range rows {
		stats.StatusCounts[rw.Status] = rw.Count
		stats.TotalOrders += rw.Count
		switch rw.Status {
		case model.OrderStatusPaid, model.OrderStatusShipped, model.OrderStatusCompleted:
			stats.TotalAmount = stats.TotalAmount.Add(rw.Amount)
			stats.TotalCommission = stats.TotalCommission.Add(rw.Commission)
		}
	}
	return stats, nil
}

func (r *orderRepo) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepo{db: tx}
}

func (r *orderRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
