package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"yuntuke_server/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// 基础 CRUD
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)

	// 计数器
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	// 库存：扣减返回 false 表示库存不足或商品已下架
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	RestoreStock(ctx context.Context, id uuid.UUID, qty int) error
	// AdjustStock 商家手动增减库存，结果为负时返回 false
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error)

	// 统计
	CountByStatus(ctx context.Context, merchantID uuid.UUID) (map[string]int64, error)

	// 事务
	WithTx(tx *gorm.DB) ProductRepository
}

// ==================== 过滤条件 ====================

// 允许的排序字段
var productSortColumns = map[string]string{
	"created_at":      "created_at",
	"price":           "price",
	"sales_count":     "sales_count",
	"commission_rate": "commission_rate",
	"view_count":      "view_count",
}

// ProductFilter 商品过滤条件
type ProductFilter struct {
	Keyword    string
	Category   string
	Platform   string
	MerchantID *uuid.UUID
	// 为空时只查上架商品；"all" 表示除已删除外全部
	Status    string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	SortBy    string
	SortOrder string // asc / desc
	Pagination
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return TranslateError(r.db.WithContext(ctx).Create(product).Error)
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Merchant").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return &product, nil
}

func (r *productRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Product{})

	switch filter.Status {
	case "":
		query = query.Where("status = ?", model.ProductStatusActive)
	case "all":
		query = query.Where("status <> ?", model.ProductStatusDeleted)
	default:
		query = query.Where("status = ?", filter.Status)
	}

	if filter.MerchantID != nil {
		query = query.Where("merchant_id = ?", *filter.MerchantID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Platform != "" {
		query = query.Where("platform = ?", filter.Platform)
	}
	if filter.Keyword != "" {
		cond, args := keywordCondition(r.db, filter.Keyword, "title", "brand")
		query = query.Where(cond, args...)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order(productOrder(filter.SortBy, filter.SortOrder)).
		Scopes(paginate(filter.Pagination)).
		Find(&products).Error

	return products, total, err
}

func productOrder(sortBy, sortOrder string) string {
	column, ok := productSortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	if sortOrder == "asc" {
		return column + " ASC, id ASC"
	}
	return column + " DESC, id DESC"
}

func (r *productRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// DecrementStock 条件扣减，并发下由数据库行锁保证不超卖
func (r *productRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND status = ? AND stock >= ?", id, model.ProductStatusActive, qty).
		Updates(map[string]interface{}{
			"stock":       gorm.Expr("stock - ?", qty),
			"sales_count": gorm.Expr("sales_count + ?", qty),
		})
	if result.Error != nil {
		return false, TranslateError(result.Error)
	}
	return result.RowsAffected == 1, nil
}

// RestoreStock 取消/退款回补库存
func (r *productRepo) RestoreStock(ctx context.Context, id uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":       gorm.Expr("stock + ?", qty),
			"sales_count": gorm.Expr("CASE WHEN sales_count >= ? THEN sales_count - ? ELSE 0 END", qty, qty),
		}).Error
}

func (r *productRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return false, TranslateError(result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *productRepo) CountByStatus(ctx context.Context, merchantID uuid.UUID) (map[string]int64, error) {
	type result struct {
		Status string
		Count  int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("status, COUNT(*) as count").
		Where("merchant_id = ?", merchantID).
		Group("status").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{
		model.ProductStatusActive:   0,
		model.ProductStatusInactive: 0,
		model.ProductStatusDeleted:  0,
	}
	for _, res := range results {
		counts[res.Status] = res.Count
	}
	return counts, nil
}

func (r *productRepo) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepo{db: tx}
}

