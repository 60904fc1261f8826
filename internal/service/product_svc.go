package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/model"
	"yuntuke_server/internal/repository"
)

// ==================== ProductService 商品服务 ====================

// ProductService 商品管理
type ProductService struct {
	productRepo repository.ProductRepository
	log         *zap.Logger
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, log *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		log:         log.Named("product"),
	}
}

// ==================== 查询 ====================

// List 商品列表
// 只有查询自己的商品时才能看到下架商品
func (s *ProductService) List(ctx context.Context, viewerID uuid.UUID, q *dto.ProductListQuery) (*dto.PageResult[model.Product], error) {
	filter := repository.ProductFilter{
		Keyword:   q.Keyword,
		Category:  q.Category,
		Platform:  q.Platform,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Pagination: repository.Pagination{
			Page:     q.Page,
			PageSize: q.PageSize,
		},
	}

	if q.MerchantID != "" {
		merchantID, err := uuid.Parse(q.MerchantID)
		if err != nil {
			return nil, ErrInvalidParams
		}
		filter.MerchantID = &merchantID
		if merchantID == viewerID && viewerID != uuid.Nil {
			filter.Status = q.Status
		}
	}

	if q.MinPrice != nil {
		v := decimal.NewFromFloat(*q.MinPrice)
		filter.MinPrice = &v
	}
	if q.MaxPrice != nil {
		v := decimal.NewFromFloat(*q.MaxPrice)
		filter.MaxPrice = &v
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, ErrInvalidPriceRange
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	filter.Pagination.Normalize()
	return dto.NewPageResult(products, total, filter.Page, filter.PageSize), nil
}

// Get 商品详情，非商家本人查看时累加浏览量
func (s *ProductService) Get(ctx context.Context, viewerID, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}

	isOwner := product.MerchantID == viewerID
	switch product.Status {
	case model.ProductStatusDeleted:
		return nil, ErrProductNotFound
	case model.ProductStatusInactive:
		if !isOwner {
			return nil, ErrProductNotFound
		}
	}

	if !isOwner {
		if err := s.productRepo.IncrementViewCount(ctx, id); err != nil {
			s.log.Warn("累加浏览量失败", zap.String("product_id", id.String()), zap.Error(err))
		} else {
			product.ViewCount++
		}
	}
	return product, nil
}

// Stats 商家商品数量统计
func (s *ProductService) Stats(ctx context.Context, merchantID uuid.UUID) (map[string]int64, error) {
	return s.productRepo.CountByStatus(ctx, merchantID)
}

// ==================== 写入 ====================

// Create 发布商品
func (s *ProductService) Create(ctx context.Context, merchantID uuid.UUID, req *dto.CreateProductRequest) (*model.Product, error) {
	platform := req.Platform
	if platform == "" {
		platform = model.PlatformOther
	}
	if !model.ValidPlatform(platform) {
		return nil, ErrInvalidPlatform
	}
	price, err := roundPrice("price", req.Price)
	if err != nil {
		return nil, err
	}
	originalPrice, err := roundPricePtr("original_price", req.OriginalPrice)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		MerchantID:     merchantID,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Brand:          req.Brand,
		Platform:       platform,
		Price:          price,
		OriginalPrice:  originalPrice,
		CommissionRate: req.CommissionRate,
		Stock:          req.Stock,
		Images:         stringArray(req.Images),
		Tags:           stringArray(req.Tags),
		AllowSample:    req.AllowSample,
		Status:         model.ProductStatusActive,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.log.Info("商品已发布", zap.String("product_id", product.ID.String()), zap.String("merchant_id", merchantID.String()))
	return product, nil
}

// Update 修改商品，未传字段保持不变
func (s *ProductService) Update(ctx context.Context, merchantID, id uuid.UUID, req *dto.UpdateProductRequest) (*model.Product, error) {
	if _, err := s.getOwned(ctx, merchantID, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Brand != nil {
		fields["brand"] = *req.Brand
	}
	if req.Platform != nil {
		if !model.ValidPlatform(*req.Platform) {
			return nil, ErrInvalidPlatform
		}
		fields["platform"] = *req.Platform
	}
	if req.Price != nil {
		price, err := roundPrice("price", *req.Price)
		if err != nil {
			return nil, err
		}
		fields["price"] = price
	}
	if req.OriginalPrice != nil {
		price, err := roundPrice("original_price", *req.OriginalPrice)
		if err != nil {
			return nil, err
		}
		fields["original_price"] = price
	}
	if req.CommissionRate != nil {
		fields["commission_rate"] = *req.CommissionRate
	}
	if req.Stock != nil {
		fields["stock"] = *req.Stock
	}
	if req.Images != nil {
		fields["images"] = stringArray(req.Images)
	}
	if req.Tags != nil {
		fields["tags"] = stringArray(req.Tags)
	}
	if req.AllowSample != nil {
		fields["allow_sample"] = *req.AllowSample
	}

	if len(fields) > 0 {
		if err := s.productRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, notFound(err, ErrProductNotFound)
		}
	}
	return s.productRepo.GetByID(ctx, id)
}

// UpdateStatus 上下架
func (s *ProductService) UpdateStatus(ctx context.Context, merchantID, id uuid.UUID, status string) (*model.Product, error) {
	product, err := s.getOwned(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}
	if status != model.ProductStatusActive && status != model.ProductStatusInactive {
		return nil, ErrInvalidParams
	}
	if product.Status == status {
		return product, nil
	}

	if err := s.productRepo.UpdateFields(ctx, id, map[string]interface{}{"status": status}); err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	product.Status = status
	return product, nil
}

// AdjustStock 商家手动增减库存，delta 为负时不能扣到 0 以下
func (s *ProductService) AdjustStock(ctx context.Context, merchantID, id uuid.UUID, delta int) (*model.Product, error) {
	product, err := s.getOwned(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.productRepo.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientStock.WithMessage("库存不足，当前库存 %d", product.Stock)
	}

	s.log.Info("库存已调整",
		zap.String("product_id", id.String()),
		zap.Int("delta", delta),
	)
	return s.productRepo.GetByID(ctx, id)
}

// Categories 商品分类列表
func (s *ProductService) Categories() []dto.CategoryOption {
	options := make([]dto.CategoryOption, 0, len(model.ProductCategories))
	for _, c := range model.ProductCategories {
		options = append(options, dto.CategoryOption{Value: c, Label: categoryLabels[c]})
	}
	return options
}

var categoryLabels = map[string]string{
	"beauty":      "美妆护肤",
	"fashion":     "服装配饰",
	"food":        "食品饮料",
	"home":        "家居生活",
	"electronics": "数码电器",
	"health":      "健康保健",
	"baby":        "母婴用品",
	"sports":      "运动户外",
	"books":       "图书文娱",
	"other":       "其他",
}

// Delete 软删除，已有订单和选品集引用保持不变
func (s *ProductService) Delete(ctx context.Context, merchantID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, merchantID, id); err != nil {
		return err
	}
	err := s.productRepo.UpdateFields(ctx, id, map[string]interface{}{"status": model.ProductStatusDeleted})
	return notFound(err, ErrProductNotFound)
}

// getOwned 获取当前商家的未删除商品
func (s *ProductService) getOwned(ctx context.Context, merchantID, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	if product.Status == model.ProductStatusDeleted {
		return nil, ErrProductNotFound
	}
	if product.MerchantID != merchantID {
		return nil, ErrForbidden
	}
	return product, nil
}

// ==================== 辅助函数 ====================

func stringArray(in []string) pq.StringArray {
	if in == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(in)
}

// roundPrice 保留两位小数，舍入后为 0 的价格视为非法
func roundPrice(field string, d decimal.Decimal) (decimal.Decimal, error) {
	v := d.Round(2)
	if !v.IsPositive() {
		return decimal.Zero, ErrInvalidPrice.WithMessage("%s 保留两位小数后必须大于 0", field)
	}
	return v, nil
}

func roundPricePtr(field string, d *decimal.Decimal) (*decimal.Decimal, error) {
	if d == nil {
		return nil, nil
	}
	v, err := roundPrice(field, *d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
