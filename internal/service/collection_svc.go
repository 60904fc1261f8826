package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/model"
	"yuntuke_server/internal/repository"
)

// ==================== CollectionService 选品集服务 ====================

// CollectionService 团长选品集管理
type CollectionService struct {
	collectionRepo repository.CollectionRepository
	productRepo    repository.ProductRepository
	log            *zap.Logger
}

// NewCollectionService 创建选品集服务
func NewCollectionService(collectionRepo repository.CollectionRepository, productRepo repository.ProductRepository, log *zap.Logger) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		productRepo:    productRepo,
		log:            log.Named("collection"),
	}
}

// ==================== 查询 ====================

// Stats 团长选品集统计
func (s *CollectionService) Stats(ctx context.Context, leaderID uuid.UUID, days int) (*dto.CollectionStats, error) {
	days, since := statsWindow(days)
	st, err := s.collectionRepo.StatsByLeader(ctx, leaderID, since)
	if err != nil {
		return nil, err
	}
	return &dto.CollectionStats{
		Days:              days,
		TotalCollections:  st.TotalCollections,
		ActiveCollections: st.ActiveCollections,
		PublicCollections: st.PublicCollections,
		RecentCollections: st.RecentCollections,
		TotalViews:        st.TotalViews,
		TotalItems:        st.TotalItems,
		AvgItems:          st.AvgItems,
	}, nil
}

// List 公开且上架的选品集，加上当前用户自己的
func (s *CollectionService) List(ctx context.Context, viewerID uuid.UUID, q *dto.CollectionListQuery) (*dto.PageResult[model.Collection], error) {
	filter := repository.CollectionFilter{
		Keyword: q.Keyword,
		Tag:     q.Tag,
		Pagination: repository.Pagination{
			Page:     q.Page,
			PageSize: q.PageSize,
		},
	}
	if viewerID != uuid.Nil {
		filter.ViewerID = &viewerID
	}

	switch {
	case q.Mine:
		if viewerID == uuid.Nil {
			return nil, ErrForbidden
		}
		filter.LeaderID = &viewerID
		filter.Status = q.Status
	case q.LeaderID != "":
		leaderID, err := uuid.Parse(q.LeaderID)
		if err != nil {
			return nil, ErrInvalidParams
		}
		filter.LeaderID = &leaderID
		if leaderID == viewerID {
			filter.Status = q.Status
		}
	}

	collections, total, err := s.collectionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	filter.Pagination.Normalize()
	return dto.NewPageResult(collections, total, filter.Page, filter.PageSize), nil
}

// Get 选品集详情，商品按 sort_order 排列
// 非创建者看不到已删除或下架的商品
func (s *CollectionService) Get(ctx context.Context, viewerID, id uuid.UUID) (*model.Collection, error) {
	c, err := s.collectionRepo.GetByID(ctx, id, true)
	if err != nil {
		return nil, notFound(err, ErrCollectionNotFound)
	}
	if !c.VisibleTo(viewerID) {
		return nil, ErrCollectionNotFound
	}

	if c.LeaderID != viewerID {
		items := c.Items[:0]
		for _, item := range c.Items {
			if item.Product != nil && item.Product.IsAvailable() {
				items = append(items, item)
			}
		}
		c.Items = items
		c.ItemCount = int64(len(items))

		if err := s.collectionRepo.IncrementViewCount(ctx, id); err != nil {
			s.log.Warn("累加浏览量失败", zap.String("collection_id", id.String()), zap.Error(err))
		} else {
			c.ViewCount++
		}
	}
	return c, nil
}

// ==================== 写入 ====================

// Create 创建选品集，默认公开
func (s *CollectionService) Create(ctx context.Context, leaderID uuid.UUID, req *dto.CreateCollectionRequest) (*model.Collection, error) {
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	c := &model.Collection{
		LeaderID:    leaderID,
		Name:        req.Name,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Tags:        stringArray(req.Tags),
		IsPublic:    isPublic,
		Status:      model.CollectionStatusActive,
	}
	if err := s.collectionRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info("选品集已创建", zap.String("collection_id", c.ID.String()), zap.String("leader_id", leaderID.String()))
	return s.collectionRepo.GetByID(ctx, c.ID, true)
}

// Update 修改选品集
func (s *CollectionService) Update(ctx context.Context, leaderID, id uuid.UUID, req *dto.UpdateCollectionRequest) (*model.Collection, error) {
	if _, err := s.getOwned(ctx, leaderID, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.CoverImage != nil {
		fields["cover_image"] = *req.CoverImage
	}
	if req.Tags != nil {
		fields["tags"] = stringArray(req.Tags)
	}
	if req.IsPublic != nil {
		fields["is_public"] = *req.IsPublic
	}
	if req.Status != nil {
		if !model.ValidCollectionStatus(*req.Status) {
			return nil, ErrInvalidParams
		}
		fields["status"] = *req.Status
	}

	if len(fields) > 0 {
		if err := s.collectionRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, notFound(err, ErrCollectionNotFound)
		}
	}
	return s.collectionRepo.GetByID(ctx, id, true)
}

// Delete 物理删除选品集及其商品
func (s *CollectionService) Delete(ctx context.Context, leaderID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, leaderID, id); err != nil {
		return err
	}
	if err := s.collectionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("选品集已删除", zap.String("collection_id", id.String()))
	return nil
}

// ==================== 选品集商品 ====================

// AddItem 添加商品，未指定排序时追加到末尾
func (s *CollectionService) AddItem(ctx context.Context, leaderID, collectionID uuid.UUID, req *dto.AddCollectionItemRequest) (*model.CollectionItem, error) {
	if _, err := s.getOwned(ctx, leaderID, collectionID); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	if product.Status == model.ProductStatusDeleted {
		return nil, ErrProductNotFound
	}
	if !product.IsAvailable() {
		return nil, ErrProductUnavailable
	}

	exists, err := s.collectionRepo.ItemExists(ctx, collectionID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrItemExists
	}

	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	} else {
		maxOrder, err := s.collectionRepo.MaxSortOrder(ctx, collectionID)
		if err != nil {
			return nil, err
		}
		sortOrder = maxOrder + 1
	}

	item := &model.CollectionItem{
		CollectionID:   collectionID,
		ProductID:      req.ProductID,
		SortOrder:      sortOrder,
		Recommendation: req.Recommendation,
	}
	if err := s.collectionRepo.AddItem(ctx, item); err != nil {
		// 并发添加同一商品时由唯一索引兜底
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrItemExists
		}
		return nil, err
	}
	item.Product = product
	return item, nil
}

// UpdateItem 修改推荐语或排序
func (s *CollectionService) UpdateItem(ctx context.Context, leaderID, collectionID, itemID uuid.UUID, req *dto.UpdateCollectionItemRequest) (*model.CollectionItem, error) {
	if _, err := s.getOwned(ctx, leaderID, collectionID); err != nil {
		return nil, err
	}
	if _, err := s.collectionRepo.GetItem(ctx, collectionID, itemID); err != nil {
		return nil, notFound(err, ErrItemNotFound)
	}

	fields := map[string]interface{}{}
	if req.Recommendation != nil {
		fields["recommendation"] = *req.Recommendation
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}
	if len(fields) > 0 {
		if err := s.collectionRepo.UpdateItem(ctx, itemID, fields); err != nil {
			return nil, err
		}
	}
	return s.collectionRepo.GetItem(ctx, collectionID, itemID)
}

// RemoveItem 移除商品
func (s *CollectionService) RemoveItem(ctx context.Context, leaderID, collectionID, itemID uuid.UUID) error {
	if _, err := s.getOwned(ctx, leaderID, collectionID); err != nil {
		return err
	}
	return notFound(s.collectionRepo.DeleteItem(ctx, collectionID, itemID), ErrItemNotFound)
}

// Reorder 按给定顺序重排，列表必须恰好是选品集的全部商品
func (s *CollectionService) Reorder(ctx context.Context, leaderID, collectionID uuid.UUID, itemIDs []uuid.UUID) (*model.Collection, error) {
	if _, err := s.getOwned(ctx, leaderID, collectionID); err != nil {
		return nil, err
	}

	current, err := s.collectionRepo.ListItemIDs(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if !samePermutation(current, itemIDs) {
		return nil, ErrReorderMismatch
	}

	if err := s.collectionRepo.Reorder(ctx, collectionID, itemIDs); err != nil {
		return nil, err
	}
	return s.collectionRepo.GetByID(ctx, collectionID, true)
}

// getOwned 获取当前团长自己的选品集
func (s *CollectionService) getOwned(ctx context.Context, leaderID, id uuid.UUID) (*model.Collection, error) {
	c, err := s.collectionRepo.GetByID(ctx, id, false)
	if err != nil {
		return nil, notFound(err, ErrCollectionNotFound)
	}
	if c.LeaderID != leaderID {
		// 私有选品集对他人不可见
		if !c.VisibleTo(leaderID) {
			return nil, ErrCollectionNotFound
		}
		return nil, ErrForbidden
	}
	return c, nil
}

// samePermutation a 和 b 是否包含相同且不重复的元素
func samePermutation(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[uuid.UUID]bool, len(a))
	for _, id := range a {
		seen[id] = true
	}
	for _, id := range b {
		if !seen[id] {
			return false
		}
		delete(seen, id)
	}
	return len(seen) == 0
}
