package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yuntuke_server/internal/model"
)

// ==================== 接口定义 ====================

// CollectionRepository 选品集仓储接口
type CollectionRepository interface {
	Create(ctx context.Context, c *model.Collection) error
	GetByID(ctx context.Context, id uuid.UUID, withItems bool) (*model.Collection, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter CollectionFilter) ([]model.Collection, int64, error)
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	CountByLeader(ctx context.Context, leaderID uuid.UUID) (int64, error)
	StatsByLeader(ctx context.Context, leaderID uuid.UUID, since time.Time) (*CollectionStats, error)

	// 选品集商品
	AddItem(ctx context.Context, item *model.CollectionItem) error
	GetItem(ctx context.Context, collectionID, itemID uuid.UUID) (*model.CollectionItem, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, fields map[string]interface{}) error
	DeleteItem(ctx context.Context, collectionID, itemID uuid.UUID) error
	ItemExists(ctx context.Context, collectionID, productID uuid.UUID) (bool, error)
	MaxSortOrder(ctx context.Context, collectionID uuid.UUID) (int, error)
	ListItemIDs(ctx context.Context, collectionID uuid.UUID) ([]uuid.UUID, error)
	Reorder(ctx context.Context, collectionID uuid.UUID, itemIDs []uuid.UUID) error
}

// CollectionFilter 选品集过滤条件
type CollectionFilter struct {
	// ViewerID 当前用户，可见范围为公开且上架的选品集加上自己的
	ViewerID *uuid.UUID
	LeaderID *uuid.UUID
	Keyword  string
	Tag      string
	Status   string
	Pagination
}

// CollectionStats 团长选品集统计
type CollectionStats struct {
	TotalCollections  int64
	ActiveCollections int64
	PublicCollections int64
	RecentCollections int64
	TotalViews        int64
	TotalItems        int64   `gorm:"-"`
	AvgItems          float64 `gorm:"-"`
}

// ==================== 仓储实现 ====================

type collectionRepo struct {
	db *gorm.DB
}

// NewCollectionRepository 创建选品集仓储
func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepo{db: db}
}

func (r *collectionRepo) Create(ctx context.Context, c *model.Collection) error {
	return TranslateError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *collectionRepo) GetByID(ctx context.Context, id uuid.UUID, withItems bool) (*model.Collection, error) {
	var c model.Collection
	query := r.db.WithContext(ctx).Preload("Leader")
	if withItems {
		query = query.
			Preload("Items", func(db *gorm.DB) *gorm.DB {
				return db.Order("sort_order ASC, created_at ASC")
			}).
			Preload("Items.Product")
	}
	if err := query.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, TranslateError(err)
	}
	c.ItemCount = int64(len(c.Items))
	return &c, nil
}

func (r *collectionRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return TranslateError(r.db.WithContext(ctx).
		Model(&model.Collection{}).
		Where("id = ?", id).
		Updates(fields).Error)
}

// Delete 物理删除，选品集商品由外键级联删除
func (r *collectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return TranslateError(r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Collection{}).Error)
}

func (r *collectionRepo) List(ctx context.Context, filter CollectionFilter) ([]model.Collection, int64, error) {
	var collections []model.Collection
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Collection{})

	if filter.ViewerID != nil {
		query = query.Where("(is_public = ? AND status = ?) OR leader_id = ?",
			true, model.CollectionStatusActive, *filter.ViewerID)
	} else {
		query = query.Where("is_public = ? AND status = ?", true, model.CollectionStatusActive)
	}
	if filter.LeaderID != nil {
		query = query.Where("leader_id = ?", *filter.LeaderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		cond, args := keywordCondition(r.db, filter.Keyword, "name", "description")
		query = query.Where(cond, args...)
	}
	if filter.Tag != "" {
		if isPostgres(r.db) {
			query = query.Where("? = ANY(tags)", filter.Tag)
		} else {
			query = query.Where("tags LIKE ?", "%\""+filter.Tag+"\"%")
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Leader").
		Order("created_at DESC").
		Scopes(paginate(filter.Pagination)).
		Find(&collections).Error
	if err != nil {
		return nil, 0, err
	}

	if err := r.fillItemCounts(ctx, collections); err != nil {
		return nil, 0, err
	}
	return collections, total, nil
}

func (r *collectionRepo) fillItemCounts(ctx context.Context, collections []model.Collection) error {
	if len(collections) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(collections))
	for i, c := range collections {
		ids[i] = c.ID
	}

	type result struct {
		CollectionID uuid.UUID
		Count        int64
	}
	var results []result
	err := r.db.WithContext(ctx).
		Model(&model.CollectionItem{}).
		Select("collection_id, COUNT(*) AS count").
		Where("collection_id IN ?", ids).
		Group("collection_id").
		Scan(&results).Error
	if err != nil {
		return err
	}

	counts := make(map[uuid.UUID]int64, len(results))
	for _, res := range results {
		counts[res.CollectionID] = res.Count
	}
	for i := range collections {
		collections[i].ItemCount = counts[collections[i].ID]
	}
	return nil
}

func (r *collectionRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Collection{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *collectionRepo) CountByLeader(ctx context.Context, leaderID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Collection{}).
		Where("leader_id = ?", leaderID).
		Count(&count).Error
	return count, err
}

// ==================== 选品集商品 ====================

func (r *collectionRepo) AddItem(ctx context.Context, item *model.CollectionItem) error {
	return TranslateError(r.db.WithContext(ctx).Create(item).Error)
}

func (r *collectionRepo) GetItem(ctx context.Context, collectionID, itemID uuid.UUID) (*model.CollectionItem, error) {
	var item model.CollectionItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ? AND collection_id = ?", itemID, collectionID).
		First(&item).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return &item, nil
}

func (r *collectionRepo) UpdateItem(ctx context.Context, itemID uuid.UUID, fields map[string]interface{}) error {
	return TranslateError(r.db.WithContext(ctx).
		Model(&model.CollectionItem{}).
		Where("id = ?", itemID).
		Updates(fields).Error)
}

func (r *collectionRepo) DeleteItem(ctx context.Context, collectionID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND collection_id = ?", itemID, collectionID).
		Delete(&model.CollectionItem{})
	if result.Error != nil {
		return TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *collectionRepo) ItemExists(ctx context.Context, collectionID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CollectionItem{}).
		Where("collection_id = ? AND product_id = ?", collectionID, productID).
		Count(&count).Error
	return count > 0, err
}

// MaxSortOrder 当前最大排序值，空选品集返回 -1
func (r *collectionRepo) MaxSortOrder(ctx context.Context, collectionID uuid.UUID) (int, error) {
	var maxOrder int
	err := r.db.WithContext(ctx).
		Model(&model.CollectionItem{}).
		Select("COALESCE(MAX(sort_order), -1)").
		Where("collection_id = ?", collectionID).
		Scan(&maxOrder).Error
	return maxOrder, err
}

func (r *collectionRepo) ListItemIDs(ctx context.Context, collectionID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.CollectionItem{}).
		Where("collection_id = ?", collectionID).
		Order("sort_order ASC, created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// Reorder 按给定顺序重写 sort_order
func (r *collectionRepo) Reorder(ctx context.Context, collectionID uuid.UUID, itemIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range itemIDs {
			err := tx.Model(&model.CollectionItem{}).
				Where("id = ? AND collection_id = ?", id, collectionID).
				Update("sort_order", i).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// StatsByLeader 选品集数量、浏览量和商品总数
func (r *collectionRepo) StatsByLeader(ctx context.Context, leaderID uuid.UUID, since time.Time) (*CollectionStats, error) {
	var stats CollectionStats
	err := r.db.WithContext(ctx).
		Model(&model.Collection{}).
		Select("COUNT(*) AS total_collections, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS active_collections, "+
			"COALESCE(SUM(CASE WHEN is_public = ? THEN 1 ELSE 0 END), 0) AS public_collections, "+
			"COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0) AS recent_collections, "+
			"COALESCE(SUM(view_count), 0) AS total_views",
			model.CollectionStatusActive, true, since).
		Where("leader_id = ?", leaderID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&model.CollectionItem{}).
		Joins("JOIN collections ON collections.id = collection_items.collection_id").
		Where("collections.leader_id = ?", leaderID).
		Count(&stats.TotalItems).Error
	if err != nil {
		return nil, err
	}

	if stats.TotalCollections > 0 {
		stats.AvgItems = float64(stats.TotalItems) / float64(stats.TotalCollections)
	}
	return &stats, nil
}
