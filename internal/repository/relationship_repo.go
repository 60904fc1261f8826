package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yuntuke_server/internal/model"
)

// RelationshipRepository 团长达人关系仓储接口
type RelationshipRepository interface {
	Create(ctx context.Context, rel *model.UserRelationship) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.UserRelationship, error)
	GetPair(ctx context.Context, leaderID, influencerID uuid.UUID) (*model.UserRelationship, error)
	GetActiveByInfluencer(ctx context.Context, influencerID uuid.UUID) (*model.UserRelationship, error)
	ListByLeader(ctx context.Context, leaderID uuid.UUID, status string, page Pagination) ([]model.UserRelationship, int64, error)
	CountActiveByLeader(ctx context.Context, leaderID uuid.UUID) (int64, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	CountByLeader(ctx context.Context, leaderID uuid.UUID, since time.Time) (*RelationshipCounts, error)
}

// RelationshipCounts 团长名下的关系数量
type RelationshipCounts struct {
	Active   int64
	Inactive int64
	// Recent since 之后绑定或重新绑定且仍生效的数量
	Recent int64
}

type relationshipRepo struct {
	db *gorm.DB
}

// NewRelationshipRepository 创建关系仓储
func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepo{db: db}
}

func (r *relationshipRepo) Create(ctx context.Context, rel *model.UserRelationship) error {
	return TranslateError(r.db.WithContext(ctx).Create(rel).Error)
}

func (r *relationshipRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.UserRelationship, error) {
	var rel model.UserRelationship
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rel).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &rel, nil
}

func (r *relationshipRepo) GetPair(ctx context.Context, leaderID, influencerID uuid.UUID) (*model.UserRelationship, error) {
	var rel model.UserRelationship
	err := r.db.WithContext(ctx).
		Where("leader_id = ? AND influencer_id = ?", leaderID, influencerID).
		First(&rel).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return &rel, nil
}

// GetActiveByInfluencer 达人当前生效的团长关系
func (r *relationshipRepo) GetActiveByInfluencer(ctx context.Context, influencerID uuid.UUID) (*model.UserRelationship, error) {
	var rel model.UserRelationship
	err := r.db.WithContext(ctx).
		Preload("Leader").
		Where("influencer_id = ? AND status = ?", influencerID, model.RelationshipStatusActive).
		First(&rel).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return &rel, nil
}

func (r *relationshipRepo) ListByLeader(ctx context.Context, leaderID uuid.UUID, status string, page Pagination) ([]model.UserRelationship, int64, error) {
	var rels []model.UserRelationship
	var total int64

	query := r.db.WithContext(ctx).
		Model(&model.UserRelationship{}).
		Where("leader_id = ?", leaderID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Influencer").
		Order("created_at DESC").
		Scopes(paginate(page)).
		Find(&rels).Error

	return rels, total, err
}

func (r *relationshipRepo) CountActiveByLeader(ctx context.Context, leaderID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserRelationship{}).
		Where("leader_id = ? AND status = ?", leaderID, model.RelationshipStatusActive).
		Count(&count).Error
	return count, err
}

func (r *relationshipRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return TranslateError(r.db.WithContext(ctx).
		Model(&model.UserRelationship{}).
		Where("id = ?", id).
		Updates(fields).Error)
}

func (r *relationshipRepo) CountByLeader(ctx context.Context, leaderID uuid.UUID, since time.Time) (*RelationshipCounts, error) {
	var counts RelationshipCounts
	err := r.db.WithContext(ctx).
		Model(&model.UserRelationship{}).
		Select("COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS active, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS inactive, "+
			"COALESCE(SUM(CASE WHEN status = ? AND updated_at >= ? THEN 1 ELSE 0 END), 0) AS recent",
			model.RelationshipStatusActive, model.RelationshipStatusInactive,
			model.RelationshipStatusActive, since).
		Where("leader_id = ?", leaderID).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return &counts, nil
}
