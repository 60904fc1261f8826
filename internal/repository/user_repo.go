package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"yuntuke_server/internal/model"
)

// ==================== UserRepository 用户仓库 ====================

// UserRepository 用户仓库接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByOpenID(ctx context.Context, openID string) (*model.User, error)
	GetByInviteCode(ctx context.Context, code string) (*model.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	SetInviteCode(ctx context.Context, id uuid.UUID, code string) error
	ListInfluencers(ctx context.Context, filter InfluencerFilter) ([]model.User, int64, error)
}

// InfluencerFilter 达人筛选条件
type InfluencerFilter struct {
	Keyword  string
	Category string
	MinFans  int64
	Pagination
}

// ==================== 实现 ====================

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return TranslateError(r.db.WithContext(ctx).Create(user).Error)
}

// GetByID 根据 ID 获取用户
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &user, nil
}

// GetByOpenID 根据微信 openid 获取用户
func (r *userRepository) GetByOpenID(ctx context.Context, openID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("wechat_openid = ?", openID).First(&user).Error; err != nil {
		return nil, TranslateError(err)
	}
	return &user, nil
}

// GetByInviteCode 根据邀请码获取团长
func (r *userRepository) GetByInviteCode(ctx context.Context, code string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("invite_code = ? AND role = ?", code, model.RoleLeader).
		First(&user).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return &user, nil
}

// UpdateFields 更新指定字段
func (r *userRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return TranslateError(r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields).Error)
}

// UpdateLastLogin 更新最后登录时间
func (r *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login_at", time.Now()).Error
}

// SetInviteCode 设置邀请码并记录生成时间
func (r *userRepository) SetInviteCode(ctx context.Context, id uuid.UUID, code string) error {
	return TranslateError(r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"invite_code":    code,
			"invite_code_at": time.Now(),
		}).Error)
}

// ListInfluencers 达人列表
func (r *userRepository) ListInfluencers(ctx context.Context, filter InfluencerFilter) ([]model.User, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("role = ? AND is_active = ?", model.RoleInfluencer, true)

	if filter.Keyword != "" {
		cond, args := keywordCondition(r.db, filter.Keyword, "nickname")
		query = query.Where(cond, args...)
	}
	if filter.Category != "" {
		query = query.Where(datatypes.JSONQuery("profile_data").Equals(filter.Category, "category"))
	}
	if filter.MinFans > 0 {
		query = query.Where(jsonIntExpr(r.db, "profile_data", "fans_count")+" >= ?", filter.MinFans)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.
		Order("created_at DESC").
		Scopes(paginate(filter.Pagination)).
		Find(&users).Error

	return users, total, err
}
