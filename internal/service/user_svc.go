package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/model"
	"yuntuke_server/internal/repository"
)

// ==================== UserService 用户服务 ====================

// UserService 用户资料与统计
type UserService struct {
	userRepo       repository.UserRepository
	productRepo    repository.ProductRepository
	orderRepo      repository.OrderRepository
	collectionRepo repository.CollectionRepository
	sampleRepo     repository.SampleRepository
	relRepo        repository.RelationshipRepository
}

// NewUserService 创建用户服务
func NewUserService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	collectionRepo repository.CollectionRepository,
	sampleRepo repository.SampleRepository,
	relRepo repository.RelationshipRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		productRepo:    productRepo,
		orderRepo:      orderRepo,
		collectionRepo: collectionRepo,
		sampleRepo:     sampleRepo,
		relRepo:        relRepo,
	}
}

// GetProfile 获取当前用户信息
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return toUserInfo(user), nil
}

// UpdateProfile 更新个人资料
// profile_data 与已有内容合并，值为 null 的键被删除
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	fields := map[string]interface{}{}
	if req.Nickname != nil {
		fields["nickname"] = *req.Nickname
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.ProfileData != nil {
		merged := datatypes.JSONMap{}
		for k, v := range user.ProfileData {
			merged[k] = v
		}
		for k, v := range req.ProfileData {
			if v == nil {
				delete(merged, k)
				continue
			}
			merged[k] = v
		}
		fields["profile_data"] = merged
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
			return nil, notFound(err, ErrUserNotFound)
		}
	}
	return s.GetProfile(ctx, userID)
}

// GetPublicProfile 查看其他用户公开资料
func (s *UserService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*dto.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if !user.IsActive {
		return nil, ErrUserNotFound
	}
	return toPublicUser(user), nil
}

// ==================== 统计 ====================

// GetStats 按角色返回统计
func (s *UserService) GetStats(ctx context.Context, userID uuid.UUID) (*dto.UserStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	stats := &dto.UserStats{Role: user.Role}
	view := defaultOrderView(user.Role)
	orderStats, err := s.orderRepo.Stats(ctx, view, userID)
	if err != nil {
		return nil, err
	}
	stats.Orders = toOrderStats(view, orderStats)

	box := repository.SampleBoxSent
	if user.IsMerchant() {
		box = repository.SampleBoxReceived
	}
	if stats.Samples, err = s.sampleRepo.CountByStatus(ctx, box, userID); err != nil {
		return nil, err
	}

	switch user.Role {
	case model.RoleMerchant:
		if stats.ProductCounts, err = s.productRepo.CountByStatus(ctx, userID); err != nil {
			return nil, err
		}
	case model.RoleLeader:
		collections, err := s.collectionRepo.CountByLeader(ctx, userID)
		if err != nil {
			return nil, err
		}
		teamSize, err := s.relRepo.CountActiveByLeader(ctx, userID)
		if err != nil {
			return nil, err
		}
		stats.Collections = &collections
		stats.TeamSize = &teamSize
	case model.RoleInfluencer:
		_, err := s.relRepo.GetActiveByInfluencer(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		hasLeader := err == nil
		stats.HasLeader = &hasLeader
	}

	return stats, nil
}

// ==================== 转换 ====================

func toUserInfo(u *model.User) *dto.UserInfo {
	info := &dto.UserInfo{
		ID:          u.ID,
		Role:        u.Role,
		Nickname:    u.Nickname,
		AvatarURL:   u.AvatarURL,
		Phone:       u.Phone,
		ProfileData: profileMap(u.ProfileData),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
	if u.InviteCode != nil {
		info.InviteCode = *u.InviteCode
	}
	return info
}

func toPublicUser(u *model.User) *dto.PublicUser {
	if u == nil {
		return nil
	}
	return &dto.PublicUser{
		ID:          u.ID,
		Role:        u.Role,
		Nickname:    u.Nickname,
		AvatarURL:   u.AvatarURL,
		ProfileData: profileMap(u.ProfileData),
		CreatedAt:   u.CreatedAt,
	}
}

func profileMap(m datatypes.JSONMap) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}

func toOrderStats(view string, st *repository.OrderStats) *dto.OrderStats {
	return &dto.OrderStats{
		View:            view,
		StatusCounts:    st.StatusCounts,
		TotalOrders:     st.TotalOrders,
		TotalAmount:     st.TotalAmount,
		TotalCommission: st.TotalCommission,
	}
}

// defaultOrderView 角色对应的默认订单视角
func defaultOrderView(role string) string {
	switch role {
	case model.RoleMerchant:
		return repository.OrderViewMerchant
	case model.RoleLeader:
		return repository.OrderViewLeader
	case model.RoleInfluencer:
		return repository.OrderViewInfluencer
	}
	return repository.OrderViewBuyer
}
