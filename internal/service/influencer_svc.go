package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/model"
	"yuntuke_server/internal/repository"
)

// InfluencerService 达人广场
type InfluencerService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	relRepo   repository.RelationshipRepository
}

// NewInfluencerService 创建达人服务
func NewInfluencerService(userRepo repository.UserRepository, orderRepo repository.OrderRepository, relRepo repository.RelationshipRepository) *InfluencerService {
	return &InfluencerService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
		relRepo:   relRepo,
	}
}

// List 按关键词、分类、粉丝数筛选达人
func (s *InfluencerService) List(ctx context.Context, q *dto.InfluencerListQuery) (*dto.PageResult[dto.PublicUser], error) {
	filter := repository.InfluencerFilter{
		Keyword:  q.Keyword,
		Category: q.Category,
		MinFans:  q.MinFans,
		Pagination: repository.Pagination{
			Page:     q.Page,
			PageSize: q.PageSize,
		},
	}
	users, total, err := s.userRepo.ListInfluencers(ctx, filter)
	if err != nil {
		return nil, err
	}

	list := make([]dto.PublicUser, 0, len(users))
	for i := range users {
		list = append(list, *toPublicUser(&users[i]))
	}
	filter.Pagination.Normalize()
	return dto.NewPageResult(list, total, filter.Page, filter.PageSize), nil
}

// Get 达人详情：公开资料、推广订单统计和所属团长
func (s *InfluencerService) Get(ctx context.Context, id uuid.UUID) (*dto.InfluencerDetail, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if !user.IsInfluencer() || !user.IsActive {
		return nil, ErrUserNotFound
	}

	st, err := s.orderRepo.Stats(ctx, repository.OrderViewInfluencer, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.InfluencerDetail{
		PublicUser:      *toPublicUser(user),
		OrderCount:      st.TotalOrders,
		CompletedOrders: st.StatusCounts[model.OrderStatusCompleted],
		TotalCommission: st.TotalCommission,
	}

	rel, err := s.relRepo.GetActiveByInfluencer(ctx, id)
	switch {
	case err == nil:
		detail.Leader = toPublicUser(rel.Leader)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	return detail, nil
}
