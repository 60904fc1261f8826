package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/event"
	"yuntuke_server/internal/model"
	"yuntuke_server/internal/repository"
)

// ==================== RelationshipService 团队关系服务 ====================

const (
	inviteCodeLength   = 8
	inviteCodeAttempts = 5
	// 去掉易混淆的 0/O/1/I
	inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// RelationshipService 团长邀请码与达人绑定
type RelationshipService struct {
	userRepo  repository.UserRepository
	relRepo   repository.RelationshipRepository
	orderRepo repository.OrderRepository
	publisher event.Publisher
	log       *zap.Logger
}

// NewRelationshipService 创建团队关系服务
func NewRelationshipService(userRepo repository.UserRepository, relRepo repository.RelationshipRepository, orderRepo repository.OrderRepository, publisher event.Publisher, log *zap.Logger) *RelationshipService {
	return &RelationshipService{
		userRepo:  userRepo,
		relRepo:   relRepo,
		orderRepo: orderRepo,
		publisher: publisher,
		log:       log.Named("relationship"),
	}
}

// ==================== 邀请码 ====================

// GetInviteCode 获取团长邀请码，首次访问时生成
func (s *RelationshipService) GetInviteCode(ctx context.Context, leaderID uuid.UUID) (*dto.InviteCodeResponse, error) {
	leader, err := s.getLeader(ctx, leaderID)
	if err != nil {
		return nil, err
	}
	if leader.InviteCode == nil || *leader.InviteCode == "" {
		if leader, err = s.assignInviteCode(ctx, leader.ID); err != nil {
			return nil, err
		}
	}
	return s.inviteCodeResponse(ctx, leader)
}

// RefreshInviteCode 重新生成邀请码，旧码立即失效，已绑定的成员不受影响
func (s *RelationshipService) RefreshInviteCode(ctx context.Context, leaderID uuid.UUID) (*dto.InviteCodeResponse, error) {
	if _, err := s.getLeader(ctx, leaderID); err != nil {
		return nil, err
	}
	leader, err := s.assignInviteCode(ctx, leaderID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.log, event.InviteCodeRefreshed, leaderID.String(), event.UserPayload{
		UserID: leaderID.String(),
		Role:   leader.Role,
	})
	return s.inviteCodeResponse(ctx, leader)
}

// assignInviteCode 生成不重复的邀请码，冲突时重试
func (s *RelationshipService) assignInviteCode(ctx context.Context, leaderID uuid.UUID) (*model.User, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := generateInviteCode()
		if err != nil {
			return nil, err
		}
		err = s.userRepo.SetInviteCode(ctx, leaderID, code)
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, err
		}
		s.log.Info("邀请码已生成", zap.String("leader_id", leaderID.String()))
		return s.userRepo.GetByID(ctx, leaderID)
	}
	return nil, ErrInviteCodeExhausted
}

func (s *RelationshipService) inviteCodeResponse(ctx context.Context, leader *model.User) (*dto.InviteCodeResponse, error) {
	teamSize, err := s.relRepo.CountActiveByLeader(ctx, leader.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.InviteCodeResponse{
		RefreshedAt: leader.InviteCodeAt,
		TeamSize:    teamSize,
	}
	if leader.InviteCode != nil {
		resp.InviteCode = *leader.InviteCode
	}
	return resp, nil
}

func (s *RelationshipService) getLeader(ctx context.Context, leaderID uuid.UUID) (*model.User, error) {
	leader, err := s.userRepo.GetByID(ctx, leaderID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if !leader.IsLeader() {
		return nil, ErrForbidden
	}
	return leader, nil
}

// ==================== 统计 ====================

// Stats 团队成员数及团队订单汇总
func (s *RelationshipService) Stats(ctx context.Context, leaderID uuid.UUID, days int) (*dto.RelationshipStats, error) {
	if _, err := s.getLeader(ctx, leaderID); err != nil {
		return nil, err
	}
	days, since := statsWindow(days)

	counts, err := s.relRepo.CountByLeader(ctx, leaderID, since)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.Stats(ctx, repository.OrderViewLeader, leaderID)
	if err != nil {
		return nil, err
	}

	return &dto.RelationshipStats{
		Days:            days,
		ActiveMembers:   counts.Active,
		InactiveMembers: counts.Inactive,
		NewMembers:      counts.Recent,
		TeamOrders:      orders.TotalOrders,
		TeamGMV:         orders.TotalAmount,
		TeamCommission:  orders.TotalCommission,
	}, nil
}

// ==================== 绑定 ====================

// Bind 达人通过邀请码绑定团长
// 一个达人同时只能绑定一个团长；曾经解绑过的同一团长会重新激活原关系
func (s *RelationshipService) Bind(ctx context.Context, influencerID uuid.UUID, inviteCode string) (*dto.LeaderInfo, error) {
	influencer, err := s.userRepo.GetByID(ctx, influencerID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if !influencer.IsInfluencer() {
		return nil, ErrForbidden
	}

	leader, err := s.userRepo.GetByInviteCode(ctx, strings.ToUpper(strings.TrimSpace(inviteCode)))
	if err != nil {
		return nil, notFound(err, ErrInviteCodeNotFound)
	}
	if !leader.IsActive {
		return nil, ErrInviteCodeNotFound
	}

	if _, err := s.relRepo.GetActiveByInfluencer(ctx, influencerID); err == nil {
		return nil, ErrAlreadyBound
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	code := *leader.InviteCode
	rel, err := s.relRepo.GetPair(ctx, leader.ID, influencerID)
	switch {
	case err == nil:
		err = s.relRepo.UpdateFields(ctx, rel.ID, map[string]interface{}{
			"status":      model.RelationshipStatusActive,
			"invite_code": code,
		})
	case errors.Is(err, repository.ErrNotFound):
		rel = &model.UserRelationship{
			LeaderID:     leader.ID,
			InfluencerID: influencerID,
			InviteCode:   code,
			Status:       model.RelationshipStatusActive,
		}
		err = s.relRepo.Create(ctx, rel)
	}
	if err != nil {
		// 并发绑定时由部分唯一索引兜底
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyBound
		}
		return nil, err
	}

	s.log.Info("达人绑定团长",
		zap.String("leader_id", leader.ID.String()),
		zap.String("influencer_id", influencerID.String()),
	)
	publish(ctx, s.publisher, s.log, event.RelationshipBound, rel.ID.String(), event.RelationshipPayload{
		RelationshipID: rel.ID.String(),
		LeaderID:       leader.ID.String(),
		InfluencerID:   influencerID.String(),
	})

	return s.GetLeader(ctx, influencerID)
}

// Unbind 任意一方解除关系，关系记录保留为 inactive
func (s *RelationshipService) Unbind(ctx context.Context, userID, relationshipID uuid.UUID) error {
	rel, err := s.relRepo.GetByID(ctx, relationshipID)
	if err != nil {
		return notFound(err, ErrRelationshipNotFound)
	}
	if !rel.Involves(userID) || rel.Status != model.RelationshipStatusActive {
		return ErrRelationshipNotFound
	}

	err = s.relRepo.UpdateFields(ctx, rel.ID, map[string]interface{}{"status": model.RelationshipStatusInactive})
	if err != nil {
		return err
	}

	s.log.Info("团队关系已解除",
		zap.String("relationship_id", rel.ID.String()),
		zap.String("operator", userID.String()),
	)
	publish(ctx, s.publisher, s.log, event.RelationshipUnbound, rel.ID.String(), event.RelationshipPayload{
		RelationshipID: rel.ID.String(),
		LeaderID:       rel.LeaderID.String(),
		InfluencerID:   rel.InfluencerID.String(),
	})
	return nil
}

// ==================== 查询 ====================

// Team 团长的团队成员
func (s *RelationshipService) Team(ctx context.Context, leaderID uuid.UUID, q *dto.TeamQuery) (*dto.PageResult[dto.TeamMember], error) {
	page := repository.Pagination{Page: q.Page, PageSize: q.PageSize}
	rels, total, err := s.relRepo.ListByLeader(ctx, leaderID, q.Status, page)
	if err != nil {
		return nil, err
	}

	members := make([]dto.TeamMember, 0, len(rels))
	for i := range rels {
		members = append(members, dto.TeamMember{
			RelationshipID: rels[i].ID,
			Status:         rels[i].Status,
			BoundAt:        rels[i].UpdatedAt,
			Influencer:     toPublicUser(rels[i].Influencer),
		})
	}
	page.Normalize()
	return dto.NewPageResult(members, total, page.Page, page.PageSize), nil
}

// GetLeader 达人当前绑定的团长
func (s *RelationshipService) GetLeader(ctx context.Context, influencerID uuid.UUID) (*dto.LeaderInfo, error) {
	rel, err := s.relRepo.GetActiveByInfluencer(ctx, influencerID)
	if err != nil {
		return nil, notFound(err, ErrNoLeader)
	}
	return &dto.LeaderInfo{
		RelationshipID: rel.ID,
		BoundAt:        rel.UpdatedAt,
		Leader:         toPublicUser(rel.Leader),
	}, nil
}

// generateInviteCode 随机邀请码
func generateInviteCode() (string, error) {
	var b strings.Builder
	b.Grow(inviteCodeLength)
	size := big.NewInt(int64(len(inviteCodeAlphabet)))
	for i := 0; i < inviteCodeLength; i++ {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		b.WriteByte(inviteCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}
