package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/event"
	"yuntuke_server/internal/middleware"
	"yuntuke_server/internal/model"
	"yuntuke_server/internal/repository"
	"yuntuke_server/pkg/cache"
	"yuntuke_server/pkg/wechat"
)

// 同一个 code 在有效期内重复提交时直接返回缓存的 openid
const codeCacheTTL = 5 * time.Minute

// SessionExchanger 小程序 code 换 openid
type SessionExchanger interface {
	Code2Session(ctx context.Context, code string) (*wechat.Session, error)
}

// ==================== AuthService 认证服务 ====================

// AuthService 微信登录与 Token 刷新
type AuthService struct {
	userRepo  repository.UserRepository
	wechat    SessionExchanger
	cache     cache.Cache
	publisher event.Publisher
	log       *zap.Logger

	devLogin bool
}

// NewAuthService 创建认证服务，devLogin 仅在开发环境开启
func NewAuthService(
	userRepo repository.UserRepository,
	wx SessionExchanger,
	store cache.Cache,
	publisher event.Publisher,
	log *zap.Logger,
	devLogin bool,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		wechat:    wx,
		cache:     store,
		publisher: publisher,
		log:       log.Named("auth"),
		devLogin:  devLogin,
	}
}

// ==================== 登录 ====================

// WechatLogin 小程序登录，用户不存在时自动注册
func (s *AuthService) WechatLogin(ctx context.Context, req *dto.WechatLoginRequest) (*dto.TokenResponse, error) {
	sess, err := s.exchangeCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	user, isNew, err := s.findOrCreate(ctx, sess.OpenID, sess.UnionID, req.Role, req.Nickname, req.AvatarURL)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user, isNew)
}

// DevLogin 开发环境登录，直接使用传入的 openid
func (s *AuthService) DevLogin(ctx context.Context, req *dto.DevLoginRequest) (*dto.TokenResponse, error) {
	if !s.devLogin {
		return nil, ErrDevLoginDisabled
	}

	user, isNew, err := s.findOrCreate(ctx, "dev_"+req.OpenID, "", req.Role, req.Nickname, "")
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user, isNew)
}

// RefreshToken 用 Refresh Token 换新的 Token 对
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := middleware.ParseTokenOfType(req.RefreshToken, middleware.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}

	// 确保用户仍然有效
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	return s.tokenPair(user)
}

// ==================== 内部方法 ====================

func codeCacheKey(code string) string {
	return "wechat:code:" + code
}

func (s *AuthService) exchangeCode(ctx context.Context, code string) (*wechat.Session, error) {
	key := codeCacheKey(code)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		openID, unionID, _ := strings.Cut(cached, "|")
		return &wechat.Session{OpenID: openID, UnionID: unionID}, nil
	}

	sess, err := s.wechat.Code2Session(ctx, code)
	if err != nil {
		var apiErr *wechat.APIError
		switch {
		case errors.As(err, &apiErr):
			s.log.Warn("微信 code 校验失败", zap.Int("errcode", apiErr.Code), zap.String("errmsg", apiErr.Message))
			return nil, ErrWechatLogin.WithMessage("微信登录失败: %s", apiErr.Message)
		case errors.Is(err, wechat.ErrNotConfigured):
			return nil, ErrWechatUnavailable
		default:
			s.log.Error("请求微信接口失败", zap.Error(err))
			return nil, ErrWechatUnavailable
		}
	}

	if err := s.cache.Set(ctx, key, sess.OpenID+"|"+sess.UnionID, codeCacheTTL); err != nil {
		s.log.Warn("缓存微信会话失败", zap.Error(err))
	}
	return sess, nil
}

func (s *AuthService) findOrCreate(ctx context.Context, openID, unionID, role, nickname, avatarURL string) (*model.User, bool, error) {
	user, err := s.userRepo.GetByOpenID(ctx, openID)
	if err == nil {
		if !user.IsActive {
			return nil, false, ErrUserDisabled
		}
		s.fillProfile(ctx, user, nickname, avatarURL)
		return user, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	if role == "" {
		role = model.RoleInfluencer
	}
	if nickname == "" {
		nickname = defaultNickname(openID)
	}

	user = &model.User{
		WechatOpenID: openID,
		Role:         role,
		Nickname:     nickname,
		AvatarURL:    avatarURL,
		IsActive:     true,
	}
	if unionID != "" {
		user.WechatUnionID = &unionID
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// 并发登录时另一个请求已经创建
		if errors.Is(err, repository.ErrDuplicate) {
			existing, getErr := s.userRepo.GetByOpenID(ctx, openID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	s.log.Info("新用户注册", zap.String("user_id", user.ID.String()), zap.String("role", role))
	publish(ctx, s.publisher, s.log, event.UserRegistered, user.ID.String(), event.UserPayload{
		UserID: user.ID.String(),
		Role:   role,
	})
	return user, true, nil
}

// fillProfile 老用户只补全空的昵称/头像
func (s *AuthService) fillProfile(ctx context.Context, user *model.User, nickname, avatarURL string) {
	fields := map[string]interface{}{}
	if nickname != "" && (user.Nickname == "" || user.Nickname == defaultNickname(user.WechatOpenID)) {
		fields["nickname"] = nickname
		user.Nickname = nickname
	}
	if avatarURL != "" && user.AvatarURL == "" {
		fields["avatar_url"] = avatarURL
		user.AvatarURL = avatarURL
	}
	if len(fields) == 0 {
		return
	}
	if err := s.userRepo.UpdateFields(ctx, user.ID, fields); err != nil {
		s.log.Warn("补全用户资料失败", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User, isNew bool) (*dto.TokenResponse, error) {
	resp, err := s.tokenPair(user)
	if err != nil {
		return nil, err
	}

	// 更新最后登录时间
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.Warn("更新登录时间失败", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	resp.IsNewUser = isNew
	resp.User = toUserInfo(user)
	return resp, nil
}

func (s *AuthService) tokenPair(user *model.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	cfg := middleware.GetJWTConfig()
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(cfg.AccessTokenTTL.Seconds()),
	}, nil
}

func defaultNickname(openID string) string {
	suffix := openID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return "云推客用户" + suffix
}
