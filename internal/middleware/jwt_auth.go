package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ==================== JWT 配置 ====================

// Supabase 约定：role/aud 为 authenticated 时 RLS 中 auth.uid() 取 sub
const (
	SupabaseRole     = "authenticated"
	SupabaseAudience = "authenticated"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
)

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey       string        // 签名密钥，与 Supabase 项目的 JWT secret 一致
	AccessTokenTTL  time.Duration // Access Token 有效期
	RefreshTokenTTL time.Duration // Refresh Token 有效期
	Issuer          string        // 签发者
}

// DefaultJWTConfig 默认配置
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		SecretKey:       "yuntuke-secret-key-change-in-production",
		AccessTokenTTL:  2 * time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		Issuer:          "yuntuke",
	}
}

// 全局配置
var jwtConfig = DefaultJWTConfig()

// SetJWTConfig 设置 JWT 配置
func SetJWTConfig(cfg *JWTConfig) {
	jwtConfig = cfg
}

// GetJWTConfig 获取 JWT 配置
func GetJWTConfig() *JWTConfig {
	return jwtConfig
}

// ==================== Claims 定义 ====================

// UserClaims 用户声明
// sub 为用户 UUID，role 固定为 authenticated，业务角色放在 app_role
type UserClaims struct {
	Role      string `json:"role"`
	AppRole   string `json:"app_role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// UserID 解析 sub
func (c *UserClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// ==================== Token 生成 ====================

func generateToken(userID uuid.UUID, appRole, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		Role:      SupabaseRole,
		AppRole:   appRole,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    jwtConfig.Issuer,
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{SupabaseAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SecretKey))
}

// GenerateAccessToken 生成 Access Token
func GenerateAccessToken(userID uuid.UUID, appRole string) (string, error) {
	return generateToken(userID, appRole, TokenTypeAccess, jwtConfig.AccessTokenTTL)
}

// GenerateRefreshToken 生成 Refresh Token
func GenerateRefreshToken(userID uuid.UUID, appRole string) (string, error) {
	return generateToken(userID, appRole, TokenTypeRefresh, jwtConfig.RefreshTokenTTL)
}

// GenerateTokenPair 生成 Token 对
func GenerateTokenPair(userID uuid.UUID, appRole string) (accessToken, refreshToken string, err error) {
	accessToken, err = GenerateAccessToken(userID, appRole)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = GenerateRefreshToken(userID, appRole)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ==================== Token 解析 ====================

// ParseToken 解析 Token
func ParseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtConfig.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(SupabaseAudience),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseTokenOfType 解析并校验 token_type
func ParseTokenOfType(tokenString, tokenType string) (*UserClaims, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setClaims(c *gin.Context, claims *UserClaims) {
	userID, _ := claims.UserID()
	c.Set(ContextKeyUserID, userID)
	c.Set(ContextKeyRole, claims.AppRole)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":       401,
		"error_code": "unauthorized",
		"message":    message,
	})
}

// JWTAuth JWT 认证中间件
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			abortUnauthorized(c, "未提供认证信息")
			return
		}

		// 解析 Bearer Token
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "认证格式错误，应为 Bearer {token}")
			return
		}

		claims, err := ParseToken(token)
		if err != nil {
			abortUnauthorized(c, "Token 无效或已过期")
			return
		}

		// 检查是否为 Access Token
		if claims.TokenType != TokenTypeAccess {
			abortUnauthorized(c, "Token 类型错误")
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// RequireRole 角色权限校验中间件
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := GetUserRole(c)
		if userRole == "" {
			abortUnauthorized(c, "未获取到用户角色")
			return
		}

		for _, r := range roles {
			if userRole == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"code":       403,
			"error_code": "forbidden",
			"message":    "无权限访问",
		})
	}
}

// OptionalAuth 可选认证中间件（不强制登录）
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := ParseTokenOfType(token, TokenTypeAccess)
		if err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// ==================== 辅助函数 ====================

// GetUserID 从 Context 获取用户 ID，未登录返回 uuid.Nil
func GetUserID(c *gin.Context) uuid.UUID {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}

// GetUserRole 从 Context 获取用户角色
func GetUserRole(c *gin.Context) string {
	return c.GetString(ContextKeyRole)
}

