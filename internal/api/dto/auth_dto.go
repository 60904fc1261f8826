package dto

// ==================== 微信登录 ====================

// WechatLoginRequest 小程序登录请求
type WechatLoginRequest struct {
	Code      string `json:"code" binding:"required,max=128"`
	Role      string `json:"role" binding:"omitempty,oneof=merchant leader influencer"` // 仅新用户生效
	Nickname  string `json:"nickname" binding:"omitempty,max=64"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url,max=512"`
}

// DevLoginRequest 开发环境登录，跳过微信
type DevLoginRequest struct {
	OpenID   string `json:"openid" binding:"required,max=64"`
	Role     string `json:"role" binding:"required,oneof=merchant leader influencer"`
	Nickname string `json:"nickname" binding:"omitempty,max=64"`
}

// ==================== Token ====================

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse 登录/刷新响应
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"` // 秒
	IsNewUser    bool      `json:"is_new_user"`
	User         *UserInfo `json:"user,omitempty"`
}
