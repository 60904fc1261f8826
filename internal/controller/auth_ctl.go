package controller

import (
	"github.com/gin-gonic/gin"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/service"
)

// AuthController 登录与 Token 刷新
type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// WechatLogin 微信小程序登录
// @Summary 微信小程序登录
// @Description 用 wx.login 获得的 code 换取 Token，新用户自动注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.WechatLoginRequest true "登录参数"
// @Success 200 {object} dto.Response{data=dto.TokenResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/auth/wechat/login [post]
func (ctrl *AuthController) WechatLogin(c *gin.Context) {
	var req dto.WechatLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := ctrl.authService.WechatLogin(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// DevLogin 开发环境登录
// @Summary 开发环境登录（仅 development）
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.DevLoginRequest true "登录参数"
// @Success 200 {object} dto.Response{data=dto.TokenResponse}
// @Router /api/v1/auth/dev/login [post]
func (ctrl *AuthController) DevLogin(c *gin.Context) {
	var req dto.DevLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := ctrl.authService.DevLogin(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// RefreshToken 刷新 Token
// @Summary 用 Refresh Token 换新的 Token 对
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshTokenRequest true "Refresh Token"
// @Success 200 {object} dto.Response{data=dto.TokenResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (ctrl *AuthController) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := ctrl.authService.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}
