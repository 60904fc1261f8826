package controller

import (
	"github.com/gin-gonic/gin"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/middleware"
	"yuntuke_server/internal/service"
)

// UserController 用户资料
type UserController struct {
	userService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetMe 当前用户信息
// @Summary 获取当前用户信息
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.Response{data=dto.UserInfo}
// @Router /api/v1/users/me [get]
func (ctrl *UserController) GetMe(c *gin.Context) {
	info, err := ctrl.userService.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, info)
}

// UpdateMe 更新个人资料
// @Summary 更新个人资料
// @Tags User
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfileRequest true "资料"
// @Success 200 {object} dto.Response{data=dto.UserInfo}
// @Router /api/v1/users/me [put]
func (ctrl *UserController) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	info, err := ctrl.userService.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, info)
}

// GetStats 按角色统计
// @Summary 当前用户统计
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.Response{data=dto.UserStats}
// @Router /api/v1/users/me/stats [get]
func (ctrl *UserController) GetStats(c *gin.Context) {
	stats, err := ctrl.userService.GetStats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stats)
}

// GetUser 他人公开资料
// @Summary 用户公开资料
// @Tags User
// @Security BearerAuth
// @Produce json
// @Param id path string true "用户ID"
// @Success 200 {object} dto.Response{data=dto.PublicUser}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/users/{id} [get]
func (ctrl *UserController) GetUser(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}

	user, err := ctrl.userService.GetPublicProfile(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user)
}
