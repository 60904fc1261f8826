package controller

import (
	"github.com/gin-gonic/gin"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/middleware"
	"yuntuke_server/internal/service"
)

type RelationshipController struct {
	relService *service.RelationshipService
}

func NewRelationshipController(relService *service.RelationshipService) *RelationshipController {
	return &RelationshipController{relService: relService}
}

// GetInviteCode 团长邀请码
// @Summary 获取邀请码（首次访问时生成）
// @Tags Relationship
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.Response{data=dto.InviteCodeResponse}
// @Router /api/v1/relationships/invite-code [get]
func (ctrl *RelationshipController) GetInviteCode(c *gin.Context) {
	resp, err := ctrl.relService.GetInviteCode(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// RefreshInviteCode 重新生成邀请码
// @Summary 刷新邀请码，1 分钟内只能刷新一次
// @Tags Relationship
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.Response{data=dto.InviteCodeResponse}
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/v1/relationships/invite-code/refresh [post]
func (ctrl *RelationshipController) RefreshInviteCode(c *gin.Context) {
	resp, err := ctrl.relService.RefreshInviteCode(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// Bind 达人绑定团长
// @Summary 通过邀请码绑定团长
// @Tags Relationship
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.BindLeaderRequest true "邀请码"
// @Success 200 {object} dto.Response{data=dto.LeaderInfo}
// @Failure 409 {object} dto.ErrorResponse "已绑定团长"
// @Router /api/v1/relationships/bind [post]
func (ctrl *RelationshipController) Bind(c *gin.Context) {
	var req dto.BindLeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	info, err := ctrl.relService.Bind(c.Request.Context(), middleware.GetUserID(c), req.InviteCode)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, info)
}

// GetTeam 团队成员
// @Summary 团长的团队成员
// @Tags Relationship
// @Security BearerAuth
// @Produce json
// @Param status query string false "active / inactive"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.Response{data=dto.PageResult[dto.TeamMember]}
// @Router /api/v1/relationships/team [get]
func (ctrl *RelationshipController) GetTeam(c *gin.Context) {
	var q dto.TeamQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	page, err := ctrl.relService.Team(c.Request.Context(), middleware.GetUserID(c), &q)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, page)
}

// GetLeader 我的团长
// @Summary 达人当前绑定的团长
// @Tags Relationship
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.Response{data=dto.LeaderInfo}
// @Failure 404 {object} dto.ErrorResponse "尚未绑定团长"
// @Router /api/v1/relationships/leader [get]
func (ctrl *RelationshipController) GetLeader(c *gin.Context) {
	info, err := ctrl.relService.GetLeader(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, info)
}

// Unbind 解除关系
// @Summary 团长或达人解除关系
// @Tags Relationship
// @Security BearerAuth
// @Produce json
// @Param id path string true "关系ID"
// @Success 200 {object} dto.Response
// @Router /api/v1/relationships/{id} [delete]
func (ctrl *RelationshipController) Unbind(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}

	if err := ctrl.relService.Unbind(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	okMessage(c, "已解除关系")
}

// GetStatistics 团队统计
// @Summary 团队成员数及团队订单汇总
// @Tags Relationship
// @Security BearerAuth
// @Produce json
// @Param days query int false "统计天数，1-365" default(30)
// @Success 200 {object} dto.Response{data=dto.RelationshipStats}
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/v1/relationships/statistics [get]
func (ctrl *RelationshipController) GetStatistics(c *gin.Context) {
	var q dto.StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	stats, err := ctrl.relService.Stats(c.Request.Context(), middleware.GetUserID(c), q.Days)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stats)
}
