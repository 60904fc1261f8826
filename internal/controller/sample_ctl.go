package controller

import (
	"github.com/gin-gonic/gin"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/middleware"
	"yuntuke_server/internal/service"
)

type SampleController struct {
	sampleService *service.SampleService
}

func NewSampleController(sampleService *service.SampleService) *SampleController {
	return &SampleController{sampleService: sampleService}
}

// CreateSample 申请样品
// @Summary 申请样品
// @Description 同一商品同时只能有一个进行中的申请，提交后 10 秒内不能重复提交
// @Tags Sample
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateSampleRequest true "申请"
// @Success 201 {object} dto.Response{data=model.SampleRequest}
// @Failure 409 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/v1/samples [post]
func (ctrl *SampleController) CreateSample(c *gin.Context) {
	var req dto.CreateSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sample, err := ctrl.sampleService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, sample)
}

// GetSamples 样品申请列表
// @Summary 样品申请列表
// @Tags Sample
// @Security BearerAuth
// @Produce json
// @Param box query string false "sent / received，默认按角色"
// @Param status query string false "状态"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.Response{data=dto.PageResult[model.SampleRequest]}
// @Router /api/v1/samples [get]
func (ctrl *SampleController) GetSamples(c *gin.Context) {
	var q dto.SampleListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	page, err := ctrl.sampleService.List(c.Request.Context(), middleware.GetUserID(c), middleware.GetUserRole(c), &q)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, page)
}

// GetSample 样品申请详情
// @Summary 样品申请详情
// @Tags Sample
// @Security BearerAuth
// @Produce json
// @Param id path string true "申请ID"
// @Success 200 {object} dto.Response{data=model.SampleRequest}
// @Router /api/v1/samples/{id} [get]
func (ctrl *SampleController) GetSample(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}

	sample, err := ctrl.sampleService.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, sample)
}

// UpdateSampleStatus 样品申请状态流转
// @Summary 审核/寄出/取消/确认收货
// @Tags Sample
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "申请ID"
// @Param body body dto.UpdateSampleStatusRequest true "目标状态"
// @Success 200 {object} dto.Response{data=model.SampleRequest}
// @Router /api/v1/samples/{id}/status [patch]
func (ctrl *SampleController) UpdateSampleStatus(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}
	var req dto.UpdateSampleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sample, err := ctrl.sampleService.UpdateStatus(c.Request.Context(), middleware.GetUserID(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, sample)
}

// GetOverview 样品申请统计
// @Summary 发出和收到的样品申请统计
// @Tags Sample
// @Security BearerAuth
// @Produce json
// @Param days query int false "统计天数，1-365" default(30)
// @Success 200 {object} dto.Response{data=dto.SampleOverview}
// @Router /api/v1/samples/statistics/overview [get]
func (ctrl *SampleController) GetOverview(c *gin.Context) {
	var q dto.StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	overview, err := ctrl.sampleService.Overview(c.Request.Context(), middleware.GetUserID(c), q.Days)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, overview)
}
