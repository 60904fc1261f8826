package controller

import (
	"github.com/gin-gonic/gin"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/service"
)

type InfluencerController struct {
	influencerService *service.InfluencerService
}

func NewInfluencerController(influencerService *service.InfluencerService) *InfluencerController {
	return &InfluencerController{influencerService: influencerService}
}

// GetInfluencers 达人广场
// @Summary 达人列表
// @Tags Influencer
// @Security BearerAuth
// @Produce json
// @Param keyword query string false "昵称搜索"
// @Param category query string false "擅长分类"
// @Param min_fans query int false "最少粉丝数"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.Response{data=dto.PageResult[dto.PublicUser]}
// @Router /api/v1/influencers [get]
func (ctrl *InfluencerController) GetInfluencers(c *gin.Context) {
	var q dto.InfluencerListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	page, err := ctrl.influencerService.List(c.Request.Context(), &q)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, page)
}

// GetInfluencer 达人详情
// @Summary 达人详情
// @Tags Influencer
// @Security BearerAuth
// @Produce json
// @Param id path string true "达人ID"
// @Success 200 {object} dto.Response{data=dto.InfluencerDetail}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/influencers/{id} [get]
func (ctrl *InfluencerController) GetInfluencer(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}

	detail, err := ctrl.influencerService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, detail)
}
