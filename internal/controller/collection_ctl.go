package controller

import (
	"github.com/gin-gonic/gin"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/middleware"
	"yuntuke_server/internal/service"
)

type CollectionController struct {
	collectionService *service.CollectionService
}

func NewCollectionController(collectionService *service.CollectionService) *CollectionController {
	return &CollectionController{collectionService: collectionService}
}

// ==================== 选品集 ====================

// GetCollections 选品集列表
// @Summary 选品集列表（公开的和自己的）
// @Tags Collection
// @Produce json
// @Param keyword query string false "名称/描述搜索"
// @Param tag query string false "标签"
// @Param leader_id query string false "团长ID"
// @Param mine query bool false "只看自己的"
// @Param status query string false "状态，只对自己的选品集生效"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.Response{data=dto.PageResult[model.Collection]}
// @Router /api/v1/collections [get]
func (ctrl *CollectionController) GetCollections(c *gin.Context) {
	var q dto.CollectionListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	page, err := ctrl.collectionService.List(c.Request.Context(), middleware.GetUserID(c), &q)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, page)
}

// GetCollection 选品集详情
// @Summary 选品集详情，商品按排序返回
// @Tags Collection
// @Produce json
// @Param id path string true "选品集ID"
// @Success 200 {object} dto.Response{data=model.Collection}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/collections/{id} [get]
func (ctrl *CollectionController) GetCollection(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}

	collection, err := ctrl.collectionService.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, collection)
}

// CreateCollection 创建选品集
// @Summary 创建选品集
// @Tags Collection
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateCollectionRequest true "选品集"
// @Success 201 {object} dto.Response{data=model.Collection}
// @Router /api/v1/collections [post]
func (ctrl *CollectionController) CreateCollection(c *gin.Context) {
	var req dto.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	collection, err := ctrl.collectionService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, collection)
}

// UpdateCollection 修改选品集
// @Summary 修改选品集
// @Tags Collection
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "选品集ID"
// @Param body body dto.UpdateCollectionRequest true "修改内容"
// @Success 200 {object} dto.Response{data=model.Collection}
// @Router /api/v1/collections/{id} [put]
func (ctrl *CollectionController) UpdateCollection(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}
	var req dto.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	collection, err := ctrl.collectionService.Update(c.Request.Context(), middleware.GetUserID(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, collection)
}

// DeleteCollection 删除选品集
// @Summary 删除选品集及其商品
// @Tags Collection
// @Security BearerAuth
// @Produce json
// @Param id path string true "选品集ID"
// @Success 200 {object} dto.Response
// @Router /api/v1/collections/{id} [delete]
func (ctrl *CollectionController) DeleteCollection(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}

	if err := ctrl.collectionService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	okMessage(c, "删除成功")
}

// ==================== 选品集商品 ====================

// AddItem 添加商品
// @Summary 向选品集添加商品
// @Tags Collection
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "选品集ID"
// @Param body body dto.AddCollectionItemRequest true "商品"
// @Success 201 {object} dto.Response{data=model.CollectionItem}
// @Failure 409 {object} dto.ErrorResponse "商品已存在"
// @Router /api/v1/collections/{id}/items [post]
func (ctrl *CollectionController) AddItem(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}
	var req dto.AddCollectionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := ctrl.collectionService.AddItem(c.Request.Context(), middleware.GetUserID(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, item)
}

// UpdateItem 修改推荐语或排序
// @Summary 修改选品集商品
// @Tags Collection
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "选品集ID"
// @Param item_id path string true "选品集商品ID"
// @Param body body dto.UpdateCollectionItemRequest true "修改内容"
// @Success 200 {object} dto.Response{data=model.CollectionItem}
// @Router /api/v1/collections/{id}/items/{item_id} [put]
func (ctrl *CollectionController) UpdateItem(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}
	itemID, valid := uuidParam(c, "item_id")
	if !valid {
		return
	}
	var req dto.UpdateCollectionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := ctrl.collectionService.UpdateItem(c.Request.Context(), middleware.GetUserID(c), id, itemID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, item)
}

// RemoveItem 移除商品
// @Summary 从选品集移除商品
// @Tags Collection
// @Security BearerAuth
// @Produce json
// @Param id path string true "选品集ID"
// @Param item_id path string true "选品集商品ID"
// @Success 200 {object} dto.Response
// @Router /api/v1/collections/{id}/items/{item_id} [delete]
func (ctrl *CollectionController) RemoveItem(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}
	itemID, valid := uuidParam(c, "item_id")
	if !valid {
		return
	}

	if err := ctrl.collectionService.RemoveItem(c.Request.Context(), middleware.GetUserID(c), id, itemID); err != nil {
		fail(c, err)
		return
	}
	okMessage(c, "移除成功")
}

// ReorderItems 重排商品
// @Summary 按给定顺序重排选品集商品
// @Tags Collection
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "选品集ID"
// @Param body body dto.ReorderItemsRequest true "全部商品ID的新顺序"
// @Success 200 {object} dto.Response{data=model.Collection}
// @Router /api/v1/collections/{id}/items/order [put]
func (ctrl *CollectionController) ReorderItems(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}
	var req dto.ReorderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	collection, err := ctrl.collectionService.Reorder(c.Request.Context(), middleware.GetUserID(c), id, req.ItemIDs)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, collection)
}

// GetStatistics 选品集统计
// @Summary 团长选品集统计
// @Tags Collection
// @Security BearerAuth
// @Produce json
// @Param days query int false "统计天数，1-365" default(30)
// @Success 200 {object} dto.Response{data=dto.CollectionStats}
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/v1/collections/statistics [get]
func (ctrl *CollectionController) GetStatistics(c *gin.Context) {
	var q dto.StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	stats, err := ctrl.collectionService.Stats(c.Request.Context(), middleware.GetUserID(c), q.Days)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stats)
}
