package controller

import (
	"github.com/gin-gonic/gin"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/middleware"
	"yuntuke_server/internal/service"
)

type OrderController struct {
	orderService *service.OrderService
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder 下单
// @Summary 创建订单
// @Description 同一订单只能包含同一商家的商品，库存在事务内扣减
// @Tags Order
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateOrderRequest true "订单"
// @Success 201 {object} dto.Response{data=model.Order}
// @Failure 409 {object} dto.ErrorResponse "库存不足"
// @Router /api/v1/orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := ctrl.orderService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, order)
}

// GetOrders 订单列表
// @Summary 我的订单
// @Tags Order
// @Security BearerAuth
// @Produce json
// @Param view query string false "buyer / merchant / influencer / leader，默认按角色"
// @Param status query string false "状态"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.Response{data=dto.PageResult[model.Order]}
// @Router /api/v1/orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	var q dto.OrderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	page, err := ctrl.orderService.List(c.Request.Context(), middleware.GetUserID(c), middleware.GetUserRole(c), &q)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, page)
}

// GetOrder 订单详情
// @Summary 订单详情（仅订单相关方）
// @Tags Order
// @Security BearerAuth
// @Produce json
// @Param id path string true "订单ID"
// @Success 200 {object} dto.Response{data=model.Order}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/orders/{id} [get]
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}

	order, err := ctrl.orderService.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, order)
}

// UpdateOrderStatus 订单状态流转
// @Summary 支付/发货/完成/取消/退款
// @Tags Order
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "订单ID"
// @Param body body dto.UpdateOrderStatusRequest true "目标状态"
// @Success 200 {object} dto.Response{data=model.Order}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/orders/{id}/status [patch]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := ctrl.orderService.UpdateStatus(c.Request.Context(), middleware.GetUserID(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, order)
}

// GetOrderStats 订单统计
// @Summary 订单数量、成交额与佣金
// @Tags Order
// @Security BearerAuth
// @Produce json
// @Param view query string false "统计视角"
// @Success 200 {object} dto.Response{data=dto.OrderStats}
// @Router /api/v1/orders/stats [get]
func (ctrl *OrderController) GetOrderStats(c *gin.Context) {
	var q dto.OrderStatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	stats, err := ctrl.orderService.Stats(c.Request.Context(), middleware.GetUserID(c), middleware.GetUserRole(c), q.View)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stats)
}
