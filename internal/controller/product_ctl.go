package controller

import (
	"github.com/gin-gonic/gin"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/middleware"
	"yuntuke_server/internal/service"
)

type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== 查询接口 ====================

// GetProducts 商品列表
// @Summary 商品列表
// @Description 默认只返回上架商品；merchant_id 为自己时 status 参数生效
// @Tags Product
// @Produce json
// @Param keyword query string false "标题/品牌搜索"
// @Param category query string false "分类"
// @Param platform query string false "推广平台"
// @Param merchant_id query string false "商家ID"
// @Param status query string false "active / inactive / all"
// @Param min_price query number false "最低价"
// @Param max_price query number false "最高价"
// @Param sort_by query string false "created_at / price / sales_count / commission_rate / view_count"
// @Param sort_order query string false "asc / desc"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.Response{data=dto.PageResult[model.Product]}
// @Router /api/v1/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	var q dto.ProductListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	page, err := ctrl.productService.List(c.Request.Context(), middleware.GetUserID(c), &q)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, page)
}

// GetProduct 商品详情
// @Summary 商品详情
// @Tags Product
// @Produce json
// @Param id path string true "商品ID"
// @Success 200 {object} dto.Response{data=model.Product}
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}

	product, err := ctrl.productService.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, product)
}

// GetProductStats 商家商品统计
// @Summary 各状态商品数量
// @Tags Product
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.Response{data=map[string]int64}
// @Router /api/v1/products/stats [get]
func (ctrl *ProductController) GetProductStats(c *gin.Context) {
	stats, err := ctrl.productService.Stats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, stats)
}

// GetCategories 商品分类
// @Summary 商品分类列表
// @Tags Product
// @Produce json
// @Success 200 {object} dto.Response{data=[]dto.CategoryOption}
// @Router /api/v1/products/categories/list [get]
func (ctrl *ProductController) GetCategories(c *gin.Context) {
	ok(c, ctrl.productService.Categories())
}

// ==================== CRUD 接口 ====================

// CreateProduct 发布商品
// @Summary 发布商品
// @Tags Product
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateProductRequest true "商品信息"
// @Success 201 {object} dto.Response{data=model.Product}
// @Router /api/v1/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := ctrl.productService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, product)
}

// UpdateProduct 修改商品
// @Summary 修改商品
// @Tags Product
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "商品ID"
// @Param body body dto.UpdateProductRequest true "修改内容"
// @Success 200 {object} dto.Response{data=model.Product}
// @Router /api/v1/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := ctrl.productService.Update(c.Request.Context(), middleware.GetUserID(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, product)
}

// UpdateProductStatus 上下架
// @Summary 商品上下架
// @Tags Product
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "商品ID"
// @Param body body dto.UpdateProductStatusRequest true "状态"
// @Success 200 {object} dto.Response{data=model.Product}
// @Router /api/v1/products/{id}/status [patch]
func (ctrl *ProductController) UpdateProductStatus(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}
	var req dto.UpdateProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := ctrl.productService.UpdateStatus(c.Request.Context(), middleware.GetUserID(c), id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, product)
}

// AdjustStock 增减库存
// @Summary 增减商品库存
// @Tags Product
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "商品ID"
// @Param body body dto.AdjustStockRequest true "库存变化量"
// @Success 200 {object} dto.Response{data=model.Product}
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/products/{id}/stock [patch]
func (ctrl *ProductController) AdjustStock(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := ctrl.productService.AdjustStock(c.Request.Context(), middleware.GetUserID(c), id, req.QuantityChange)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, product)
}

// DeleteProduct 删除商品
// @Summary 删除商品（软删除）
// @Tags Product
// @Security BearerAuth
// @Produce json
// @Param id path string true "商品ID"
// @Success 200 {object} dto.Response
// @Router /api/v1/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, valid := uuidParam(c, "id")
	if !valid {
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	okMessage(c, "删除成功")
}
