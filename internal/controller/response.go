package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/service"
)

// ==================== 统一响应 ====================

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{Code: 0, Message: "success", Data: data})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.Response{Code: 0, Message: "success", Data: data})
}

func okMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.Response{Code: 0, Message: message})
}

// fail 按业务错误类型返回状态码，5xx 不向客户端暴露细节
func fail(c *gin.Context, err error) {
	status := service.StatusOf(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		message = "服务器内部错误"
	}
	c.JSON(status, dto.ErrorResponse{Code: status, ErrorCode: service.CodeOf(err), Message: message})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:      http.StatusBadRequest,
		ErrorCode: service.ErrInvalidParams.Code,
		Message:   "参数错误: " + err.Error(),
	})
}

// uuidParam 解析路径中的 UUID，失败时直接返回 400
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:      http.StatusBadRequest,
			ErrorCode: service.ErrInvalidParams.Code,
			Message:   "无效的 " + name,
		})
		return uuid.Nil, false
	}
	return id, true
}
