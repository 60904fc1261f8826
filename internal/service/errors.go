package service

import (
	"errors"
	"fmt"
	"net/http"

	"yuntuke_server/internal/repository"
)

// ==================== 业务错误 ====================

// Error 业务错误，携带 HTTP 状态码和机器可读的错误码
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// WithMessage 复制错误并替换提示语，errors.Is 仍然按原错误匹配
func (e *Error) WithMessage(format string, args ...interface{}) error {
	return &wrapped{base: e, msg: fmt.Sprintf(format, args...)}
}

type wrapped struct {
	base *Error
	msg  string
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.base }

func newError(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

var (
	// 通用
	ErrForbidden     = newError(http.StatusForbidden, "forbidden", "无权限操作")
	ErrInvalidParams = newError(http.StatusBadRequest, "invalid_params", "参数错误")

	// 认证
	ErrWechatLogin       = newError(http.StatusUnauthorized, "wechat_login_failed", "微信登录失败")
	ErrWechatUnavailable = newError(http.StatusServiceUnavailable, "wechat_unavailable", "微信登录暂不可用")
	ErrInvalidToken      = newError(http.StatusUnauthorized, "invalid_token", "Token 无效")
	ErrUserDisabled      = newError(http.StatusForbidden, "user_disabled", "用户已禁用")
	ErrDevLoginDisabled  = newError(http.StatusNotFound, "not_found", "接口不存在")

	// 用户
	ErrUserNotFound = newError(http.StatusNotFound, "user_not_found", "用户不存在")

	// 商品
	ErrProductNotFound    = newError(http.StatusNotFound, "product_not_found", "商品不存在")
	ErrProductUnavailable = newError(http.StatusBadRequest, "product_unavailable", "商品已下架")
	ErrInsufficientStock  = newError(http.StatusConflict, "insufficient_stock", "库存不足")
	ErrInvalidPriceRange  = newError(http.StatusBadRequest, "invalid_price_range", "最低价不能高于最高价")
	ErrInvalidPrice       = newError(http.StatusBadRequest, "invalid_price", "价格必须大于 0")
	ErrInvalidPlatform    = newError(http.StatusBadRequest, "invalid_platform", "不支持的推广平台")

	// 订单
	ErrOrderNotFound          = newError(http.StatusNotFound, "order_not_found", "订单不存在")
	ErrOrderMerchantMismatch  = newError(http.StatusBadRequest, "merchant_mismatch", "订单商品必须属于同一商家")
	ErrDuplicateOrderItem     = newError(http.StatusBadRequest, "duplicate_item", "订单中存在重复商品")
	ErrInvalidOrderTransition = newError(http.StatusConflict, "invalid_transition", "订单状态不允许该操作")
	ErrOrderStatusChanged     = newError(http.StatusConflict, "status_changed", "订单状态已变化，请刷新后重试")
	ErrInvalidInfluencer      = newError(http.StatusBadRequest, "invalid_influencer", "推广达人不存在")
	ErrSelfPurchase           = newError(http.StatusBadRequest, "self_purchase", "不能购买自己的商品")

	// 选品集
	ErrCollectionNotFound = newError(http.StatusNotFound, "collection_not_found", "选品集不存在")
	ErrItemNotFound       = newError(http.StatusNotFound, "item_not_found", "选品集商品不存在")
	ErrItemExists         = newError(http.StatusConflict, "item_exists", "商品已在选品集中")
	ErrReorderMismatch    = newError(http.StatusBadRequest, "reorder_mismatch", "排序列表必须包含选品集的全部商品")

	// 样品
	ErrSampleNotFound          = newError(http.StatusNotFound, "sample_not_found", "样品申请不存在")
	ErrSampleNotAllowed        = newError(http.StatusBadRequest, "sample_not_allowed", "该商品不支持申请样品")
	ErrSampleDuplicate         = newError(http.StatusConflict, "sample_duplicate", "该商品已有进行中的样品申请")
	ErrSampleOwnProduct        = newError(http.StatusBadRequest, "own_product", "不能申请自己的商品")
	ErrInvalidSampleTransition = newError(http.StatusConflict, "invalid_transition", "样品申请状态不允许该操作")
	ErrSampleStatusChanged     = newError(http.StatusConflict, "status_changed", "样品申请状态已变化，请刷新后重试")

	// 团队关系
	ErrInviteCodeNotFound   = newError(http.StatusNotFound, "invite_code_not_found", "邀请码无效")
	ErrAlreadyBound         = newError(http.StatusConflict, "already_bound", "已绑定团长，请先解绑")
	ErrRelationshipNotFound = newError(http.StatusNotFound, "relationship_not_found", "团队关系不存在")
	ErrNoLeader             = newError(http.StatusNotFound, "no_leader", "尚未绑定团长")
	ErrInviteCodeExhausted  = newError(http.StatusInternalServerError, "invite_code_exhausted", "邀请码生成失败，请重试")
)

// StatusOf 返回错误对应的 HTTP 状态码
func StatusOf(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.Status
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, repository.ErrForeignKey), errors.Is(err, repository.ErrCheckViolation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// CodeOf 返回机器可读的错误码
func CodeOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, repository.ErrForeignKey):
		return "foreign_key_violation"
	case errors.Is(err, repository.ErrCheckViolation):
		return "check_violation"
	}
	return "internal_error"
}

// notFound 把仓库层的 ErrNotFound 换成具体的业务错误
func notFound(err error, target *Error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}
