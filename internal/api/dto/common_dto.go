package dto

// ==================== 通用响应 ====================

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse 错误响应，code 与 HTTP 状态码一致，error_code 为机器可读的业务错误码
type ErrorResponse struct {
	Code      int    `json:"code"`
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message"`
}

// ==================== 分页 ====================

// PageQuery 分页参数
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1"`
}

// PageResult 分页结果
type PageResult[T any] struct {
	List       []T   `json:"list"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResult 构造分页结果，page/pageSize 应为修正后的值
func NewPageResult[T any](list []T, total int64, page, pageSize int) *PageResult[T] {
	if list == nil {
		list = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &PageResult[T]{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// ==================== 收货地址 ====================

// AddressRequest 收货地址
type AddressRequest struct {
	Name     string `json:"name" binding:"required,max=64"`
	Phone    string `json:"phone" binding:"required,cn_phone"`
	Province string `json:"province" binding:"required,max=32"`
	City     string `json:"city" binding:"required,max=32"`
	District string `json:"district" binding:"omitempty,max=32"`
	Detail   string `json:"detail" binding:"required,max=200"`
	Postcode string `json:"postcode" binding:"omitempty,numeric,len=6"`
}

// ==================== 统计 ====================

// StatsQuery 统计时间窗口，默认最近 30 天
type StatsQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}
