package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, Register(v))
	return v
}

func TestCNPhone(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Var("13800138000", "cn_phone"))
	assert.NoError(t, v.Var("19912345678", "cn_phone"))
	assert.Error(t, v.Var("12800138000", "cn_phone"))
	assert.Error(t, v.Var("1380013800", "cn_phone"))
	assert.Error(t, v.Var("+8613800138000", "cn_phone"))
}

func TestProductRequestValidation(t *testing.T) {
	v := newValidator(t)

	req := CreateProductRequest{
		Title:          "面霜",
		Category:       "beauty",
		Price:          decimal.RequireFromString("99.9"),
		CommissionRate: decimal.RequireFromString("0.2"),
		Stock:          10,
	}
	assert.NoError(t, v.Struct(req))

	req.Price = decimal.Zero
	assert.Error(t, v.Struct(req), "价格必须大于 0")

	req.Price = decimal.RequireFromString("10")
	req.CommissionRate = decimal.RequireFromString("1.5")
	assert.Error(t, v.Struct(req), "佣金比例不能超过 1")

	req.CommissionRate = decimal.RequireFromString("0.1")
	req.Category = "weapons"
	assert.Error(t, v.Struct(req), "分类不合法")
}

func TestAddressValidation(t *testing.T) {
	v := newValidator(t)

	addr := AddressRequest{Name: "张三", Phone: "13800138000", Province: "广东省", City: "深圳市", Detail: "科技园"}
	assert.NoError(t, v.Struct(addr))

	addr.Phone = "123"
	assert.Error(t, v.Struct(addr))
}

func TestNewPageResult(t *testing.T) {
	res := NewPageResult[int](nil, 41, 2, 20)
	assert.Equal(t, 3, res.TotalPages)
	assert.NotNil(t, res.List)

	res = NewPageResult([]int{1}, 0, 1, 0)
	assert.Equal(t, 0, res.TotalPages)
}
