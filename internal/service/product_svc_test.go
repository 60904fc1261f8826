package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/model"
	"yuntuke_server/internal/testutil"
)

func newProductService(e *testEnv) *ProductService {
	return NewProductService(e.products, e.log)
}

func TestProductService_Create(t *testing.T) {
	e := newTestEnv(t)
	svc := newProductService(e)
	ctx := context.Background()

	merchant := testutil.CreateUser(t, e.db, model.RoleMerchant)
	original := decimal.RequireFromString("199.999")

	p, err := svc.Create(ctx, merchant.ID, &dto.CreateProductRequest{
		Title:          "保湿面霜",
		Category:       "beauty",
		Price:          decimal.RequireFromString("129.005"),
		OriginalPrice:  &original,
		CommissionRate: decimal.RequireFromString("0.2"),
		Stock:          50,
		Images:         []string{"https://img.example.com/a.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.PlatformOther, p.Platform)
	assert.Equal(t, "129.01", p.Price.StringFixed(2))
	assert.Equal(t, "200.00", p.OriginalPrice.StringFixed(2))
	assert.Equal(t, model.ProductStatusActive, p.Status)
	assert.NotNil(t, p.Tags)
}

func TestProductService_Visibility(t *testing.T) {
	e := newTestEnv(t)
	svc := newProductService(e)
	ctx := context.Background()

	merchant := testutil.CreateUser(t, e.db, model.RoleMerchant)
	viewer := testutil.CreateUser(t, e.db, model.RoleInfluencer)
	active := testutil.CreateProduct(t, e.db, merchant.ID, "10.00", 1)
	hidden := testutil.CreateProduct(t, e.db, merchant.ID, "20.00", 1)

	_, err := svc.UpdateStatus(ctx, merchant.ID, hidden.ID, model.ProductStatusInactive)
	require.NoError(t, err)

	page, err := svc.List(ctx, viewer.ID, &dto.ProductListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	// 他人传 status 无效
	page, err = svc.List(ctx, viewer.ID, &dto.ProductListQuery{MerchantID: merchant.ID.String(), Status: "all"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	page, err = svc.List(ctx, merchant.ID, &dto.ProductListQuery{MerchantID: merchant.ID.String(), Status: "all"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	_, err = svc.Get(ctx, viewer.ID, hidden.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	_, err = svc.Get(ctx, merchant.ID, hidden.ID)
	assert.NoError(t, err)

	got, err := svc.Get(ctx, viewer.ID, active.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)

	// 商家本人查看不计浏览量
	got, err = svc.Get(ctx, merchant.ID, active.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)
}

func TestProductService_ListFilters(t *testing.T) {
	e := newTestEnv(t)
	svc := newProductService(e)
	ctx := context.Background()

	merchant := testutil.CreateUser(t, e.db, model.RoleMerchant)
	testutil.CreateProduct(t, e.db, merchant.ID, "10.00", 1)
	testutil.CreateProduct(t, e.db, merchant.ID, "50.00", 1)
	testutil.CreateProduct(t, e.db, merchant.ID, "90.00", 1)

	lo, hi := 20.0, 100.0
	page, err := svc.List(ctx, uuid.Nil, &dto.ProductListQuery{MinPrice: &lo, MaxPrice: &hi, SortBy: "price", SortOrder: "asc"})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
	assert.Equal(t, "50.00", page.List[0].Price.StringFixed(2))

	_, err = svc.List(ctx, uuid.Nil, &dto.ProductListQuery{MinPrice: &hi, MaxPrice: &lo})
	assert.ErrorIs(t, err, ErrInvalidPriceRange)

	_, err = svc.List(ctx, uuid.Nil, &dto.ProductListQuery{MerchantID: "not-a-uuid"})
	assert.ErrorIs(t, err, ErrInvalidParams)

	page, err = svc.List(ctx, uuid.Nil, &dto.ProductListQuery{PageQuery: dto.PageQuery{Page: 2, PageSize: 2}})
	require.NoError(t, err)
	assert.Len(t, page.List, 1)
	assert.Equal(t, 2, page.TotalPages)
}

func TestProductService_Ownership(t *testing.T) {
	e := newTestEnv(t)
	svc := newProductService(e)
	ctx := context.Background()

	merchant := testutil.CreateUser(t, e.db, model.RoleMerchant)
	other := testutil.CreateUser(t, e.db, model.RoleMerchant)
	p := testutil.CreateProduct(t, e.db, merchant.ID, "10.00", 1)

	title := "新标题"
	_, err := svc.Update(ctx, other.ID, p.ID, &dto.UpdateProductRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, merchant.ID, p.ID, &dto.UpdateProductRequest{Title: &title, Tags: []string{"新品"}})
	require.NoError(t, err)
	assert.Equal(t, "新标题", updated.Title)
	assert.Equal(t, []string{"新品"}, []string(updated.Tags))

	assert.ErrorIs(t, svc.Delete(ctx, other.ID, p.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, merchant.ID, p.ID))

	_, err = svc.Get(ctx, merchant.ID, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, merchant.ID, p.ID), ErrProductNotFound)

	counts, err := svc.Stats(ctx, merchant.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[model.ProductStatusDeleted])
}

// 舍入到两位小数后为 0 的价格返回字段错误，而不是数据库约束错误
func TestProductService_PriceRoundsToZero(t *testing.T) {
	e := newTestEnv(t)
	svc := newProductService(e)
	ctx := context.Background()

	merchant := testutil.CreateUser(t, e.db, model.RoleMerchant)

	_, err := svc.Create(ctx, merchant.ID, &dto.CreateProductRequest{
		Title:    "试用装",
		Category: "beauty",
		Price:    decimal.RequireFromString("0.001"),
	})
	require.ErrorIs(t, err, ErrInvalidPrice)
	assert.Contains(t, err.Error(), "price")

	p := testutil.CreateProduct(t, e.db, merchant.ID, "10.00", 1)
	tiny := decimal.RequireFromString("0.004")
	_, err = svc.Update(ctx, merchant.ID, p.ID, &dto.UpdateProductRequest{Price: &tiny})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.Update(ctx, merchant.ID, p.ID, &dto.UpdateProductRequest{OriginalPrice: &tiny})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	got, err := e.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.00", got.Price.StringFixed(2))
}

func TestProductService_InvalidPlatform(t *testing.T) {
	e := newTestEnv(t)
	svc := newProductService(e)
	ctx := context.Background()

	merchant := testutil.CreateUser(t, e.db, model.RoleMerchant)
	_, err := svc.Create(ctx, merchant.ID, &dto.CreateProductRequest{
		Title:    "耳机",
		Category: "electronics",
		Platform: "jd",
		Price:    decimal.RequireFromString("99"),
	})
	assert.ErrorIs(t, err, ErrInvalidPlatform)

	p := testutil.CreateProduct(t, e.db, merchant.ID, "10.00", 1)
	platform := "pdd"
	_, err = svc.Update(ctx, merchant.ID, p.ID, &dto.UpdateProductRequest{Platform: &platform})
	assert.ErrorIs(t, err, ErrInvalidPlatform)
}

func TestProductService_AdjustStock(t *testing.T) {
	e := newTestEnv(t)
	svc := newProductService(e)
	ctx := context.Background()

	merchant := testutil.CreateUser(t, e.db, model.RoleMerchant)
	other := testutil.CreateUser(t, e.db, model.RoleMerchant)
	p := testutil.CreateProduct(t, e.db, merchant.ID, "10.00", 5)

	got, err := svc.AdjustStock(ctx, merchant.ID, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Stock)

	got, err = svc.AdjustStock(ctx, merchant.ID, p.ID, -8)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	_, err = svc.AdjustStock(ctx, merchant.ID, p.ID, -1)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = svc.AdjustStock(ctx, other.ID, p.ID, 1)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.AdjustStock(ctx, merchant.ID, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Categories(t *testing.T) {
	svc := newProductService(newTestEnv(t))

	options := svc.Categories()
	require.Len(t, options, len(model.ProductCategories))
	assert.Equal(t, "beauty", options[0].Value)
	for _, o := range options {
		assert.NotEmpty(t, o.Label, o.Value)
	}
}
