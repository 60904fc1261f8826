package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"yuntuke_server/internal/model"
	"yuntuke_server/internal/testutil"
)

func TestProductRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	merchant := testutil.CreateUser(t, db, model.RoleMerchant)
	p := testutil.CreateProduct(t, db, merchant.ID, "199.00", 10)

	found, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !found.Price.Equal(decimal.RequireFromString("199")) {
		t.Errorf("Price = %s, want 199", found.Price)
	}
	if len(found.Images) != 1 || found.Tags[0] != "护肤" {
		t.Errorf("数组字段读取错误: images=%v tags=%v", found.Images, found.Tags)
	}
	if found.Merchant == nil || found.Merchant.ID != merchant.ID {
		t.Error("应预加载商家信息")
	}

	_, err = repo.GetByID(ctx, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("不存在的商品应返回 ErrNotFound, got %v", err)
	}
}

func TestProductRepo_CheckConstraints(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	merchant := testutil.CreateUser(t, db, model.RoleMerchant)

	tests := []struct {
		name   string
		modify func(p *model.Product)
	}{
		{"非法状态", func(p *model.Product) { p.Status = "draft" }},
		{"非法平台", func(p *model.Product) { p.Platform = "amazon" }},
		{"价格为零", func(p *model.Product) { p.Price = decimal.Zero }},
		{"佣金比例超过 1", func(p *model.Product) { p.CommissionRate = decimal.RequireFromString("1.5") }},
		{"库存为负", func(p *model.Product) { p.Stock = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &model.Product{
				MerchantID:     merchant.ID,
				Title:          "约束测试",
				Platform:       model.PlatformOther,
				Price:          decimal.RequireFromString("10"),
				CommissionRate: decimal.RequireFromString("0.1"),
				Stock:          1,
				Status:         model.ProductStatusActive,
			}
			tt.modify(p)
			err := repo.Create(ctx, p)
			if !errors.Is(err, ErrCheckViolation) {
				t.Errorf("应触发约束错误, got %v", err)
			}
		})
	}
}

func TestProductRepo_MerchantForeignKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProductRepository(db)

	err := repo.Create(context.Background(), &model.Product{
		MerchantID: uuid.New(),
		Title:      "无主商品",
		Platform:   model.PlatformOther,
		Price:      decimal.RequireFromString("10"),
		Status:     model.ProductStatusActive,
	})
	if !errors.Is(err, ErrForeignKey) {
		t.Errorf("商家不存在应触发外键错误, got %v", err)
	}
}

func TestProductRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	m1 := testutil.CreateUser(t, db, model.RoleMerchant)
	m2 := testutil.CreateUser(t, db, model.RoleMerchant)

	testutil.CreateProduct(t, db, m1.ID, "10.00", 5)
	testutil.CreateProduct(t, db, m1.ID, "50.00", 5)
	cheap := testutil.CreateProduct(t, db, m2.ID, "5.00", 5)
	hidden := testutil.CreateProduct(t, db, m2.ID, "80.00", 5)
	if err := repo.UpdateFields(ctx, hidden.ID, map[string]interface{}{"status": model.ProductStatusInactive}); err != nil {
		t.Fatalf("UpdateFields() error = %v", err)
	}

	// 默认只返回上架商品
	list, total, err := repo.List(ctx, ProductFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 || len(list) != 3 {
		t.Errorf("total = %d, want 3", total)
	}

	// 商家筛选 + 全部状态
	_, total, _ = repo.List(ctx, ProductFilter{MerchantID: &m2.ID, Status: "all"})
	if total != 2 {
		t.Errorf("m2 商品数 = %d, want 2", total)
	}

	// 价格区间
	lo := decimal.RequireFromString("6")
	hi := decimal.RequireFromString("60")
	_, total, _ = repo.List(ctx, ProductFilter{MinPrice: &lo, MaxPrice: &hi})
	if total != 2 {
		t.Errorf("价格区间内商品数 = %d, want 2", total)
	}

	// 按价格升序
	list, _, _ = repo.List(ctx, ProductFilter{SortBy: "price", SortOrder: "asc"})
	if len(list) == 0 || list[0].ID != cheap.ID {
		t.Error("按价格升序第一条应为最便宜的商品")
	}

	// 分页
	list, total, _ = repo.List(ctx, ProductFilter{Pagination: Pagination{Page: 2, PageSize: 2}})
	if total != 3 || len(list) != 1 {
		t.Errorf("第二页 len = %d, want 1", len(list))
	}
}

func TestProductRepo_Stock(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	merchant := testutil.CreateUser(t, db, model.RoleMerchant)
	p := testutil.CreateProduct(t, db, merchant.ID, "10.00", 3)

	ok, err := repo.DecrementStock(ctx, p.ID, 2)
	if err != nil || !ok {
		t.Fatalf("DecrementStock() = %v, %v", ok, err)
	}

	ok, err = repo.DecrementStock(ctx, p.ID, 2)
	if err != nil {
		t.Fatalf("DecrementStock() error = %v", err)
	}
	if ok {
		t.Error("库存不足时不应扣减成功")
	}

	if err := repo.RestoreStock(ctx, p.ID, 2); err != nil {
		t.Fatalf("RestoreStock() error = %v", err)
	}

	found, _ := repo.GetByID(ctx, p.ID)
	if found.Stock != 3 {
		t.Errorf("Stock = %d, want 3", found.Stock)
	}
	if found.SalesCount != 0 {
		t.Errorf("SalesCount = %d, want 0", found.SalesCount)
	}
}

func TestProductRepo_CountByStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	merchant := testutil.CreateUser(t, db, model.RoleMerchant)
	testutil.CreateProduct(t, db, merchant.ID, "10.00", 1)
	p := testutil.CreateProduct(t, db, merchant.ID, "20.00", 1)
	_ = repo.UpdateFields(ctx, p.ID, map[string]interface{}{"status": model.ProductStatusDeleted})

	counts, err := repo.CountByStatus(ctx, merchant.ID)
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}
	if counts[model.ProductStatusActive] != 1 || counts[model.ProductStatusDeleted] != 1 || counts[model.ProductStatusInactive] != 0 {
		t.Errorf("counts = %v", counts)
	}
}

func TestProductRepo_CascadeOnMerchantDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	merchant := testutil.CreateUser(t, db, model.RoleMerchant)
	p := testutil.CreateProduct(t, db, merchant.ID, "10.00", 1)

	if err := db.Delete(&model.User{}, "id = ?", merchant.ID).Error; err != nil {
		t.Fatalf("删除商家失败: %v", err)
	}

	if _, err := repo.GetByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("商家删除后商品应级联删除, got %v", err)
	}
}
