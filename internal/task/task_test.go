package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/event"
	"yuntuke_server/internal/model"
	"yuntuke_server/internal/repository"
	"yuntuke_server/internal/service"
	"yuntuke_server/internal/testutil"
)

// ==================== 辅助类型 ====================

// fakeCanceller 按预设结果依次返回
type fakeCanceller struct {
	mu      sync.Mutex
	results []int
	err     error
	calls   int
	timeout time.Duration
	batch   int
}

func (f *fakeCanceller) CancelExpired(_ context.Context, timeout time.Duration, batch int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timeout, f.batch = timeout, batch
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	if len(f.results) == 0 {
		return 0, nil
	}
	n := f.results[0]
	f.results = f.results[1:]
	return n, nil
}

// ==================== OrderTimeoutTask ====================

func TestOrderTimeoutTask_RunOnce_DrainsFullBatches(t *testing.T) {
	f := &fakeCanceller{results: []int{2, 2, 1}}
	task := NewOrderTimeoutTask(f, "", 15*time.Minute, zaptest.NewLogger(t))
	task.SetBatchSize(2)

	n, err := task.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 3, f.calls)
	assert.Equal(t, 15*time.Minute, f.timeout)
	assert.Equal(t, 2, f.batch)
}

func TestOrderTimeoutTask_RunOnce_Error(t *testing.T) {
	f := &fakeCanceller{err: errors.New("db down")}
	task := NewOrderTimeoutTask(f, "", time.Minute, zaptest.NewLogger(t))

	_, err := task.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, f.calls)
}

func TestOrderTimeoutTask_StartRejectsBadSpec(t *testing.T) {
	task := NewOrderTimeoutTask(&fakeCanceller{}, "not a cron", time.Minute, zaptest.NewLogger(t))
	assert.Error(t, task.Start())
}

func TestOrderTimeoutTask_StartAcceptsCronFormats(t *testing.T) {
	specs := []string{
		"*/5 * * * *",   // 标准 5 段
		"0 */5 * * * *", // 带秒
		"@every 30s",
		"@hourly",
	}
	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			task := NewOrderTimeoutTask(&fakeCanceller{}, spec, time.Minute, zaptest.NewLogger(t))
			require.NoError(t, task.Start())
			task.Stop()
		})
	}
}

func TestOrderTimeoutTask_StartStop(t *testing.T) {
	task := NewOrderTimeoutTask(&fakeCanceller{}, "@every 1h", time.Minute, zaptest.NewLogger(t))
	require.NoError(t, task.Start())
	task.Stop()
}

// 真实订单服务：超时订单被取消并回补库存
func TestOrderTimeoutTask_WithOrderService(t *testing.T) {
	db := testutil.NewTestDB(t)
	log := zaptest.NewLogger(t)
	ctx := context.Background()

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	svc := service.NewOrderService(
		orderRepo,
		productRepo,
		repository.NewUserRepository(db),
		repository.NewRelationshipRepository(db),
		event.NewLogPublisher(log),
		log,
	)

	merchant := testutil.CreateUser(t, db, model.RoleMerchant)
	buyer := testutil.CreateUser(t, db, model.RoleInfluencer)
	p := testutil.CreateProduct(t, db, merchant.ID, "19.90", 5)

	order, err := svc.Create(ctx, buyer.ID, &dto.CreateOrderRequest{
		MerchantID: merchant.ID,
		Items:      []dto.OrderItemRequest{{ProductID: p.ID, Quantity: 3}},
		ShippingAddress: dto.AddressRequest{
			Name:     "李四",
			Phone:    "13900139000",
			Province: "广东省",
			City:     "深圳市",
			District: "南山区",
			Detail:   "科技园 1 号",
		},
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.Order{}).
		Where("id = ?", order.ID).
		UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)

	tm := NewTaskManager(&TaskManagerDeps{Orders: svc, Log: log}, &TaskManagerConfig{
		OrderTimeoutEnabled: true,
		OrderTimeoutCron:    "@every 1h",
		OrderPayTimeout:     30 * time.Minute,
		OrderBatchSize:      10,
	})
	n, err := tm.TriggerOrderTimeout(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, got.Status)
	assert.NotNil(t, got.CancelledAt)

	product, err := productRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, product.Stock)
}

// ==================== TaskManager ====================

func TestTaskManager_Disabled(t *testing.T) {
	tm := NewTaskManager(&TaskManagerDeps{}, nil)
	assert.False(t, tm.Status()["order_timeout"])

	_, err := tm.TriggerOrderTimeout(context.Background())
	assert.ErrorIs(t, err, ErrTaskDisabled)

	require.NoError(t, tm.Start())
	tm.Stop()
}

func TestTaskManager_DefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	tm := NewTaskManager(&TaskManagerDeps{Orders: &fakeCanceller{}}, cfg)
	assert.True(t, tm.Status()["order_timeout"])
	assert.Equal(t, 30*time.Minute, cfg.OrderPayTimeout)
}
