package task

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ==================== OrderTimeoutTask 超时订单取消任务 ====================

// specParser 兼容标准 5 段、带秒的 6 段表达式以及 @every 等描述符
var specParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ExpiredOrderCanceller 取消超时未支付订单
type ExpiredOrderCanceller interface {
	CancelExpired(ctx context.Context, timeout time.Duration, batch int) (int, error)
}

// OrderTimeoutTask 定时取消超过支付时限的待支付订单并回补库存
type OrderTimeoutTask struct {
	orders  ExpiredOrderCanceller
	cron    *cron.Cron
	log     *zap.Logger
	spec    string
	timeout time.Duration
	batch   int

	// 同一时刻只跑一轮
	running sync.Mutex
}

// NewOrderTimeoutTask 创建超时订单任务
func NewOrderTimeoutTask(orders ExpiredOrderCanceller, spec string, timeout time.Duration, log *zap.Logger) *OrderTimeoutTask {
	if spec == "" {
		spec = "@every 1m"
	}
	return &OrderTimeoutTask{
		orders:  orders,
		cron:    cron.New(cron.WithParser(specParser)),
		log:     log.Named("order_timeout"),
		spec:    spec,
		timeout: timeout,
		batch:   100,
	}
}

// SetBatchSize 设置每轮最多处理的订单数
func (t *OrderTimeoutTask) SetBatchSize(n int) {
	if n > 0 {
		t.batch = n
	}
}

// Start 启动定时任务
func (t *OrderTimeoutTask) Start() error {
	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := t.RunOnce(ctx); err != nil {
			t.log.Error("取消超时订单失败", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	t.cron.Start()
	t.log.Info("已启动", zap.String("spec", t.spec), zap.Duration("pay_timeout", t.timeout))
	return nil
}

// Stop 停止任务，等待正在执行的一轮结束
func (t *OrderTimeoutTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.log.Info("已停止")
}

// RunOnce 执行一轮，批次满时继续处理直到清空
func (t *OrderTimeoutTask) RunOnce(ctx context.Context) (int, error) {
	if !t.running.TryLock() {
		return 0, nil
	}
	defer t.running.Unlock()

	total := 0
	for {
		n, err := t.orders.CancelExpired(ctx, t.timeout, t.batch)
		total += n
		if err != nil {
			return total, err
		}
		// 本批有失败或未满一批时结束，避免对同一批失败订单空转
		if n < t.batch || ctx.Err() != nil {
			break
		}
	}

	if total > 0 {
		t.log.Info("已取消超时订单", zap.Int("count", total))
	}
	return total, nil
}
