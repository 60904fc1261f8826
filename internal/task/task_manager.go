package task

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理后台定时任务
type TaskManager struct {
	orderTimeout *OrderTimeoutTask
	log          *zap.Logger
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	Orders ExpiredOrderCanceller
	Log    *zap.Logger
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	// 超时订单取消
	OrderTimeoutEnabled bool
	OrderTimeoutCron    string
	OrderPayTimeout     time.Duration
	OrderBatchSize      int
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		OrderTimeoutEnabled: true,
		OrderTimeoutCron:    "@every 1m",
		OrderPayTimeout:     30 * time.Minute,
		OrderBatchSize:      100,
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	tm := &TaskManager{log: log.Named("task")}

	if cfg.OrderTimeoutEnabled && deps.Orders != nil && cfg.OrderPayTimeout > 0 {
		tm.orderTimeout = NewOrderTimeoutTask(deps.Orders, cfg.OrderTimeoutCron, cfg.OrderPayTimeout, tm.log)
		tm.orderTimeout.SetBatchSize(cfg.OrderBatchSize)
	}

	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务
func (tm *TaskManager) Start() error {
	tm.log.Info("正在启动后台任务")

	if tm.orderTimeout != nil {
		if err := tm.orderTimeout.Start(); err != nil {
			return err
		}
	}

	tm.log.Info("后台任务已全部启动", zap.Any("tasks", tm.Status()))
	return nil
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	if tm.orderTimeout != nil {
		tm.orderTimeout.Stop()
	}
	tm.log.Info("后台任务已全部停止")
}

// ==================== 手动触发接口 ====================

// TriggerOrderTimeout 立即执行一轮超时订单取消
func (tm *TaskManager) TriggerOrderTimeout(ctx context.Context) (int, error) {
	if tm.orderTimeout == nil {
		return 0, ErrTaskDisabled
	}
	return tm.orderTimeout.RunOnce(ctx)
}

// ==================== 状态查询 ====================

// Status 获取任务启用状态
func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"order_timeout": tm.orderTimeout != nil,
	}
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled TaskError = "task is disabled"
)
