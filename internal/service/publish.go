package service

import (
	"context"

	"go.uber.org/zap"

	"yuntuke_server/internal/event"
)

// publish 发布领域事件，失败只记录日志
func publish(ctx context.Context, pub event.Publisher, log *zap.Logger, eventType, key string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, eventType, key, payload); err != nil {
		log.Warn("发布事件失败", zap.String("event_type", eventType), zap.String("key", key), zap.Error(err))
	}
}
