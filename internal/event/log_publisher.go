package event

import (
	"context"

	"go.uber.org/zap"
)

// LogPublisher 未配置 Kafka 时使用，事件只写日志
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log.Named("event")}
}

func (p *LogPublisher) Publish(_ context.Context, eventType, key string, payload any) error {
	env, err := NewEnvelope(eventType, key, payload)
	if err != nil {
		return err
	}
	p.log.Info("domain event",
		zap.String("event_id", env.EventID),
		zap.String("event_type", env.EventType),
		zap.String("key", key),
		zap.ByteString("payload", env.Payload),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
