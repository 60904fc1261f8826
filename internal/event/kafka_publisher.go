package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher 通过 kafka-go 异步写入
type KafkaPublisher struct {
	w   *kafka.Writer
	log *zap.Logger
}

// NewKafkaPublisher 同一业务 ID 的事件按 key 哈希到同一分区，保证顺序
func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	log = log.Named("kafka")
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 50 * time.Millisecond,
			Async:        true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					log.Error("写入事件失败", zap.Int("count", len(messages)), zap.Error(err))
				}
			},
		},
		log: log,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType, key string, payload any) error {
	msg, err := buildMessage(eventType, key, payload)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

// Close 刷出缓冲区中的消息
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

func buildMessage(eventType, key string, payload any) (kafka.Message, error) {
	env, err := NewEnvelope(eventType, key, payload)
	if err != nil {
		return kafka.Message{}, err
	}
	b, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: b,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(eventType)},
			{Key: "x-event-version", Value: []byte(strconv.Itoa(env.EventVersion))},
		},
	}, nil
}

// NewPublisher 有 broker 配置时用 Kafka，否则退化为日志
func NewPublisher(brokers []string, topic string, log *zap.Logger) Publisher {
	if len(brokers) == 0 {
		return NewLogPublisher(log)
	}
	return NewKafkaPublisher(brokers, topic, log)
}
