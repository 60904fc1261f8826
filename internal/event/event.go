package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// 事件类型
const (
	OrderCreated        = "order.created"
	OrderStatusChanged  = "order.status_changed"
	SampleRequested     = "sample.requested"
	SampleStatusChanged = "sample.status_changed"
	RelationshipBound   = "relationship.bound"
	RelationshipUnbound = "relationship.unbound"
	InviteCodeRefreshed = "relationship.invite_code_refreshed"
	UserRegistered      = "user.registered"
)

const (
	envelopeVersion = 1
	producerName    = "yuntuke-api"
)

// Envelope 事件信封
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // 一般是订单/申请 ID
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope 包装业务负载
func NewEnvelope(eventType, correlationID string, payload any) (*Envelope, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return &Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  envelopeVersion,
		OccurredAt:    time.Now().UTC(),
		Producer:      producerName,
		CorrelationID: correlationID,
		Payload:       b,
	}, nil
}

// Publisher 领域事件发布
// 发布失败不影响主流程，调用方只记录日志
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
	Close() error
}

// ==================== 负载定义 ====================

type OrderCreatedPayload struct {
	OrderID      string  `json:"order_id"`
	OrderNumber  string  `json:"order_number"`
	BuyerID      string  `json:"buyer_id"`
	MerchantID   string  `json:"merchant_id"`
	InfluencerID *string `json:"influencer_id,omitempty"`
	LeaderID     *string `json:"leader_id,omitempty"`
	TotalAmount  string  `json:"total_amount"`
	Commission   string  `json:"commission_amount"`
}

type StatusChangedPayload struct {
	ID         string `json:"id"`
	Number     string `json:"number"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	OperatorID string `json:"operator_id,omitempty"` // 为空表示系统操作
}

type SampleRequestedPayload struct {
	SampleID     string `json:"sample_id"`
	SampleNumber string `json:"sample_number"`
	ProductID    string `json:"product_id"`
	RequesterID  string `json:"requester_id"`
	RecipientID  string `json:"recipient_id"`
}

type RelationshipPayload struct {
	RelationshipID string `json:"relationship_id"`
	LeaderID       string `json:"leader_id"`
	InfluencerID   string `json:"influencer_id"`
}

type UserPayload struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
