package service

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"yuntuke_server/internal/repository"
	"yuntuke_server/internal/testutil"
)

// ==================== 测试辅助 ====================

// recordingPublisher 记录发布过的事件类型
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType, _ string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) has(eventType string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.events {
		if e == eventType {
			return true
		}
	}
	return false
}

type testEnv struct {
	db          *gorm.DB
	log         *zap.Logger
	pub         *recordingPublisher
	users       repository.UserRepository
	products    repository.ProductRepository
	orders      repository.OrderRepository
	collections repository.CollectionRepository
	samples     repository.SampleRepository
	rels        repository.RelationshipRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	return &testEnv{
		db:          db,
		log:         zaptest.NewLogger(t),
		pub:         &recordingPublisher{},
		users:       repository.NewUserRepository(db),
		products:    repository.NewProductRepository(db),
		orders:      repository.NewOrderRepository(db),
		collections: repository.NewCollectionRepository(db),
		samples:     repository.NewSampleRepository(db),
		rels:        repository.NewRelationshipRepository(db),
	}
}

func (e *testEnv) orderService() *OrderService {
	return NewOrderService(e.orders, e.products, e.users, e.rels, e.pub, e.log)
}

func (e *testEnv) relationshipService() *RelationshipService {
	return NewRelationshipService(e.users, e.rels, e.orders, e.pub, e.log)
}
