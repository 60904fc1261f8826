package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/event"
	"yuntuke_server/internal/model"
	"yuntuke_server/internal/repository"
)

// ==================== OrderService 订单服务 ====================

// OrderService 下单、状态流转与统计
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	relRepo     repository.RelationshipRepository
	publisher   event.Publisher
	log         *zap.Logger
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	relRepo repository.RelationshipRepository,
	publisher event.Publisher,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		relRepo:     relRepo,
		publisher:   publisher,
		log:         log.Named("order"),
	}
}

// ==================== 下单 ====================

// Create 创建订单
// 商品价格和佣金比例在下单时快照，库存在同一事务内条件扣减
func (s *OrderService) Create(ctx context.Context, buyerID uuid.UUID, req *dto.CreateOrderRequest) (*model.Order, error) {
	if buyerID == req.MerchantID {
		return nil, ErrSelfPurchase
	}

	quantities := make(map[uuid.UUID]int, len(req.Items))
	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, it := range req.Items {
		if _, dup := quantities[it.ProductID]; dup {
			return nil, ErrDuplicateOrderItem
		}
		quantities[it.ProductID] = it.Quantity
		ids = append(ids, it.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// 推广归属：达人及其当前团长
	influencerID, leaderID, err := s.resolveAttribution(ctx, buyerID, req.InfluencerID)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		OrderNumber:      generateOrderNumber(),
		BuyerID:          buyerID,
		MerchantID:       req.MerchantID,
		InfluencerID:     influencerID,
		LeaderID:         leaderID,
		Status:           model.OrderStatusPending,
		TotalAmount:      decimal.Zero,
		CommissionAmount: decimal.Zero,
		ShippingAddress:  datatypes.NewJSONType(toShippingAddress(req.ShippingAddress)),
		Remark:           req.Remark,
		Items:            make([]model.OrderItem, 0, len(req.Items)),
	}

	for _, it := range req.Items {
		p, ok := byID[it.ProductID]
		if !ok || p.Status == model.ProductStatusDeleted {
			return nil, ErrProductNotFound.WithMessage("商品不存在: %s", it.ProductID)
		}
		if p.MerchantID != req.MerchantID {
			return nil, ErrOrderMerchantMismatch
		}
		if !p.IsAvailable() {
			return nil, ErrProductUnavailable.WithMessage("商品已下架: %s", p.Title)
		}
		if p.Stock < it.Quantity {
			return nil, ErrInsufficientStock.WithMessage("库存不足: %s", p.Title)
		}

		subtotal := p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
		commission := decimal.Zero
		if influencerID != nil {
			commission = p.CommissionFor(subtotal)
		}

		order.Items = append(order.Items, model.OrderItem{
			ProductID:        p.ID,
			ProductTitle:     p.Title,
			ProductImage:     p.CoverImage(),
			UnitPrice:        p.Price,
			Quantity:         it.Quantity,
			CommissionRate:   p.CommissionRate,
			Subtotal:         subtotal,
			CommissionAmount: commission,
		})
		order.TotalAmount = order.TotalAmount.Add(subtotal)
		order.CommissionAmount = order.CommissionAmount.Add(commission)
	}

	// 按商品 ID 顺序加锁，避免并发下单死锁
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	err = s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		productTx := s.productRepo.WithTx(tx)
		for _, id := range ids {
			ok, err := productTx.DecrementStock(ctx, id, quantities[id])
			if err != nil {
				return err
			}
			if !ok {
				return ErrInsufficientStock.WithMessage("库存不足: %s", byID[id].Title)
			}
		}
		return s.orderRepo.WithTx(tx).Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("订单已创建",
		zap.String("order_number", order.OrderNumber),
		zap.String("buyer_id", buyerID.String()),
		zap.String("total", order.TotalAmount.StringFixed(2)),
	)
	publish(ctx, s.publisher, s.log, event.OrderCreated, order.ID.String(), event.OrderCreatedPayload{
		OrderID:      order.ID.String(),
		OrderNumber:  order.OrderNumber,
		BuyerID:      buyerID.String(),
		MerchantID:   req.MerchantID.String(),
		InfluencerID: uuidString(influencerID),
		LeaderID:     uuidString(leaderID),
		TotalAmount:  order.TotalAmount.StringFixed(2),
		Commission:   order.CommissionAmount.StringFixed(2),
	})

	return s.orderRepo.GetByID(ctx, order.ID)
}

// resolveAttribution 校验推广达人并查找其团长
// 买家不能把订单归属给自己，否则会拿到自购佣金
func (s *OrderService) resolveAttribution(ctx context.Context, buyerID uuid.UUID, influencerID *uuid.UUID) (*uuid.UUID, *uuid.UUID, error) {
	if influencerID == nil || *influencerID == uuid.Nil {
		return nil, nil, nil
	}
	if *influencerID == buyerID {
		return nil, nil, ErrInvalidInfluencer.WithMessage("不能将自己设为推广达人")
	}

	influencer, err := s.userRepo.GetByID(ctx, *influencerID)
	if err != nil {
		return nil, nil, notFound(err, ErrInvalidInfluencer)
	}
	if !influencer.IsInfluencer() || !influencer.IsActive {
		return nil, nil, ErrInvalidInfluencer
	}

	id := influencer.ID
	rel, err := s.relRepo.GetActiveByInfluencer(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &id, nil, nil
		}
		return nil, nil, err
	}
	leaderID := rel.LeaderID
	return &id, &leaderID, nil
}

// ==================== 查询 ====================

// Get 订单详情，仅订单相关方可见
func (s *OrderService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	if !order.IsParticipant(userID) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List 订单列表，view 为空时按角色选择视角
func (s *OrderService) List(ctx context.Context, userID uuid.UUID, role string, q *dto.OrderListQuery) (*dto.PageResult[model.Order], error) {
	view := q.View
	if view == "" {
		view = defaultOrderView(role)
	}
	if !repository.ValidOrderView(view) {
		return nil, ErrInvalidParams.WithMessage("无效的视角: %s", view)
	}
	if q.Status != "" && !model.ValidOrderStatus(q.Status) {
		return nil, ErrInvalidParams.WithMessage("无效的状态: %s", q.Status)
	}

	filter := repository.OrderFilter{
		UserID: userID,
		View:   view,
		Status: q.Status,
		Pagination: repository.Pagination{
			Page:     q.Page,
			PageSize: q.PageSize,
		},
	}
	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	filter.Pagination.Normalize()
	return dto.NewPageResult(orders, total, filter.Page, filter.PageSize), nil
}

// Stats 订单统计
func (s *OrderService) Stats(ctx context.Context, userID uuid.UUID, role, view string) (*dto.OrderStats, error) {
	if view == "" {
		view = defaultOrderView(role)
	}
	if !repository.ValidOrderView(view) {
		return nil, ErrInvalidParams.WithMessage("无效的视角: %s", view)
	}
	st, err := s.orderRepo.Stats(ctx, view, userID)
	if err != nil {
		return nil, err
	}
	return toOrderStats(view, st), nil
}

// ==================== 状态流转 ====================

// 买家可执行的流转
var buyerTransitions = map[string]map[string]bool{
	model.OrderStatusPending: {model.OrderStatusPaid: true, model.OrderStatusCancelled: true},
	model.OrderStatusShipped: {model.OrderStatusCompleted: true},
}

// 商家可执行的流转
var merchantTransitions = map[string]map[string]bool{
	model.OrderStatusPending: {model.OrderStatusCancelled: true},
	model.OrderStatusPaid:    {model.OrderStatusShipped: true, model.OrderStatusCancelled: true, model.OrderStatusRefunded: true},
	model.OrderStatusShipped: {model.OrderStatusRefunded: true},
}

// UpdateStatus 买家/商家变更订单状态
func (s *OrderService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateOrderStatusRequest) (*model.Order, error) {
	order, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	to := req.Status
	if !model.CanOrderTransition(order.Status, to) {
		return nil, ErrInvalidOrderTransition.WithMessage("订单状态 %s 不能变更为 %s", order.Status, to)
	}

	var allowed bool
	switch userID {
	case order.BuyerID:
		allowed = buyerTransitions[order.Status][to]
	case order.MerchantID:
		allowed = merchantTransitions[order.Status][to]
	}
	if !allowed {
		return nil, ErrForbidden
	}

	fields := map[string]interface{}{"status": to}
	if to == model.OrderStatusShipped {
		fields["tracking_number"] = strings.TrimSpace(req.TrackingNumber)
		fields["shipping_company"] = strings.TrimSpace(req.ShippingCompany)
	}

	if err := s.transition(ctx, order, to, fields, userID.String()); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, id)
}

// CancelExpired 取消超时未支付订单并回补库存，返回取消数量
func (s *OrderService) CancelExpired(ctx context.Context, timeout time.Duration, batch int) (int, error) {
	orders, err := s.orderRepo.ListExpiredPending(ctx, time.Now().Add(-timeout), batch)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for i := range orders {
		order := &orders[i]
		fields := map[string]interface{}{"status": model.OrderStatusCancelled}
		err := s.transition(ctx, order, model.OrderStatusCancelled, fields, "")
		switch {
		case err == nil:
			cancelled++
		case errors.Is(err, ErrOrderStatusChanged):
			// 买家刚好在此期间支付
		default:
			s.log.Error("取消超时订单失败", zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
	}
	return cancelled, nil
}

// transition 条件更新状态，取消/退款时在同一事务内回补库存
func (s *OrderService) transition(ctx context.Context, order *model.Order, to string, fields map[string]interface{}, operatorID string) error {
	now := time.Now()
	switch to {
	case model.OrderStatusPaid:
		fields["paid_at"] = now
	case model.OrderStatusShipped:
		fields["shipped_at"] = now
	case model.OrderStatusCompleted:
		fields["completed_at"] = now
	case model.OrderStatusCancelled, model.OrderStatusRefunded:
		fields["cancelled_at"] = now
	}

	from := order.Status
	err := s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		ok, err := s.orderRepo.WithTx(tx).UpdateStatus(ctx, order.ID, from, fields)
		if err != nil {
			return err
		}
		if !ok {
			return ErrOrderStatusChanged
		}

		if model.RestoresStock(to) {
			productTx := s.productRepo.WithTx(tx)
			for _, item := range order.Items {
				if err := productTx.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("订单状态变更",
		zap.String("order_number", order.OrderNumber),
		zap.String("from", from),
		zap.String("to", to),
		zap.String("operator", operatorID),
	)
	publish(ctx, s.publisher, s.log, event.OrderStatusChanged, order.ID.String(), event.StatusChangedPayload{
		ID:         order.ID.String(),
		Number:     order.OrderNumber,
		FromStatus: from,
		ToStatus:   to,
		OperatorID: operatorID,
	})
	return nil
}

// ==================== 辅助函数 ====================

// generateOrderNumber YTK + UTC 时间 + 6 位随机十六进制
func generateOrderNumber() string {
	return "YTK" + time.Now().UTC().Format("20060102150405") + randomHex(3)
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand 失败时退化为 uuid
		return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:n*2])
	}
	return strings.ToUpper(hex.EncodeToString(b))
}

func toShippingAddress(a dto.AddressRequest) model.ShippingAddress {
	return model.ShippingAddress{
		Name:     a.Name,
		Phone:    a.Phone,
		Province: a.Province,
		City:     a.City,
		District: a.District,
		Detail:   a.Detail,
		Postcode: a.Postcode,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
