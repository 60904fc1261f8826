package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"yuntuke_server/internal/api/dto"
	"yuntuke_server/internal/event"
	"yuntuke_server/internal/model"
	"yuntuke_server/internal/repository"
)

// ==================== SampleService 样品申请服务 ====================

// SampleService 达人/团长向商家申请样品
type SampleService struct {
	sampleRepo  repository.SampleRepository
	productRepo repository.ProductRepository
	publisher   event.Publisher
	log         *zap.Logger
}

// NewSampleService 创建样品申请服务
func NewSampleService(sampleRepo repository.SampleRepository, productRepo repository.ProductRepository, publisher event.Publisher, log *zap.Logger) *SampleService {
	return &SampleService{
		sampleRepo:  sampleRepo,
		productRepo: productRepo,
		publisher:   publisher,
		log:         log.Named("sample"),
	}
}

// Create 提交样品申请
// 同一商品同时只能有一个待审核或已通过的申请
func (s *SampleService) Create(ctx context.Context, requesterID uuid.UUID, req *dto.CreateSampleRequest) (*model.SampleRequest, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	if product.Status == model.ProductStatusDeleted {
		return nil, ErrProductNotFound
	}
	if product.MerchantID == requesterID {
		return nil, ErrSampleOwnProduct
	}
	if !product.IsAvailable() {
		return nil, ErrProductUnavailable
	}
	if !product.AllowSample {
		return nil, ErrSampleNotAllowed
	}

	open, err := s.sampleRepo.HasOpenRequest(ctx, requesterID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrSampleDuplicate
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	sample := &model.SampleRequest{
		SampleNumber:    generateSampleNumber(),
		ProductID:       product.ID,
		RequesterID:     requesterID,
		RecipientID:     product.MerchantID,
		Quantity:        quantity,
		Reason:          req.Reason,
		ShippingAddress: datatypes.NewJSONType(toShippingAddress(req.ShippingAddress)),
		ContactName:     req.ShippingAddress.Name,
		ContactPhone:    req.ShippingAddress.Phone,
		Status:          model.SampleStatusPending,
	}
	if err := s.sampleRepo.Create(ctx, sample); err != nil {
		return nil, err
	}

	s.log.Info("样品申请已提交",
		zap.String("sample_number", sample.SampleNumber),
		zap.String("product_id", product.ID.String()),
		zap.String("requester_id", requesterID.String()),
	)
	publish(ctx, s.publisher, s.log, event.SampleRequested, sample.ID.String(), event.SampleRequestedPayload{
		SampleID:     sample.ID.String(),
		SampleNumber: sample.SampleNumber,
		ProductID:    product.ID.String(),
		RequesterID:  requesterID.String(),
		RecipientID:  product.MerchantID.String(),
	})

	return s.sampleRepo.GetByID(ctx, sample.ID)
}

// Get 申请详情，仅申请方和商家可见
func (s *SampleService) Get(ctx context.Context, userID, id uuid.UUID) (*model.SampleRequest, error) {
	sample, err := s.sampleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrSampleNotFound)
	}
	if sample.RequesterID != userID && sample.RecipientID != userID {
		return nil, ErrSampleNotFound
	}
	return sample, nil
}

// List 申请列表，box 为空时商家看收到的，其他角色看发出的
func (s *SampleService) List(ctx context.Context, userID uuid.UUID, role string, q *dto.SampleListQuery) (*dto.PageResult[model.SampleRequest], error) {
	box := q.Box
	if box == "" {
		box = defaultSampleBox(role)
	}
	if q.Status != "" && !model.ValidSampleStatus(q.Status) {
		return nil, ErrInvalidParams.WithMessage("无效的状态: %s", q.Status)
	}

	filter := repository.SampleFilter{
		UserID: userID,
		Box:    box,
		Status: q.Status,
		Pagination: repository.Pagination{
			Page:     q.Page,
			PageSize: q.PageSize,
		},
	}
	samples, total, err := s.sampleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	filter.Pagination.Normalize()
	return dto.NewPageResult(samples, total, filter.Page, filter.PageSize), nil
}

// 商家（接收方）可执行的流转
var recipientSampleTransitions = map[string]map[string]bool{
	model.SampleStatusPending:  {model.SampleStatusApproved: true, model.SampleStatusRejected: true},
	model.SampleStatusApproved: {model.SampleStatusShipped: true},
}

// 申请方可执行的流转
var requesterSampleTransitions = map[string]map[string]bool{
	model.SampleStatusPending:  {model.SampleStatusCancelled: true},
	model.SampleStatusApproved: {model.SampleStatusCancelled: true, model.SampleStatusCompleted: true},
	model.SampleStatusShipped:  {model.SampleStatusCompleted: true},
}

// UpdateStatus 审核、寄出、取消或确认收货
func (s *SampleService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateSampleStatusRequest) (*model.SampleRequest, error) {
	sample, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	from, to := sample.Status, req.Status
	if !model.CanSampleTransition(from, to) {
		return nil, ErrInvalidSampleTransition.WithMessage("样品申请状态 %s 不能变更为 %s", from, to)
	}

	var allowed bool
	switch userID {
	case sample.RecipientID:
		allowed = recipientSampleTransitions[from][to]
	case sample.RequesterID:
		allowed = requesterSampleTransitions[from][to]
	}
	if !allowed {
		return nil, ErrForbidden
	}

	now := time.Now()
	fields := map[string]interface{}{"status": to}
	switch to {
	case model.SampleStatusApproved, model.SampleStatusRejected:
		fields["reviewed_at"] = now
		fields["review_note"] = strings.TrimSpace(req.Note)
	case model.SampleStatusShipped:
		fields["shipped_at"] = now
		fields["tracking_number"] = strings.TrimSpace(req.TrackingNumber)
	case model.SampleStatusCompleted:
		fields["completed_at"] = now
	}

	ok, err := s.sampleRepo.UpdateStatus(ctx, id, from, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSampleStatusChanged
	}

	s.log.Info("样品申请状态变更",
		zap.String("sample_number", sample.SampleNumber),
		zap.String("from", from),
		zap.String("to", to),
	)
	publish(ctx, s.publisher, s.log, event.SampleStatusChanged, id.String(), event.StatusChangedPayload{
		ID:         id.String(),
		Number:     sample.SampleNumber,
		FromStatus: from,
		ToStatus:   to,
		OperatorID: userID.String(),
	})

	return s.sampleRepo.GetByID(ctx, id)
}

func defaultSampleBox(role string) string {
	if role == model.RoleMerchant {
		return repository.SampleBoxReceived
	}
	return repository.SampleBoxSent
}

// generateSampleNumber SP + UTC 时间 + 8 位随机字符
func generateSampleNumber() string {
	return "SP" + time.Now().UTC().Format("20060102150405") + randomHex(4)
}

// ==================== 统计 ====================

// Overview 发出和收到的样品申请统计
func (s *SampleService) Overview(ctx context.Context, userID uuid.UUID, days int) (*dto.SampleOverview, error) {
	days, since := statsWindow(days)

	sent, err := s.boxStats(ctx, repository.SampleBoxSent, userID, since)
	if err != nil {
		return nil, err
	}
	received, err := s.boxStats(ctx, repository.SampleBoxReceived, userID, since)
	if err != nil {
		return nil, err
	}
	return &dto.SampleOverview{Days: days, Sent: sent, Received: received}, nil
}

func (s *SampleService) boxStats(ctx context.Context, box string, userID uuid.UUID, since time.Time) (*dto.SampleBoxStats, error) {
	counts, err := s.sampleRepo.CountByStatus(ctx, box, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.sampleRepo.CountSince(ctx, box, userID, since)
	if err != nil {
		return nil, err
	}

	stats := &dto.SampleBoxStats{StatusCounts: counts, Recent: recent}
	for _, n := range counts {
		stats.Total += n
	}
	stats.ApprovalRate = approvalRate(counts)
	return stats, nil
}

// approvalRate 通过数 / (通过数 + 拒绝数)，待审核和已取消的不计入
func approvalRate(counts map[string]int64) float64 {
	approved := counts[model.SampleStatusApproved] + counts[model.SampleStatusShipped] + counts[model.SampleStatusCompleted]
	reviewed := approved + counts[model.SampleStatusRejected]
	if reviewed == 0 {
		return 0
	}
	return float64(approved) / float64(reviewed)
}
