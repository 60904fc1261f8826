package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yuntuke_server/internal/model"
)

// 样品申请列表视角
const (
	SampleBoxSent     = "sent"     // 我发出的申请
	SampleBoxReceived = "received" // 我收到的申请
)

// SampleRepository 样品申请仓储接口
type SampleRepository interface {
	Create(ctx context.Context, s *model.SampleRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SampleRequest, error)
	List(ctx context.Context, filter SampleFilter) ([]model.SampleRequest, int64, error)
	HasOpenRequest(ctx context.Context, requesterID, productID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from string, fields map[string]interface{}) (bool, error)
	CountByStatus(ctx context.Context, box string, userID uuid.UUID) (map[string]int64, error)
	CountSince(ctx context.Context, box string, userID uuid.UUID, since time.Time) (int64, error)
}

// SampleFilter 样品申请过滤条件
type SampleFilter struct {
	UserID uuid.UUID
	Box    string
	Status string
	Pagination
}

type sampleRepo struct {
	db *gorm.DB
}

// NewSampleRepository 创建样品申请仓储
func NewSampleRepository(db *gorm.DB) SampleRepository {
	return &sampleRepo{db: db}
}

func (r *sampleRepo) Create(ctx context.Context, s *model.SampleRequest) error {
	return TranslateError(r.db.WithContext(ctx).Create(s).Error)
}

func (r *sampleRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.SampleRequest, error) {
	var s model.SampleRequest
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Requester").
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, TranslateError(err)
	}
	return &s, nil
}

func boxColumn(box string) string {
	if box == SampleBoxReceived {
		return "recipient_id"
	}
	return "requester_id"
}

func (r *sampleRepo) List(ctx context.Context, filter SampleFilter) ([]model.SampleRequest, int64, error) {
	var samples []model.SampleRequest
	var total int64

	query := r.db.WithContext(ctx).
		Model(&model.SampleRequest{}).
		Where(boxColumn(filter.Box)+" = ?", filter.UserID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Product").
		Preload("Requester").
		Order("created_at DESC").
		Scopes(paginate(filter.Pagination)).
		Find(&samples).Error

	return samples, total, err
}

// HasOpenRequest 是否存在待审核或已通过的同商品申请
func (r *sampleRepo) HasOpenRequest(ctx context.Context, requesterID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SampleRequest{}).
		Where("requester_id = ? AND product_id = ? AND status IN ?",
			requesterID, productID, []string{model.SampleStatusPending, model.SampleStatusApproved}).
		Count(&count).Error
	return count > 0, err
}

func (r *sampleRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from string, fields map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.SampleRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	if result.Error != nil {
		return false, TranslateError(result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *sampleRepo) CountByStatus(ctx context.Context, box string, userID uuid.UUID) (map[string]int64, error) {
	type result struct {
		Status string
		Count  int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(&model.SampleRequest{}).
		Select("status, COUNT(*) AS count").
		Where(boxColumn(box)+" = ?", userID).
		Group("status").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(model.SampleStatuses))
	for _, s := range model.SampleStatuses {
		counts[s] = 0
	}
	for _, res := range results {
		counts[res.Status] = res.Count
	}
	return counts, nil
}

// CountSince since 之后新提交的申请数
func (r *sampleRepo) CountSince(ctx context.Context, box string, userID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SampleRequest{}).
		Where(boxColumn(box)+" = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}
