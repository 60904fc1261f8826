package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"yuntuke_server/internal/model"
	"yuntuke_server/internal/testutil"
)

func TestSampleRepo_Lifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSampleRepository(db)
	ctx := context.Background()

	merchant := testutil.CreateUser(t, db, model.RoleMerchant)
	influencer := testutil.CreateUser(t, db, model.RoleInfluencer)
	p := testutil.CreateProduct(t, db, merchant.ID, "99.00", 10)

	s := &model.SampleRequest{
		SampleNumber: "SP20240101120000ABCDEF12",
		ProductID:    p.ID,
		RequesterID:  influencer.ID,
		RecipientID:  merchant.ID,
		Quantity:     1,
		Reason:       "直播测评",
		Status:       model.SampleStatusPending,
	}
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	open, err := repo.HasOpenRequest(ctx, influencer.ID, p.ID)
	if err != nil || !open {
		t.Errorf("HasOpenRequest() = %v, %v", open, err)
	}

	sent, total, _ := repo.List(ctx, SampleFilter{UserID: influencer.ID, Box: SampleBoxSent})
	if total != 1 || sent[0].Product == nil {
		t.Errorf("发出的申请数 = %d", total)
	}
	_, total, _ = repo.List(ctx, SampleFilter{UserID: merchant.ID, Box: SampleBoxReceived})
	if total != 1 {
		t.Errorf("收到的申请数 = %d", total)
	}
	_, total, _ = repo.List(ctx, SampleFilter{UserID: merchant.ID, Box: SampleBoxSent})
	if total != 0 {
		t.Errorf("商家发出的申请数 = %d, want 0", total)
	}

	ok, err := repo.UpdateStatus(ctx, s.ID, model.SampleStatusPending, map[string]interface{}{"status": model.SampleStatusRejected})
	if err != nil || !ok {
		t.Fatalf("UpdateStatus() = %v, %v", ok, err)
	}

	open, _ = repo.HasOpenRequest(ctx, influencer.ID, p.ID)
	if open {
		t.Error("已拒绝的申请不应视为进行中")
	}

	counts, _ := repo.CountByStatus(ctx, SampleBoxReceived, merchant.ID)
	if counts[model.SampleStatusRejected] != 1 || counts[model.SampleStatusPending] != 0 {
		t.Errorf("counts = %v", counts)
	}

	_, err = repo.UpdateStatus(ctx, s.ID, model.SampleStatusRejected, map[string]interface{}{"status": "lost"})
	if !errors.Is(err, ErrCheckViolation) {
		t.Errorf("非法状态应被拒绝, got %v", err)
	}
}

func TestSampleRepo_CountSince(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSampleRepository(db)
	ctx := context.Background()

	merchant := testutil.CreateUser(t, db, model.RoleMerchant)
	influencer := testutil.CreateUser(t, db, model.RoleInfluencer)

	var samples []*model.SampleRequest
	for i, number := range []string{"SP20240101120000AAAAAAA1", "SP20240101120000AAAAAAA2"} {
		p := testutil.CreateProduct(t, db, merchant.ID, "99.00", 10)
		s := &model.SampleRequest{
			SampleNumber: number,
			ProductID:    p.ID,
			RequesterID:  influencer.ID,
			RecipientID:  merchant.ID,
			Quantity:     1,
			Status:       model.SampleStatusPending,
		}
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create(%d) error = %v", i, err)
		}
		samples = append(samples, s)
	}
	if err := db.Model(samples[0]).UpdateColumn("created_at", time.Now().AddDate(0, -3, 0)).Error; err != nil {
		t.Fatalf("UpdateColumn() error = %v", err)
	}

	since := time.Now().AddDate(0, 0, -30)
	tests := []struct {
		box    string
		userID uuid.UUID
		want   int64
	}{
		{SampleBoxSent, influencer.ID, 1},
		{SampleBoxReceived, merchant.ID, 1},
		{SampleBoxSent, merchant.ID, 0},
	}
	for _, tt := range tests {
		got, err := repo.CountSince(ctx, tt.box, tt.userID, since)
		if err != nil {
			t.Fatalf("CountSince(%s) error = %v", tt.box, err)
		}
		if got != tt.want {
			t.Errorf("CountSince(%s) = %d, want %d", tt.box, got, tt.want)
		}
	}
}
