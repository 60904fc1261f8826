package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanOrderTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPaid, OrderStatusShipped, true},
		{OrderStatusPaid, OrderStatusRefunded, true},
		{OrderStatusPaid, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusCompleted, true},
		{OrderStatusShipped, OrderStatusRefunded, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusRefunded, false},
		{OrderStatusCancelled, OrderStatusPaid, false},
		{"unknown", OrderStatusPaid, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanOrderTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCanSampleTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{SampleStatusPending, SampleStatusApproved, true},
		{SampleStatusPending, SampleStatusRejected, true},
		{SampleStatusPending, SampleStatusCancelled, true},
		{SampleStatusPending, SampleStatusShipped, false},
		{SampleStatusApproved, SampleStatusShipped, true},
		{SampleStatusApproved, SampleStatusCompleted, true},
		{SampleStatusShipped, SampleStatusCompleted, true},
		{SampleStatusShipped, SampleStatusCancelled, false},
		{SampleStatusRejected, SampleStatusApproved, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanSampleTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOrder_IsParticipant(t *testing.T) {
	buyer, merchant, influencer, leader := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	o := &Order{BuyerID: buyer, MerchantID: merchant, InfluencerID: &influencer}

	assert.True(t, o.IsParticipant(buyer))
	assert.True(t, o.IsParticipant(merchant))
	assert.True(t, o.IsParticipant(influencer))
	assert.False(t, o.IsParticipant(leader))

	o.LeaderID = &leader
	assert.True(t, o.IsParticipant(leader))
}

func TestProduct_CommissionFor(t *testing.T) {
	p := &Product{CommissionRate: decimal.RequireFromString("0.15")}
	assert.True(t, decimal.RequireFromString("29.85").Equal(p.CommissionFor(decimal.RequireFromString("199"))))

	p.CommissionRate = decimal.RequireFromString("0.1234")
	assert.Equal(t, "1.23", p.CommissionFor(decimal.RequireFromString("9.99")).StringFixed(2))
}

func TestUser_Profile(t *testing.T) {
	u := &User{ProfileData: map[string]interface{}{
		"category":   "beauty",
		"fans_count": float64(12000),
	}}
	assert.Equal(t, "beauty", u.ProfileString("category"))
	assert.Equal(t, int64(12000), u.ProfileInt("fans_count"))
	assert.Equal(t, "", u.ProfileString("missing"))

	empty := &User{}
	assert.Equal(t, int64(0), empty.ProfileInt("fans_count"))
}

func TestCollection_VisibleTo(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	c := &Collection{LeaderID: owner, IsPublic: false, Status: CollectionStatusActive}

	assert.True(t, c.VisibleTo(owner))
	assert.False(t, c.VisibleTo(other))

	c.IsPublic = true
	assert.True(t, c.VisibleTo(other))

	c.Status = CollectionStatusArchived
	assert.False(t, c.VisibleTo(other))
}
