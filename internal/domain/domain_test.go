package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	// 非严格模式：任意合法状态互相可达
	assert.True(t, OrderDelivered.CanTransition(OrderPending, false))
	assert.True(t, OrderCancelled.CanTransition(OrderShipped, false))
	assert.False(t, OrderPending.CanTransition("lost", false))

	assert.True(t, OrderPending.CanTransition(OrderProcessing, true))
	assert.True(t, OrderShipped.CanTransition(OrderDelivered, true))
	assert.False(t, OrderPending.CanTransition(OrderDelivered, true))
	assert.False(t, OrderDelivered.CanTransition(OrderPending, true))
	assert.True(t, OrderDelivered.CanTransition(OrderDelivered, true))
}

func TestCoupon_Discount(t *testing.T) {
	pct := Coupon{Type: CouponPercent, Value: 10}
	assert.Equal(t, 50.0, pct.Discount(500))

	capped := Coupon{Type: CouponPercent, Value: 50, MaxDiscount: 100}
	assert.Equal(t, 100.0, capped.Discount(1000))

	fixed := Coupon{Type: CouponFixed, Value: 300}
	assert.Equal(t, 300.0, fixed.Discount(1000))
	assert.Equal(t, 200.0, fixed.Discount(200))
	assert.Equal(t, 0.0, fixed.Discount(0))
}

func TestCoupon_Rules(t *testing.T) {
	c := Coupon{ProductIDs: []string{"p1", "p2"}}
	assert.True(t, c.AppliesTo([]string{"x", "p2"}))
	assert.False(t, c.AppliesTo([]string{"x"}))
	assert.True(t, Coupon{}.AppliesTo(nil))

	assert.True(t, Coupon{UsageLimit: 2, UsedCount: 2}.Exhausted())
	assert.False(t, Coupon{UsageLimit: 0, UsedCount: 99}.Exhausted())

	now := time.Now()
	past, future := now.Add(-time.Hour), now.Add(time.Hour)
	assert.True(t, Coupon{StartsAt: &past, ExpiresAt: &future}.InWindow(now))
	assert.False(t, Coupon{StartsAt: &future}.InWindow(now))
	assert.False(t, Coupon{ExpiresAt: &past}.InWindow(now))
}

func TestProfiles(t *testing.T) {
	banners := []Banner{
		{ID: "1", Status: StatusPublished, Position: 1},
		{ID: "2", Status: StatusPublished, Position: 5},
		{ID: "3", Status: StatusUnpublished, Position: 2},
	}
	s := BannerProfile.Aggregate(banners)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 1, s.Inactive)
	assert.Equal(t, 2, s.Featured)

	posts := []Post{{FeaturedImage: "a.jpg"}, {}}
	assert.Equal(t, 1, PostProfile.Aggregate(posts).Featured)

	cats := []Category{{ID: "1"}, {ID: "2", ParentID: "1"}}
	assert.Equal(t, 1, CategoryProfile.Aggregate(cats).Featured)
}
