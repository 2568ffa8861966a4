package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/repo"
	"go-shop-admin/pkg/utils"
)

func seedCoupon(t *testing.T, s *CouponService, c domain.Coupon) *domain.Coupon {
	t.Helper()
	c.ID = utils.NewID()
	require.NoError(t, NormalizeCoupon(&c))
	require.NoError(t, s.repo.Create(ctx(), &c))
	return &c
}

func checkoutInput(items ...CheckoutItem) CheckoutInput {
	return CheckoutInput{
		CustomerName: "Nguyen Van A", CustomerEmail: "a@example.com", CustomerPhone: "0900000000",
		ShippingAddress: "1 Le Loi", PaymentMethod: domain.MethodCOD, Items: items,
	}
}

func TestOrder_CheckoutAppliesCouponAndStock(t *testing.T) {
	svc, _ := newTestServices(t, Options{})
	p, err := svc.Products.Create(ctx(), ProductInput{Name: "Shirt", Price: 100, SalePrice: 80, Stock: 3})
	require.NoError(t, err)
	seedCoupon(t, svc.Coupons, domain.Coupon{Code: "sale10", Type: domain.CouponPercent, Value: 10, Active: true, UsageLimit: 1})

	in := checkoutInput(CheckoutItem{ProductID: p.ID, Quantity: 2})
	in.CouponCode = "SALE10"
	o, err := svc.Orders.Checkout(ctx(), in)
	require.NoError(t, err)
	assert.Equal(t, 160.0, o.Subtotal)
	assert.Equal(t, 16.0, o.Discount)
	assert.Equal(t, 144.0, o.Total)
	assert.Equal(t, domain.OrderPending, o.Status)

	got, err := svc.Products.Get(ctx(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	pays, err := svc.Payments.List(ctx(), PaymentListQuery{PaymentQuery: repo.PaymentQuery{OrderID: o.ID}})
	require.NoError(t, err)
	require.Len(t, pays.Items, 1)
	assert.Equal(t, 144.0, pays.Items[0].Amount)
	assert.Equal(t, domain.PaymentPending, pays.Items[0].Status)

	// 优惠券已用完，整个事务回滚，库存不变
	in.Items[0].Quantity = 1
	_, err = svc.Orders.Checkout(ctx(), in)
	assert.ErrorIs(t, err, ErrInvalid)
	got, err = svc.Products.Get(ctx(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	_, err = svc.Orders.Checkout(ctx(), checkoutInput(CheckoutItem{ProductID: p.ID, Quantity: 5}))
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = svc.Orders.Checkout(ctx(), checkoutInput(CheckoutItem{ProductID: "missing", Quantity: 1}))
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.Orders.List(ctx(), OrderListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Pagination.Total)
}

func TestOrder_DeliveredMarksPaid(t *testing.T) {
	svc, _ := newTestServices(t, Options{})
	p, err := svc.Products.Create(ctx(), ProductInput{Name: "Hat", Price: 10, Stock: 10})
	require.NoError(t, err)
	o, err := svc.Orders.Checkout(ctx(), checkoutInput(CheckoutItem{ProductID: p.ID, Quantity: 1}))
	require.NoError(t, err)

	// 默认非严格模式：可直接跳到 delivered
	o, err = svc.Orders.UpdateStatus(ctx(), o.ID, domain.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderDelivered, o.Status)
	assert.Equal(t, domain.OrderPaid, o.PaymentStatus)

	o, err = svc.Orders.UpdateStatus(ctx(), o.ID, domain.OrderPending)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, o.PaymentStatus)

	_, err = svc.Orders.UpdateStatus(ctx(), o.ID, "lost")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = svc.Orders.UpdateStatus(ctx(), "missing", domain.OrderShipped)
	assert.ErrorIs(t, err, ErrNotFound)

	o, err = svc.Orders.UpdatePaymentStatus(ctx(), o.ID, domain.OrderPayFail)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPayFail, o.PaymentStatus)

	list, err := svc.Orders.List(ctx(), OrderListQuery{OrderQuery: repo.OrderQuery{Status: string(domain.OrderPending)}})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	_, err = svc.Orders.List(ctx(), OrderListQuery{OrderQuery: repo.OrderQuery{Status: "bogus"}})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestOrder_StrictTransitions(t *testing.T) {
	svc, _ := newTestServices(t, Options{StrictTransitions: true})
	p, err := svc.Products.Create(ctx(), ProductInput{Name: "Cap", Price: 10, Stock: 10})
	require.NoError(t, err)
	o, err := svc.Orders.Checkout(ctx(), checkoutInput(CheckoutItem{ProductID: p.ID, Quantity: 1}))
	require.NoError(t, err)

	_, err = svc.Orders.UpdateStatus(ctx(), o.ID, domain.OrderDelivered)
	assert.ErrorIs(t, err, ErrTransitionNotAllowed)

	for _, st := range []domain.OrderStatus{domain.OrderProcessing, domain.OrderShipped, domain.OrderDelivered} {
		_, err = svc.Orders.UpdateStatus(ctx(), o.ID, st)
		require.NoError(t, err, st)
	}
	_, err = svc.Orders.UpdateStatus(ctx(), o.ID, domain.OrderCancelled)
	assert.ErrorIs(t, err, ErrTransitionNotAllowed)
}

func TestPayment_StatusAndRefund(t *testing.T) {
	svc, _ := newTestServices(t, Options{})
	p, err := svc.Products.Create(ctx(), ProductInput{Name: "Bag", Price: 50, Stock: 5})
	require.NoError(t, err)
	o, err := svc.Orders.Checkout(ctx(), checkoutInput(CheckoutItem{ProductID: p.ID, Quantity: 2}))
	require.NoError(t, err)
	pays, err := svc.Payments.List(ctx(), PaymentListQuery{PaymentQuery: repo.PaymentQuery{OrderID: o.ID}})
	require.NoError(t, err)
	pay := pays.Items[0]

	_, err = svc.Payments.Refund(ctx(), pay.ID, RefundInput{Amount: 10, Reason: "damaged"})
	assert.ErrorIs(t, err, ErrRefundNotAllowed)

	_, err = svc.Payments.UpdateStatus(ctx(), pay.ID, domain.PaymentRefunded)
	assert.ErrorIs(t, err, ErrUseRefundAction)

	done, err := svc.Payments.UpdateStatus(ctx(), pay.ID, domain.PaymentCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, done.Status)
	assert.NotNil(t, done.PaidAt)
	order, err := svc.Orders.Get(ctx(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, order.PaymentStatus)

	_, err = svc.Payments.Refund(ctx(), pay.ID, RefundInput{Amount: 10, Reason: "  "})
	assert.ErrorIs(t, err, ErrRefundReason)
	_, err = svc.Payments.Refund(ctx(), pay.ID, RefundInput{Amount: 100.01, Reason: "damaged"})
	assert.ErrorIs(t, err, ErrRefundAmount)
	_, err = svc.Payments.Refund(ctx(), pay.ID, RefundInput{Amount: 0, Reason: "damaged"})
	assert.ErrorIs(t, err, ErrRefundAmount)

	refunded, err := svc.Payments.Refund(ctx(), pay.ID, RefundInput{Amount: 100, Reason: "damaged"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, refunded.Status)
	assert.Equal(t, 100.0, refunded.RefundAmount)
	assert.Equal(t, "damaged", refunded.RefundReason)
	assert.NotNil(t, refunded.RefundedAt)
	order, err = svc.Orders.Get(ctx(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderRefunded, order.PaymentStatus)

	_, err = svc.Payments.UpdateStatus(ctx(), pay.ID, domain.PaymentCompleted)
	assert.ErrorIs(t, err, ErrPaymentTerminal)
	_, err = svc.Payments.Refund(ctx(), pay.ID, RefundInput{Amount: 1, Reason: "again"})
	assert.ErrorIs(t, err, ErrPaymentTerminal)
	_, err = svc.Payments.Refund(ctx(), "missing", RefundInput{Amount: 1, Reason: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCoupon_ValidateAndApply(t *testing.T) {
	svc, _ := newTestServices(t, Options{})
	cs := svc.Coupons
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	cs.now = func() time.Time { return now }
	later := now.Add(24 * time.Hour)

	fixed := seedCoupon(t, cs, domain.Coupon{Code: " welcome ", Type: domain.CouponFixed, Value: 30, MinOrderValue: 100, Active: true, UsageLimit: 1})
	assert.Equal(t, "WELCOME", fixed.Code)
	seedCoupon(t, cs, domain.Coupon{Code: "SOON", Type: domain.CouponPercent, Value: 5, Active: true, StartsAt: &later})
	seedCoupon(t, cs, domain.Coupon{Code: "OFF", Type: domain.CouponPercent, Value: 5})
	seedCoupon(t, cs, domain.Coupon{Code: "ONLY", Type: domain.CouponPercent, Value: 50, MaxDiscount: 20, Active: true, ProductIDs: []string{"p1"}})

	res, err := cs.Validate(ctx(), CouponValidateInput{Code: "welcome", OrderTotal: 120})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, 30.0, res.Discount)
	assert.Equal(t, 90.0, res.FinalTotal)

	res, err = cs.Validate(ctx(), CouponValidateInput{Code: "WELCOME", OrderTotal: 50})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, 50.0, res.FinalTotal)

	for code, total := range map[string]float64{"SOON": 100, "OFF": 100, "NOPE": 100} {
		res, err = cs.Validate(ctx(), CouponValidateInput{Code: code, OrderTotal: total})
		require.NoError(t, err)
		assert.False(t, res.Valid, code)
		assert.NotEmpty(t, res.Message, code)
	}

	res, err = cs.Validate(ctx(), CouponValidateInput{Code: "ONLY", OrderTotal: 100, ProductIDs: []string{"p2"}})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	res, err = cs.Validate(ctx(), CouponValidateInput{Code: "ONLY", OrderTotal: 100, ProductIDs: []string{"p2", "p1"}})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, 20.0, res.Discount)

	c, err := cs.Apply(ctx(), fixed.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, c.UsedCount)
	_, err = cs.Apply(ctx(), fixed.ID)
	assert.ErrorIs(t, err, ErrCouponUnavailable)
	_, err = cs.Apply(ctx(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	res, err = cs.Validate(ctx(), CouponValidateInput{Code: "WELCOME", OrderTotal: 120})
	require.NoError(t, err)
	assert.False(t, res.Valid)
}

func TestNormalizeCoupon(t *testing.T) {
	start := time.Now()
	end := start.Add(-time.Hour)
	for name, c := range map[string]domain.Coupon{
		"empty code":     {Type: domain.CouponFixed, Value: 1},
		"bad type":       {Code: "A", Type: "free", Value: 1},
		"percent > 100":  {Code: "A", Type: domain.CouponPercent, Value: 101},
		"zero fixed":     {Code: "A", Type: domain.CouponFixed},
		"negative limit": {Code: "A", Type: domain.CouponFixed, Value: 1, UsageLimit: -1},
		"window":         {Code: "A", Type: domain.CouponFixed, Value: 1, StartsAt: &start, ExpiresAt: &end},
	} {
		c := c
		assert.ErrorIs(t, NormalizeCoupon(&c), ErrInvalid, name)
	}
}

func TestDashboard_Overview(t *testing.T) {
	svc, _ := newTestServices(t, Options{})
	_, err := svc.Categories.Create(ctx(), CategoryInput{Name: "Root"})
	require.NoError(t, err)
	p, err := svc.Products.Create(ctx(), ProductInput{Name: "Shoe", Price: 40, Stock: 2, IsFeatured: true})
	require.NoError(t, err)
	o, err := svc.Orders.Checkout(ctx(), checkoutInput(CheckoutItem{ProductID: p.ID, Quantity: 1}))
	require.NoError(t, err)
	_, err = svc.Orders.UpdateStatus(ctx(), o.ID, domain.OrderDelivered)
	require.NoError(t, err)
	_, err = svc.Reviews.Submit(ctx(), ReviewInput{ProductID: p.ID, AuthorName: "B", Rating: 4})
	require.NoError(t, err)

	ov, err := svc.Dashboard.Overview(ctx())
	require.NoError(t, err)
	assert.Equal(t, 1, ov.Categories.Total)
	assert.Equal(t, 1, ov.Products.Featured)
	assert.Equal(t, int64(1), ov.OrdersByStatus[string(domain.OrderDelivered)])
	assert.Equal(t, int64(0), ov.OrdersByStatus[string(domain.OrderCancelled)])
	assert.Equal(t, int64(1), ov.Payments[string(domain.PaymentPending)])
	assert.Equal(t, 40.0, ov.Revenue)
	assert.Equal(t, int64(1), ov.OrdersToday)
	assert.Equal(t, int64(1), ov.PendingReviews)
}

func TestAuth_EnsureAdminAndLogin(t *testing.T) {
	svc, _ := newTestServices(t, Options{})
	as := svc.Auth

	created, err := as.EnsureAdmin(ctx(), " Admin@Shop.io ", "secret123", "")
	require.NoError(t, err)
	assert.True(t, created)
	created, err = as.EnsureAdmin(ctx(), "admin@shop.io", "other", "")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = as.Login(ctx(), "admin@shop.io", "other")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = as.Login(ctx(), "nobody@shop.io", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := as.Login(ctx(), "ADMIN@shop.io", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)
	assert.True(t, res.ExpiresAt.After(time.Now()))

	me, err := as.Me(ctx(), res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Administrator", me.Name)
	_, err = as.Me(ctx(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	users, total, err := as.Users("admin", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)
}
