package adminclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/service"
)

type OrderParams struct {
	Status        string
	PaymentStatus string
	Q             string
	From, To      time.Time
	Page, Limit   int
}

func pageValues(q url.Values, page, limit int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
}

func (c *Client) ListOrders(ctx context.Context, p OrderParams) (*service.OrderList, error) {
	q := url.Values{}
	for k, v := range map[string]string{"status": p.Status, "paymentStatus": p.PaymentStatus, "q": p.Q} {
		if v != "" {
			q.Set(k, v)
		}
	}
	if !p.From.IsZero() {
		q.Set("from", p.From.Format(time.DateOnly))
	}
	if !p.To.IsZero() {
		q.Set("to", p.To.Format(time.DateOnly))
	}
	pageValues(q, p.Page, p.Limit)
	var out service.OrderList
	if err := c.do(ctx, http.MethodGet, "/api/orders", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, to domain.OrderStatus) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(id)+"/status", nil,
		map[string]domain.OrderStatus{"status": to}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrderPayment(ctx context.Context, id string, ps domain.OrderPaymentStatus) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(id)+"/payment", nil,
		map[string]domain.OrderPaymentStatus{"paymentStatus": ps}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type PaymentParams struct {
	Status, Method, OrderID string
	Page, Limit             int
}

func (c *Client) ListPayments(ctx context.Context, p PaymentParams) (*service.PaymentList, error) {
	q := url.Values{}
	for k, v := range map[string]string{"status": p.Status, "method": p.Method, "order_id": p.OrderID} {
		if v != "" {
			q.Set(k, v)
		}
	}
	pageValues(q, p.Page, p.Limit)
	var out service.PaymentList
	if err := c.do(ctx, http.MethodGet, "/api/payments", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePaymentStatus(ctx context.Context, id string, to domain.PaymentStatus) (*domain.Payment, error) {
	var out domain.Payment
	if err := c.do(ctx, http.MethodPut, "/api/payments/"+url.PathEscape(id)+"/status", nil,
		map[string]domain.PaymentStatus{"payment_status": to}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refund 提交前本地校验：0 < amount <= 支付金额，原因必填
func (c *Client) Refund(ctx context.Context, p *domain.Payment, amount float64, reason string) (*domain.Payment, error) {
	reason = strings.TrimSpace(reason)
	switch {
	case amount <= 0:
		return nil, fmt.Errorf("%w: refund amount must be greater than 0", ErrValidation)
	case amount > p.Amount:
		return nil, fmt.Errorf("%w: refund amount cannot exceed %.2f", ErrValidation, p.Amount)
	case reason == "":
		return nil, fmt.Errorf("%w: refund reason is required", ErrValidation)
	}
	var out domain.Payment
	if err := c.do(ctx, http.MethodPost, "/api/payments/"+url.PathEscape(p.ID)+"/refund", nil,
		service.RefundInput{Amount: amount, Reason: reason}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ValidateCoupon(ctx context.Context, in service.CouponValidateInput) (*service.CouponValidateResult, error) {
	var out service.CouponValidateResult
	if err := c.do(ctx, http.MethodPost, "/api/coupons/validate", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Dashboard(ctx context.Context) (*service.Overview, error) {
	var out service.Overview
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
