package service

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/repo"
	"go-shop-admin/pkg/listview"
)

type PaymentService struct {
	db   *gorm.DB
	repo *repo.PaymentRepo
	inv  invalidator
}

type PaymentListQuery struct {
	repo.PaymentQuery
	Page  int
	Limit int
}

type PaymentList struct {
	Items      []domain.Payment    `json:"items"`
	Pagination listview.Pagination `json:"pagination"`
}

type RefundInput struct {
	Amount float64 `json:"refund_amount" binding:"required,gt=0"`
	Reason string  `json:"refund_reason" binding:"required,max=512"`
}

func (s *PaymentService) List(ctx context.Context, q PaymentListQuery) (*PaymentList, error) {
	if q.Status != "" && !domain.PaymentStatus(q.Status).Valid() {
		return nil, invalid("unknown payment_status %q", q.Status)
	}
	page, size := listview.NormalizePaging(q.Page, q.Limit)
	items, total, err := s.repo.List(ctx, q.PaymentQuery, listview.Offset(page, size), size)
	if err != nil {
		return nil, err
	}
	return &PaymentList{Items: items, Pagination: listview.NewPagination(total, page, size)}, nil
}

func (s *PaymentService) Get(ctx context.Context, id string) (*domain.Payment, error) {
	p, err := s.repo.FindByID(ctx, id)
	return p, notFound(err, "payment")
}

// UpdateStatus refunded 为终态；退款只能走 Refund。completed 同步把订单置为 paid
func (s *PaymentService) UpdateStatus(ctx context.Context, id string, to domain.PaymentStatus) (*domain.Payment, error) {
	if !to.Valid() {
		return nil, invalid("unknown payment_status %q", to)
	}
	if to == domain.PaymentRefunded {
		return nil, ErrUseRefundAction
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.repo.WithTx(tx)
		p, err := r.FindByID(ctx, id)
		if err != nil {
			return notFound(err, "payment")
		}
		if p.Status == domain.PaymentRefunded {
			return ErrPaymentTerminal
		}
		fields := map[string]any{"status": to}
		if to == domain.PaymentCompleted && p.PaidAt == nil {
			fields["paid_at"] = time.Now()
		}
		if err := r.UpdateFields(ctx, id, fields); err != nil {
			return err
		}
		if to == domain.PaymentCompleted {
			return s.syncOrder(ctx, tx, p.OrderID, domain.OrderPaid)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.inv.drop(ctx)
	return s.Get(ctx, id)
}

// Refund 仅 completed 可退；0 < amount <= 支付金额；原因必填
func (s *PaymentService) Refund(ctx context.Context, id string, in RefundInput) (*domain.Payment, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, ErrRefundReason
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.repo.WithTx(tx)
		p, err := r.FindByID(ctx, id)
		if err != nil {
			return notFound(err, "payment")
		}
		switch {
		case p.Status == domain.PaymentRefunded:
			return ErrPaymentTerminal
		case p.Status != domain.PaymentCompleted:
			return ErrRefundNotAllowed
		case in.Amount <= 0 || in.Amount > p.Amount:
			return ErrRefundAmount
		}
		now := time.Now()
		if err := r.UpdateFields(ctx, id, map[string]any{
			"status":        domain.PaymentRefunded,
			"refund_amount": in.Amount,
			"refund_reason": reason,
			"refunded_at":   now,
		}); err != nil {
			return err
		}
		return s.syncOrder(ctx, tx, p.OrderID, domain.OrderRefunded)
	})
	if err != nil {
		return nil, err
	}
	s.inv.drop(ctx)
	return s.Get(ctx, id)
}

// syncOrder 订单可能已被删除（历史数据），此时不报错
func (s *PaymentService) syncOrder(ctx context.Context, tx *gorm.DB, orderID string, ps domain.OrderPaymentStatus) error {
	return tx.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", orderID).Update("payment_status", ps).Error
}
