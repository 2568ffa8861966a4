package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go-shop-admin/internal/domain"
)

type OrderQuery struct {
	Status        string
	PaymentStatus string
	Q             string // 订单号 / 客户名 / 邮箱
	From, To      *time.Time
}

func (q OrderQuery) scope(db *gorm.DB) *gorm.DB {
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.PaymentStatus != "" {
		db = db.Where("payment_status = ?", q.PaymentStatus)
	}
	if q.Q != "" {
		like := "%" + q.Q + "%"
		db = db.Where("code LIKE ? OR customer_name LIKE ? OR customer_email LIKE ?", like, like, like)
	}
	if q.From != nil {
		db = db.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("created_at < ?", *q.To)
	}
	return db
}

type OrderRepo struct {
	Base[domain.Order]
}

func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{Base: NewBase[domain.Order](db)}
}

func (r *OrderRepo) WithTx(tx *gorm.DB) *OrderRepo { return NewOrderRepo(tx) }

func (r *OrderRepo) List(ctx context.Context, q OrderQuery, offset, limit int) ([]domain.Order, int64, error) {
	return r.Page(ctx, q.scope, "created_at DESC", offset, limit)
}

// Get 带明细
func (r *OrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.DB(ctx).Preload("Items").First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Revenue 已支付订单总额
func (r *OrderRepo) Revenue(ctx context.Context) (float64, error) {
	var sum float64
	err := r.DB(ctx).Model(&domain.Order{}).
		Where("payment_status = ?", domain.OrderPaid).
		Select("COALESCE(SUM(total), 0)").Scan(&sum).Error
	return sum, err
}

type PaymentQuery struct {
	Status  string
	Method  string
	OrderID string
}

func (q PaymentQuery) scope(db *gorm.DB) *gorm.DB {
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.Method != "" {
		db = db.Where("method = ?", q.Method)
	}
	if q.OrderID != "" {
		db = db.Where("order_id = ?", q.OrderID)
	}
	return db
}

type PaymentRepo struct {
	Base[domain.Payment]
}

func NewPaymentRepo(db *gorm.DB) *PaymentRepo {
	return &PaymentRepo{Base: NewBase[domain.Payment](db)}
}

func (r *PaymentRepo) WithTx(tx *gorm.DB) *PaymentRepo { return NewPaymentRepo(tx) }

func (r *PaymentRepo) List(ctx context.Context, q PaymentQuery, offset, limit int) ([]domain.Payment, int64, error) {
	return r.Page(ctx, q.scope, "created_at DESC", offset, limit)
}
