package service

import (
	"context"
	"math"
	"strings"

	"gorm.io/gorm"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/repo"
	"go-shop-admin/pkg/listview"
	"go-shop-admin/pkg/utils"
)

type OrderService struct {
	db      *gorm.DB
	repo    *repo.OrderRepo
	inv     invalidator
	strict  bool
	coupons *CouponService
}

type OrderListQuery struct {
	repo.OrderQuery
	Page  int
	Limit int
}

type OrderList struct {
	Items      []domain.Order      `json:"items"`
	Pagination listview.Pagination `json:"pagination"`
}

type CheckoutItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CheckoutInput 前台下单
type CheckoutInput struct {
	CustomerName    string         `json:"customerName" binding:"required,max=128"`
	CustomerEmail   string         `json:"customerEmail" binding:"omitempty,email"`
	CustomerPhone   string         `json:"customerPhone" binding:"required,max=32"`
	ShippingAddress string         `json:"shippingAddress" binding:"required,max=512"`
	Note            string         `json:"note" binding:"max=512"`
	PaymentMethod   string         `json:"paymentMethod" binding:"required,oneof=cod vnpay momo bank"`
	CouponCode      string         `json:"couponCode"`
	Items           []CheckoutItem `json:"items" binding:"required,min=1,dive"`
}

const shippingFee = 0

func (s *OrderService) List(ctx context.Context, q OrderListQuery) (*OrderList, error) {
	if q.Status != "" && !domain.OrderStatus(q.Status).Valid() {
		return nil, invalid("unknown status %q", q.Status)
	}
	if q.PaymentStatus != "" && !domain.OrderPaymentStatus(q.PaymentStatus).Valid() {
		return nil, invalid("unknown paymentStatus %q", q.PaymentStatus)
	}
	q.Q = strings.TrimSpace(q.Q)
	page, size := listview.NormalizePaging(q.Page, q.Limit)
	items, total, err := s.repo.List(ctx, q.OrderQuery, listview.Offset(page, size), size)
	if err != nil {
		return nil, err
	}
	return &OrderList{Items: items, Pagination: listview.NewPagination(total, page, size)}, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.repo.Get(ctx, id)
	return o, notFound(err, "order")
}

// UpdateStatus 默认任意状态可达；置为 delivered 时同一事务内把支付状态置为 paid
func (s *OrderService) UpdateStatus(ctx context.Context, id string, to domain.OrderStatus) (*domain.Order, error) {
	if !to.Valid() {
		return nil, invalid("unknown status %q", to)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.repo.WithTx(tx)
		o, err := r.FindByID(ctx, id)
		if err != nil {
			return notFound(err, "order")
		}
		if !o.Status.CanTransition(to, s.strict) {
			return ErrTransitionNotAllowed
		}
		fields := map[string]any{"status": to}
		if to == domain.OrderDelivered {
			fields["payment_status"] = domain.OrderPaid
		}
		return r.UpdateFields(ctx, id, fields)
	})
	if err != nil {
		return nil, err
	}
	s.inv.drop(ctx)
	return s.Get(ctx, id)
}

func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id string, ps domain.OrderPaymentStatus) (*domain.Order, error) {
	if !ps.Valid() {
		return nil, invalid("unknown paymentStatus %q", ps)
	}
	if err := s.repo.UpdateFields(ctx, id, map[string]any{"payment_status": ps}); err != nil {
		return nil, notFound(err, "order")
	}
	s.inv.drop(ctx)
	return s.Get(ctx, id)
}

// Checkout 校验商品、计算金额、占用优惠券、扣库存并生成待支付记录，全部在一个事务里
func (s *OrderService) Checkout(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	o := &domain.Order{
		ID:              utils.NewID(),
		Code:            utils.NewCode("ORD"),
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		Note:            in.Note,
		PaymentMethod:   in.PaymentMethod,
		Status:          domain.OrderPending,
		PaymentStatus:   domain.OrderUnpaid,
		ShippingFee:     shippingFee,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := repo.NewProductRepo(tx)
		ids := make([]string, 0, len(in.Items))
		for _, it := range in.Items {
			if it.Quantity < 1 {
				return invalid("quantity must be at least 1")
			}
			p, err := products.FindByID(ctx, it.ProductID)
			if err != nil {
				return notFound(err, "product "+it.ProductID)
			}
			if p.Status != domain.StatusPublished {
				return invalid("product %s is not available", p.Name)
			}
			if p.Stock < it.Quantity {
				return invalid("not enough stock for %s", p.Name)
			}
			price := p.Price
			if p.SalePrice > 0 && p.SalePrice < p.Price {
				price = p.SalePrice
			}
			o.Items = append(o.Items, domain.OrderItem{
				ID: utils.NewID(), OrderID: o.ID, ProductID: p.ID, ProductName: p.Name,
				Price: price, Quantity: it.Quantity,
			})
			o.Subtotal += price * float64(it.Quantity)
			ids = append(ids, p.ID)
			res := tx.WithContext(ctx).Model(&domain.Product{}).
				Where("id = ? AND stock >= ?", p.ID, it.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", it.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return invalid("not enough stock for %s", p.Name)
			}
		}
		o.Subtotal = round2(o.Subtotal)

		if code := strings.TrimSpace(in.CouponCode); code != "" {
			cr := repo.NewCouponRepo(tx)
			c, err := cr.FindByCode(ctx, code)
			if err != nil {
				return notFound(err, "coupon")
			}
			if msg := s.coupons.check(c, o.Subtotal, ids); msg != "" {
				return invalid("%s", msg)
			}
			if _, err := s.coupons.applyWith(ctx, cr, c.ID); err != nil {
				return err
			}
			o.CouponID = c.ID
			o.Discount = c.Discount(o.Subtotal)
		}
		o.Total = round2(o.Subtotal - o.Discount + o.ShippingFee)

		if err := repo.NewOrderRepo(tx).Create(ctx, o); err != nil {
			return err
		}
		return repo.NewPaymentRepo(tx).Create(ctx, &domain.Payment{
			ID:      utils.NewID(),
			OrderID: o.ID,
			Method:  o.PaymentMethod,
			Amount:  o.Total,
			Status:  domain.PaymentPending,
		})
	})
	if err != nil {
		return nil, err
	}
	s.inv.drop(ctx)
	return o, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
