package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/repo"
)

type CouponService struct {
	repo *repo.CouponRepo
	now  func() time.Time
}

type CouponValidateInput struct {
	Code       string   `json:"code" binding:"required"`
	OrderTotal float64  `json:"orderTotal" binding:"gte=0"`
	ProductIDs []string `json:"productIds"`
}

type CouponValidateResult struct {
	Valid      bool    `json:"valid"`
	CouponID   string  `json:"couponId,omitempty"`
	Code       string  `json:"code"`
	Discount   float64 `json:"discount"`
	FinalTotal float64 `json:"finalTotal"`
	Message    string  `json:"message"`
}

// Normalize 创建 / 更新前的统一校验（ez.Crud hook 调用）
func NormalizeCoupon(c *domain.Coupon) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	if c.Code == "" {
		return invalid("code is required")
	}
	switch c.Type {
	case domain.CouponPercent:
		if c.Value <= 0 || c.Value > 100 {
			return invalid("percent value must be in (0, 100]")
		}
	case domain.CouponFixed:
		if c.Value <= 0 {
			return invalid("fixed value must be greater than 0")
		}
	default:
		return invalid("type must be percent or fixed")
	}
	if c.MinOrderValue < 0 || c.MaxDiscount < 0 || c.UsageLimit < 0 {
		return invalid("minOrderValue, maxDiscount and usageLimit must not be negative")
	}
	if c.StartsAt != nil && c.ExpiresAt != nil && c.ExpiresAt.Before(*c.StartsAt) {
		return invalid("expiresAt must be after startsAt")
	}
	return nil
}

// Validate 业务上不可用返回 Valid=false + 原因，不当作错误
func (s *CouponService) Validate(ctx context.Context, in CouponValidateInput) (*CouponValidateResult, error) {
	res := &CouponValidateResult{Code: strings.ToUpper(strings.TrimSpace(in.Code)), FinalTotal: in.OrderTotal}
	c, err := s.repo.FindByCode(ctx, in.Code)
	if errors.Is(err, repo.ErrNotFound) {
		res.Message = "coupon not found"
		return res, nil
	}
	if err != nil {
		return nil, err
	}
	if msg := s.check(c, in.OrderTotal, in.ProductIDs); msg != "" {
		res.Message = msg
		return res, nil
	}
	res.Valid = true
	res.CouponID = c.ID
	res.Discount = c.Discount(in.OrderTotal)
	res.FinalTotal = math.Round((in.OrderTotal-res.Discount)*100) / 100
	res.Message = "coupon applied"
	return res, nil
}

func (s *CouponService) check(c *domain.Coupon, total float64, productIDs []string) string {
	switch {
	case !c.Active:
		return "coupon is inactive"
	case !c.InWindow(s.now()):
		return "coupon is not valid at this time"
	case c.Exhausted():
		return "coupon usage limit reached"
	case total < c.MinOrderValue:
		return fmt.Sprintf("order total must be at least %.2f", c.MinOrderValue)
	case !c.AppliesTo(productIDs):
		return "coupon does not apply to these products"
	}
	return ""
}

// Apply 原子地占用一次使用次数
func (s *CouponService) Apply(ctx context.Context, couponID string) (*domain.Coupon, error) {
	return s.applyWith(ctx, s.repo, couponID)
}

func (s *CouponService) applyWith(ctx context.Context, r *repo.CouponRepo, couponID string) (*domain.Coupon, error) {
	c, err := r.FindByID(ctx, couponID)
	if err != nil {
		return nil, notFound(err, "coupon")
	}
	if !c.InWindow(s.now()) {
		return nil, ErrCouponUnavailable
	}
	ok, err := r.IncrementUsage(ctx, couponID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCouponUnavailable
	}
	c.UsedCount++
	return c, nil
}
