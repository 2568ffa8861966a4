package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"go-shop-admin/internal/domain"
)

type CouponRepo struct {
	Base[domain.Coupon]
}

func NewCouponRepo(db *gorm.DB) *CouponRepo {
	return &CouponRepo{Base: NewBase[domain.Coupon](db)}
}

func (r *CouponRepo) WithTx(tx *gorm.DB) *CouponRepo { return NewCouponRepo(tx) }

// FindByCode 优惠码统一大写存储
func (r *CouponRepo) FindByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	return r.FindBy(ctx, "code = ?", strings.ToUpper(strings.TrimSpace(code)))
}

// IncrementUsage 条件更新保证并发下不超过 usage_limit；返回 false 表示已用完
func (r *CouponRepo) IncrementUsage(ctx context.Context, id string) (bool, error) {
	res := r.DB(ctx).Model(&domain.Coupon{}).
		Where("id = ? AND active = ? AND (usage_limit = 0 OR used_count < usage_limit)", id, true).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
