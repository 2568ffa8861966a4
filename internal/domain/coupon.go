package domain

import (
	"math"
	"time"
)

type CouponType string

const (
	CouponPercent CouponType = "percent"
	CouponFixed   CouponType = "fixed"
)

type Coupon struct {
	ID            string     `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Code          string     `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Description   string     `gorm:"size:255" json:"description"`
	Type          CouponType `gorm:"size:16;not null" json:"type"`
	Value         float64    `gorm:"not null" json:"value"`
	MinOrderValue float64    `gorm:"not null;default:0" json:"minOrderValue"`
	MaxDiscount   float64    `gorm:"not null;default:0" json:"maxDiscount"`
	UsageLimit    int        `gorm:"not null;default:0" json:"usageLimit"` // 0 不限
	UsedCount     int        `gorm:"not null;default:0" json:"usedCount"`
	ProductIDs    []string   `gorm:"serializer:json" json:"productIds"`
	StartsAt      *time.Time `json:"startsAt"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	Active        bool       `gorm:"not null" json:"active"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Coupon) TableName() string { return "coupons" }

// Discount 计算优惠额，结果不超过订单金额，保留两位小数
func (c Coupon) Discount(orderTotal float64) float64 {
	if orderTotal <= 0 {
		return 0
	}
	var d float64
	switch c.Type {
	case CouponPercent:
		d = orderTotal * c.Value / 100
		if c.MaxDiscount > 0 && d > c.MaxDiscount {
			d = c.MaxDiscount
		}
	case CouponFixed:
		d = c.Value
	}
	if d < 0 {
		d = 0
	}
	if d > orderTotal {
		d = orderTotal
	}
	return math.Round(d*100) / 100
}

// AppliesTo 未限定商品时总是适用；否则需与 productIDs 有交集
func (c Coupon) AppliesTo(productIDs []string) bool {
	if len(c.ProductIDs) == 0 {
		return true
	}
	allowed := make(map[string]struct{}, len(c.ProductIDs))
	for _, id := range c.ProductIDs {
		allowed[id] = struct{}{}
	}
	for _, id := range productIDs {
		if _, ok := allowed[id]; ok {
			return true
		}
	}
	return false
}

func (c Coupon) Exhausted() bool { return c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit }

func (c Coupon) InWindow(now time.Time) bool {
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return false
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false
	}
	return true
}
