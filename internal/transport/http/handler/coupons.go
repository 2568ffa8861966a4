package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/service"
	"go-shop-admin/internal/transport/http/ez"
	mdw "go-shop-admin/internal/transport/http/middleware"
)

type Coupons struct{ s *service.Services }

type couponApplyIn struct {
	CouponID string `json:"couponId" binding:"required"`
}

func (h *Coupons) MountAdmin(g *gin.RouterGroup) {
	normalize := func(_ *gin.Context, m *domain.Coupon) error {
		m.UsedCount = 0
		return fail(service.NormalizeCoupon(m))
	}
	ez.Crud(ez.CrudConfig[domain.Coupon]{
		DB:    h.s.DB,
		Group: g,
		Path:  "/coupons",
		New:   func() *domain.Coupon { return &domain.Coupon{} },
		Hooks: ez.CrudHooks[domain.Coupon]{
			BeforeCreate: normalize,
			BeforeUpdate: normalize,
			ScopeList: func(c *gin.Context, q *gorm.DB) *gorm.DB {
				if code := c.Query("code"); code != "" {
					q = q.Where("code LIKE ?", "%"+code+"%")
				}
				if a := c.Query("active"); a != "" {
					v, _ := strconv.ParseBool(a)
					q = q.Where("active = ?", v)
				}
				return q
			},
			AfterWrite: func(c *gin.Context) { h.s.Touch(c) },
		},
		AllowCreate: true, AllowList: true, AllowGet: true, AllowUpdate: true, AllowDelete: true,
		OrderBy:   "created_at DESC",
		UpdateAll: true,
		Omit:      []string{"used_count"},
	})

	e := ez.New(g)
	h.mountValidate(e)
	ez.RegisterAction(e, ez.Action[couponApplyIn, any]{
		Method: http.MethodPost, Path: "/coupons/apply", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *couponApplyIn) (any, error) {
			return result(h.s.Coupons.Apply(c, in.CouponID))
		},
	})
}

func (h *Coupons) MountAPI(g *gin.RouterGroup) {
	h.mountValidate(ez.New(g))
}

func (h *Coupons) mountValidate(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[service.CouponValidateInput, *service.CouponValidateResult]{
		Method: http.MethodPost, Path: "/coupons/validate", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.CouponValidateInput) (*service.CouponValidateResult, error) {
			return result(h.s.Coupons.Validate(c, *in))
		},
	})
}

type Reviews struct{ s *service.Services }

func (h *Reviews) MountAdmin(g *gin.RouterGroup) {
	ez.Crud(ez.CrudConfig[domain.Review]{
		DB:    h.s.DB,
		Group: g,
		Path:  "/reviews",
		New:   func() *domain.Review { return &domain.Review{} },
		Hooks: ez.CrudHooks[domain.Review]{
			ScopeList: func(c *gin.Context, q *gorm.DB) *gorm.DB {
				if p := c.Query("product"); p != "" {
					q = q.Where("product_id = ?", p)
				}
				if st := c.Query("status"); st == "0" || st == "1" {
					q = q.Where("status = ?", st)
				}
				if r, err := strconv.Atoi(c.Query("rating")); err == nil && r >= 1 && r <= 5 {
					q = q.Where("rating = ?", r)
				}
				return q
			},
			AfterWrite: func(c *gin.Context) { h.s.Touch(c) },
		},
		AllowList: true, AllowGet: true, AllowDelete: true, AllowStatus: true,
		OrderBy: "created_at DESC",
	})
}

// MountAPI 前台提交评价，按 IP 限速
func (h *Reviews) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g.Group("", mdw.RateLimitPerIP(0.2, 3)))
	ez.RegisterAction(e, ez.Action[service.ReviewInput, any]{
		Method: http.MethodPost, Path: "/reviews", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.ReviewInput) (any, error) {
			return result(h.s.Reviews.Submit(c, *in))
		},
	})
}
