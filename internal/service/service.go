// Package service 业务逻辑：列表管线、校验、事务与缓存失效
package service

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-shop-admin/internal/core/auth"
	"go-shop-admin/internal/core/cache"
	"go-shop-admin/internal/excel"
	"go-shop-admin/internal/repo"
	"go-shop-admin/internal/storage"
)

// 前台只读数据（分类树、banner）的缓存时间
const cacheTTL = 5 * time.Minute

type Options struct {
	StrictTransitions bool
	DashboardTTL      time.Duration
	ImageTimeout      time.Duration
	MaxImageBytes     int64
}

// Services 依赖装配结果，供路由层使用
type Services struct {
	DB         *gorm.DB
	Auth       *AuthService
	Categories *CategoryService
	Products   *ProductService
	Banners    *BannerService
	Posts      *PostService
	Reviews    *ReviewService
	Orders     *OrderService
	Payments   *PaymentService
	Coupons    *CouponService
	Dashboard  *DashboardService

	inv invalidator
}

func New(db *gorm.DB, c *cache.Cache, store storage.Storage, jwter *auth.JWTer, l *zap.Logger, opt Options) *Services {
	if l == nil {
		l = zap.NewNop()
	}
	inv := invalidator{cache: c, log: l}
	fetcher := &excel.HTTPFetcher{
		Client:   &http.Client{Timeout: opt.ImageTimeout},
		Source:   store,
		MaxBytes: opt.MaxImageBytes,
	}
	s := &Services{DB: db, inv: inv}
	s.Auth = &AuthService{users: repo.NewUserRepo(db), jwt: jwter}
	s.Categories = &CategoryService{db: db, repo: repo.NewCategoryRepo(db), inv: inv, cache: c}
	s.Products = &ProductService{
		repo: repo.NewProductRepo(db), categories: repo.NewCategoryRepo(db), inv: inv, log: l,
		fetcher: fetcher, imageTimeout: opt.ImageTimeout,
	}
	s.Banners = &BannerService{repo: repo.NewBannerRepo(db), store: store, inv: inv, cache: c, log: l}
	s.Posts = &PostService{repo: repo.NewPostRepo(db), inv: inv}
	s.Reviews = &ReviewService{repo: repo.NewReviewRepo(db), products: repo.NewProductRepo(db)}
	s.Coupons = &CouponService{repo: repo.NewCouponRepo(db), now: time.Now}
	s.Orders = &OrderService{db: db, repo: repo.NewOrderRepo(db), inv: inv, strict: opt.StrictTransitions, coupons: s.Coupons}
	s.Payments = &PaymentService{db: db, repo: repo.NewPaymentRepo(db), inv: inv}
	s.Dashboard = &DashboardService{db: db, cache: c, ttl: opt.DashboardTTL}
	return s
}

// Touch 通用 CRUD 写入后调用，失效看板等派生缓存
func (s *Services) Touch(ctx context.Context, keys ...string) { s.inv.drop(ctx, keys...) }

// invalidator 写操作后清缓存；失败只记日志
type invalidator struct {
	cache *cache.Cache
	log   *zap.Logger
}

func (i invalidator) drop(ctx context.Context, keys ...string) {
	if err := i.cache.Invalidate(ctx, append(keys, cache.KeyDashboard)...); err != nil {
		i.log.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
