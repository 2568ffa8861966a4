package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"go-shop-admin/internal/core/cache"
	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/repo"
	"go-shop-admin/pkg/listview"
)

type DashboardService struct {
	db    *gorm.DB
	cache *cache.Cache
	ttl   time.Duration
}

type Overview struct {
	Categories     listview.Stats   `json:"categories"`
	Products       listview.Stats   `json:"products"`
	Banners        listview.Stats   `json:"banners"`
	Posts          listview.Stats   `json:"posts"`
	OrdersByStatus map[string]int64 `json:"ordersByStatus"`
	Payments       map[string]int64 `json:"paymentsByStatus"`
	Revenue        float64          `json:"revenue"`
	OrdersToday    int64            `json:"ordersToday"`
	PendingReviews int64            `json:"pendingReviews"`
	GeneratedAt    time.Time        `json:"generatedAt"`
}

// Overview 各子查询并发执行；结果按 ttl 缓存，写操作会主动失效
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	ttl := s.ttl
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return cache.GetOrLoadJSON(s.cache, ctx, cache.KeyDashboard, ttl, s.load)
}

func (s *DashboardService) load(ctx context.Context) (*Overview, error) {
	out := &Overview{GeneratedAt: time.Now()}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := repo.NewCategoryRepo(s.db).List(ctx, false)
		out.Categories = domain.CategoryProfile.Aggregate(items)
		return err
	})
	g.Go(func() error {
		items, err := repo.NewProductRepo(s.db).Find(ctx, repo.ProductQuery{})
		out.Products = domain.ProductProfile.Aggregate(items)
		return err
	})
	g.Go(func() error {
		items, err := repo.NewBannerRepo(s.db).Ordered(ctx, false)
		out.Banners = domain.BannerProfile.Aggregate(items)
		return err
	})
	g.Go(func() error {
		items, err := repo.NewPostRepo(s.db).Ordered(ctx)
		out.Posts = domain.PostProfile.Aggregate(items)
		return err
	})
	g.Go(func() error {
		m, err := repo.NewOrderRepo(s.db).GroupCount(ctx, "status")
		out.OrdersByStatus = m
		return err
	})
	g.Go(func() error {
		m, err := repo.NewPaymentRepo(s.db).GroupCount(ctx, "status")
		out.Payments = m
		return err
	})
	g.Go(func() error {
		v, err := repo.NewOrderRepo(s.db).Revenue(ctx)
		out.Revenue = round2(v)
		return err
	})
	g.Go(func() error {
		y, m, d := time.Now().Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		return s.db.WithContext(ctx).Model(&domain.Order{}).Where("created_at >= ?", start).Count(&out.OrdersToday).Error
	})
	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&domain.Review{}).
			Where("status = ?", domain.StatusUnpublished).Count(&out.PendingReviews).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, st := range domain.OrderStatuses {
		if _, ok := out.OrdersByStatus[string(st)]; !ok {
			out.OrdersByStatus[string(st)] = 0
		}
	}
	return out, nil
}
