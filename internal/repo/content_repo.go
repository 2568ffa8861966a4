package repo

import (
	"context"

	"gorm.io/gorm"

	"go-shop-admin/internal/domain"
)

type BannerRepo struct {
	Base[domain.Banner]
}

func NewBannerRepo(db *gorm.DB) *BannerRepo {
	return &BannerRepo{Base: NewBase[domain.Banner](db)}
}

// Ordered position 升序
func (r *BannerRepo) Ordered(ctx context.Context, onlyPublished bool) ([]domain.Banner, error) {
	return r.All(ctx, func(db *gorm.DB) *gorm.DB {
		if onlyPublished {
			db = db.Where("status = ?", domain.StatusPublished)
		}
		return db.Order("position ASC, created_at DESC")
	})
}

type PostRepo struct {
	Base[domain.Post]
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{Base: NewBase[domain.Post](db)}
}

func (r *PostRepo) Ordered(ctx context.Context) ([]domain.Post, error) {
	return r.All(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, created_at DESC")
	})
}

func (r *PostRepo) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	return r.Exists(ctx, "slug = ? AND id <> ?", slug, excludeID)
}

type ReviewRepo struct {
	Base[domain.Review]
}

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{Base: NewBase[domain.Review](db)}
}
