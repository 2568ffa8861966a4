package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/repo"
	"go-shop-admin/pkg/utils"
)

type ReviewService struct {
	repo     *repo.ReviewRepo
	products *repo.ProductRepo
}

type ReviewInput struct {
	ProductID  string `json:"productId" binding:"required"`
	AuthorName string `json:"authorName" binding:"required,max=64"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment" binding:"max=2000"`
}

// Submit 前台提交评价，默认待审核（未发布）
func (s *ReviewService) Submit(ctx context.Context, in ReviewInput) (*domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, invalid("rating must be between 1 and 5")
	}
	p, err := s.products.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, notFound(err, "product")
	}
	if p.Status != domain.StatusPublished {
		return nil, invalid("product is not available")
	}
	r := &domain.Review{
		ID:         utils.NewID(),
		ProductID:  p.ID,
		AuthorName: strings.TrimSpace(in.AuthorName),
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
		Status:     domain.StatusUnpublished,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Published 某商品已审核的评价
func (s *ReviewService) Published(ctx context.Context, productID string) ([]domain.Review, error) {
	return s.repo.All(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("product_id = ? AND status = ?", productID, domain.StatusPublished).Order("created_at DESC")
	})
}
