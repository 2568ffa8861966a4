package repo

import (
	"context"

	"gorm.io/gorm"

	"go-shop-admin/internal/domain"
)

// ProductQuery 列表的数据库侧条件；名称匹配在内存里做（忽略变音）
type ProductQuery struct {
	Status     *int
	CategoryID string
	Brand      string
	Featured   *bool
}

type ProductRepo struct {
	Base[domain.Product]
}

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{Base: NewBase[domain.Product](db)}
}

func (r *ProductRepo) WithTx(tx *gorm.DB) *ProductRepo { return NewProductRepo(tx) }

func (q ProductQuery) scope(db *gorm.DB) *gorm.DB {
	if q.Status != nil {
		db = db.Where("status = ?", *q.Status)
	}
	if q.CategoryID != "" {
		db = db.Where("category_id = ?", q.CategoryID)
	}
	if q.Brand != "" {
		db = db.Where("brand = ?", q.Brand)
	}
	if q.Featured != nil {
		db = db.Where("is_featured = ?", *q.Featured)
	}
	return db
}

func (r *ProductRepo) Find(ctx context.Context, q ProductQuery) ([]domain.Product, error) {
	return r.All(ctx, func(db *gorm.DB) *gorm.DB {
		return q.scope(db).Order("sort_order ASC, created_at DESC")
	})
}

func (r *ProductRepo) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.FindBy(ctx, "sku = ?", sku)
}

func (r *ProductRepo) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.FindBy(ctx, "slug = ?", slug)
}

func (r *ProductRepo) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	return r.Exists(ctx, "slug = ? AND id <> ?", slug, excludeID)
}

// ClearCategory 分类被彻底删除后，商品不再指向它
func (r *ProductRepo) ClearCategory(ctx context.Context, categoryID string) error {
	return r.DB(ctx).Model(&domain.Product{}).
		Where("category_id = ?", categoryID).Update("category_id", "").Error
}
