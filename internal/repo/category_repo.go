package repo

import (
	"context"

	"gorm.io/gorm"

	"go-shop-admin/internal/domain"
)

type CategoryRepo struct {
	Base[domain.Category]
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{Base: NewBase[domain.Category](db)}
}

// WithTx 事务内复用
func (r *CategoryRepo) WithTx(tx *gorm.DB) *CategoryRepo { return NewCategoryRepo(tx) }

// List trashed=true 时只返回回收站中的分类
func (r *CategoryRepo) List(ctx context.Context, trashed bool) ([]domain.Category, error) {
	q := r.DB(ctx)
	if trashed {
		q = q.Unscoped().Where("deleted_at IS NOT NULL")
	}
	var out []domain.Category
	err := q.Order("sort_order ASC, created_at ASC").Find(&out).Error
	return out, err
}

// FindAny 含回收站
func (r *CategoryRepo) FindAny(ctx context.Context, id string) (*domain.Category, error) {
	return NewBase[domain.Category](r.DB(ctx).Unscoped()).FindByID(ctx, id)
}

// FindBySlugAny 含回收站
func (r *CategoryRepo) FindBySlugAny(ctx context.Context, slug string) (*domain.Category, error) {
	return NewBase[domain.Category](r.DB(ctx).Unscoped()).FindBy(ctx, "slug = ?", slug)
}

// SlugTaken 唯一索引含回收站中的记录
func (r *CategoryRepo) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	return r.Exists(ctx, "slug = ? AND id <> ?", slug, excludeID)
}

// Update 全字段更新（parent 置空、status=0 等零值也要落库）
func (r *CategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	return r.UpdateFields(ctx, c.ID, map[string]any{
		"name":        c.Name,
		"slug":        c.Slug,
		"description": c.Description,
		"image":       c.Image,
		"parent_id":   c.ParentID,
		"status":      c.Status,
		"sort_order":  c.SortOrder,
	})
}

// Trash 软删
func (r *CategoryRepo) Trash(ctx context.Context, ids ...string) (int64, error) {
	res := r.DB(ctx).Where("id IN ?", ids).Delete(&domain.Category{})
	return res.RowsAffected, res.Error
}

// Restore 只恢复回收站中的记录，返回恢复条数
func (r *CategoryRepo) Restore(ctx context.Context, ids ...string) (int64, error) {
	res := r.DB(ctx).Unscoped().Model(&domain.Category{}).
		Where("id IN ? AND deleted_at IS NOT NULL", ids).
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}

// Purge 彻底删除，仅限回收站中的记录
func (r *CategoryRepo) Purge(ctx context.Context, id string) error {
	res := r.DB(ctx).Unscoped().Where("id = ? AND deleted_at IS NOT NULL", id).Delete(&domain.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DetachChildren 子分类挂到根上（父分类被彻底删除时）
func (r *CategoryRepo) DetachChildren(ctx context.Context, parentID string) error {
	return r.DB(ctx).Unscoped().Model(&domain.Category{}).
		Where("parent_id = ?", parentID).Update("parent_id", "").Error
}
