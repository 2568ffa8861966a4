package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Base 单表通用读写；T 为 gorm 模型
type Base[T any] struct{ db *gorm.DB }

func NewBase[T any](db *gorm.DB) Base[T] { return Base[T]{db: db} }

func (r Base[T]) DB(ctx context.Context) *gorm.DB { return r.db.WithContext(ctx) }

func (r Base[T]) Create(ctx context.Context, m *T) error { return r.DB(ctx).Create(m).Error }

func (r Base[T]) Save(ctx context.Context, m *T) error { return r.DB(ctx).Save(m).Error }

func (r Base[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return r.FindBy(ctx, "id = ?", id)
}

// FindBy 未找到时返回 ErrNotFound
func (r Base[T]) FindBy(ctx context.Context, query string, args ...any) (*T, error) {
	var m T
	err := r.DB(ctx).Where(query, args...).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Exists 按条件判断是否存在（含软删记录，唯一索引覆盖回收站）
func (r Base[T]) Exists(ctx context.Context, query string, args ...any) (bool, error) {
	var n int64
	err := r.DB(ctx).Unscoped().Model(new(T)).Where(query, args...).Count(&n).Error
	return n > 0, err
}

func (r Base[T]) Delete(ctx context.Context, id string) error {
	res := r.DB(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateFields 局部更新；零值字段也会写入。
// MySQL 在值未变化时 RowsAffected 为 0，所以先查存在性
func (r Base[T]) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return r.DB(ctx).Model(new(T)).Where("id = ?", id).Updates(fields).Error
}

func (r Base[T]) SetStatus(ctx context.Context, id string, status int) error {
	return r.UpdateFields(ctx, id, map[string]any{"status": status})
}

// All 按 scope 查询全部，scope 可为 nil
func (r Base[T]) All(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]T, error) {
	q := r.DB(ctx).Model(new(T))
	if scope != nil {
		q = scope(q)
	}
	var out []T
	err := q.Find(&out).Error
	return out, err
}

// Page 数据库侧分页
func (r Base[T]) Page(ctx context.Context, scope func(*gorm.DB) *gorm.DB, order string, offset, limit int) ([]T, int64, error) {
	q := r.DB(ctx).Model(new(T))
	if scope != nil {
		q = scope(q)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []T
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GroupCount 按列分组计数（看板用）
func (r Base[T]) GroupCount(ctx context.Context, column string) (map[string]int64, error) {
	type row struct {
		K string
		N int64
	}
	var rows []row
	err := r.DB(ctx).Model(new(T)).Select(column + " AS k, COUNT(*) AS n").Group(column).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, x := range rows {
		out[x.K] = x.N
	}
	return out, nil
}
