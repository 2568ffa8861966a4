package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"

	"go-shop-admin/internal/core/cache"
	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/excel"
	"go-shop-admin/internal/repo"
	"go-shop-admin/pkg/listview"
	"go-shop-admin/pkg/utils"
)

type CategoryService struct {
	db    *gorm.DB
	repo  *repo.CategoryRepo
	inv   invalidator
	cache *cache.Cache
}

type CategoryInput struct {
	Name        string `json:"name" binding:"required,max=191"`
	Slug        string `json:"slug" binding:"max=191"`
	Description string `json:"description"`
	Image       string `json:"image" binding:"max=512"`
	ParentID    string `json:"parentId"`
	Status      *int   `json:"status" binding:"omitempty,oneof=0 1"`
	SortOrder   int    `json:"sortOrder"`
}

// CategoryPatch PATCH 只改传了的字段
type CategoryPatch struct {
	Name        *string `json:"name" binding:"omitempty,max=191"`
	Slug        *string `json:"slug" binding:"omitempty,max=191"`
	Description *string `json:"description"`
	Image       *string `json:"image" binding:"omitempty,max=512"`
	ParentID    *string `json:"parentId"`
	Status      *int    `json:"status" binding:"omitempty,oneof=0 1"`
	SortOrder   *int    `json:"sortOrder"`
}

// CategoryRow 树形列表的一行
type CategoryRow struct {
	domain.Category
	Depth int    `json:"depth"`
	Label string `json:"label"`
}

type CategoryOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ParentID string `json:"parentId"`
	Depth    int    `json:"depth"`
	Label    string `json:"label"`
}

type CategoryListQuery struct {
	Trashed bool
	Name    string
	Status  listview.StatusFilter
	Page    int
	Limit   int
}

type CategoryList struct {
	Items      []CategoryRow       `json:"items"`
	Pagination listview.Pagination `json:"pagination"`
	Stats      listview.Stats      `json:"stats"`
}

type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

func (r *ImportResult) fail(row int, format string, args ...any) {
	r.Skipped++
	r.Errors = append(r.Errors, fmt.Sprintf("row %d: %s", row, fmt.Sprintf(format, args...)))
}

// tree 先序展开；成环的节点（脏数据）追加在末尾，保证每条记录都出现一次
func categoryTree(items []domain.Category) []listview.Row[domain.Category] {
	rows, err := listview.BuildTree(items, domain.CategoryOrder)
	var ce *listview.CycleError
	if errors.As(err, &ce) {
		seen := make(map[string]struct{}, len(rows))
		for _, r := range rows {
			seen[r.Item.ID] = struct{}{}
		}
		for _, it := range items {
			if _, ok := seen[it.ID]; !ok {
				rows = append(rows, listview.Row[domain.Category]{Item: it})
			}
		}
	}
	return rows
}

// List 建树 -> 过滤 -> 分页；统计基于未过滤的全集
func (s *CategoryService) List(ctx context.Context, q CategoryListQuery) (*CategoryList, error) {
	items, err := s.repo.List(ctx, q.Trashed)
	if err != nil {
		return nil, err
	}
	rows := listview.FilterRows(categoryTree(items), listview.Criteria{Name: q.Name, Status: q.Status})
	page, size := listview.NormalizePaging(q.Page, q.Limit)
	p := listview.Paginate(rows, size, page)

	out := &CategoryList{
		Items:      make([]CategoryRow, 0, len(p.Items)),
		Pagination: p.Meta(),
		Stats:      domain.CategoryProfile.Aggregate(items),
	}
	for _, r := range p.Items {
		out.Items = append(out.Items, CategoryRow{Category: r.Item, Depth: r.Depth, Label: r.Label(r.Item.Name)})
	}
	return out, nil
}

// Options 父级下拉框；exclude 及其子孙不可选
func (s *CategoryService) Options(ctx context.Context, exclude string) ([]CategoryOption, error) {
	items, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	skip := map[string]struct{}{}
	if exclude != "" {
		skip = listview.Descendants(items, exclude)
		skip[exclude] = struct{}{}
	}
	out := make([]CategoryOption, 0, len(items))
	for _, r := range categoryTree(items) {
		if _, ok := skip[r.Item.ID]; ok {
			continue
		}
		out = append(out, toOption(r))
	}
	return out, nil
}

func toOption(r listview.Row[domain.Category]) CategoryOption {
	return CategoryOption{
		ID: r.Item.ID, Name: r.Item.Name, Slug: r.Item.Slug, ParentID: r.Item.ParentID,
		Depth: r.Depth, Label: r.Label(r.Item.Name),
	}
}

// PublicTree 前台分类树：下架分类连同子树一起隐藏，结果缓存
func (s *CategoryService) PublicTree(ctx context.Context) ([]CategoryOption, error) {
	out, err := cache.GetOrLoadJSON(s.cache, ctx, cache.KeyCategoryTree, cacheTTL, func(ctx context.Context) (*[]CategoryOption, error) {
		items, err := s.repo.List(ctx, false)
		if err != nil {
			return nil, err
		}
		opts := make([]CategoryOption, 0, len(items))
		hideBelow := -1
		for _, r := range categoryTree(items) {
			if hideBelow >= 0 && r.Depth > hideBelow {
				continue
			}
			hideBelow = -1
			if r.Item.Status != domain.StatusPublished {
				hideBelow = r.Depth
				continue
			}
			opts = append(opts, toOption(r))
		}
		return &opts, nil
	})
	if err != nil || out == nil {
		return nil, err
	}
	return *out, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	c, err := s.repo.FindAny(ctx, id)
	return c, notFound(err, "category")
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	c := &domain.Category{
		ID:          utils.NewID(),
		Name:        strings.TrimSpace(in.Name),
		Slug:        utils.DeriveSlug(in.Slug, in.Name),
		Description: in.Description,
		Image:       in.Image,
		ParentID:    strings.TrimSpace(in.ParentID),
		Status:      domain.StatusPublished,
		SortOrder:   in.SortOrder,
	}
	if in.Status != nil {
		c.Status = domain.Status(*in.Status)
	}
	if err := s.validate(ctx, c, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.inv.drop(ctx, cache.KeyCategoryTree)
	return c, nil
}

// Update PUT 语义：整体替换可编辑字段
func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (*domain.Category, error) {
	st := int(domain.StatusPublished)
	if in.Status != nil {
		st = *in.Status
	}
	name, slug, desc, img, parent := in.Name, in.Slug, in.Description, in.Image, in.ParentID
	return s.Patch(ctx, id, CategoryPatch{
		Name: &name, Slug: &slug, Description: &desc, Image: &img,
		ParentID: &parent, Status: &st, SortOrder: &in.SortOrder,
	})
}

func (s *CategoryService) Patch(ctx context.Context, id string, p CategoryPatch) (*domain.Category, error) {
	cur, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "category")
	}
	next := *cur
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Slug != nil || p.Name != nil {
		explicit := ""
		if p.Slug != nil {
			explicit = *p.Slug
		} else {
			explicit = cur.Slug
		}
		next.Slug = utils.DeriveSlug(explicit, next.Name)
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Image != nil {
		next.Image = *p.Image
	}
	if p.ParentID != nil {
		next.ParentID = strings.TrimSpace(*p.ParentID)
	}
	if p.Status != nil {
		next.Status = domain.Status(*p.Status)
	}
	if p.SortOrder != nil {
		next.SortOrder = *p.SortOrder
	}
	if err := s.validate(ctx, &next, cur); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &next); err != nil {
		return nil, err
	}
	s.inv.drop(ctx, cache.KeyCategoryTree)
	return s.Get(ctx, id)
}

// validate 名称、slug 唯一、父级存在且不成环
func (s *CategoryService) validate(ctx context.Context, c *domain.Category, cur *domain.Category) error {
	if c.Name == "" {
		return invalid("name is required")
	}
	if !c.Status.Valid() {
		return invalid("status must be 0 or 1")
	}
	if c.Slug == "" || !utils.IsValidSlug(c.Slug) {
		return invalid("slug must contain letters or digits")
	}
	if cur == nil || cur.Slug != c.Slug {
		taken, err := s.repo.SlugTaken(ctx, c.Slug, c.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugTaken
		}
	}
	if c.ParentID == "" || (cur != nil && cur.ParentID == c.ParentID) {
		return nil
	}
	if c.ParentID == c.ID {
		return &listview.CycleError{IDs: []string{c.ID}}
	}
	if _, err := s.repo.FindByID(ctx, c.ParentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidParent
		}
		return err
	}
	if cur == nil {
		return nil
	}
	all, err := s.repo.List(ctx, false)
	if err != nil {
		return err
	}
	if listview.WouldCycle(all, c.ID, c.ParentID) {
		return &listview.CycleError{IDs: []string{c.ID, c.ParentID}}
	}
	return nil
}

func (s *CategoryService) SetStatus(ctx context.Context, id string, status int) (*domain.Category, error) {
	if !domain.Status(status).Valid() {
		return nil, invalid("status must be 0 or 1")
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, notFound(err, "category")
	}
	s.inv.drop(ctx, cache.KeyCategoryTree)
	return s.Get(ctx, id)
}

// Delete 移入回收站；子分类保留，展示时提升为根
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Trash(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("category %w", ErrNotFound)
	}
	s.inv.drop(ctx, cache.KeyCategoryTree)
	return nil
}

// Restore 返回实际恢复条数；一条都没有时报 not found
func (s *CategoryService) Restore(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, invalid("categoryIds is required")
	}
	n, err := s.repo.Restore(ctx, ids...)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("trashed category %w", ErrNotFound)
	}
	s.inv.drop(ctx, cache.KeyCategoryTree)
	return n, nil
}

// Purge 彻底删除：只允许回收站里的分类；子分类转为根，商品解除关联
func (s *CategoryService) Purge(ctx context.Context, id string) error {
	c, err := s.repo.FindAny(ctx, id)
	if err != nil {
		return notFound(err, "category")
	}
	if !c.DeletedAt.Valid {
		return ErrNotInTrash
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cr := s.repo.WithTx(tx)
		if err := cr.Purge(ctx, id); err != nil {
			return notFound(err, "category")
		}
		if err := cr.DetachChildren(ctx, id); err != nil {
			return err
		}
		return repo.NewProductRepo(tx).ClearCategory(ctx, id)
	})
	if err != nil {
		return err
	}
	s.inv.drop(ctx, cache.KeyCategoryTree)
	return nil
}

// Export 按树序导出未删除的分类
func (s *CategoryService) Export(ctx context.Context) ([]byte, error) {
	items, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	slugByID := make(map[string]string, len(items))
	for _, c := range items {
		slugByID[c.ID] = c.Slug
	}
	rows := categoryTree(items)
	recs := make([]excel.CategoryRecord, 0, len(rows))
	for _, r := range rows {
		recs = append(recs, excel.CategoryRecord{
			Name: r.Item.Name, Slug: r.Item.Slug, ParentSlug: slugByID[r.Item.ParentID],
			Description: r.Item.Description, Status: int(r.Item.Status),
			SortOrder: r.Item.SortOrder, Level: r.Depth,
		})
	}
	return excel.WriteCategories(recs)
}

// Import 按 slug upsert；父级按 slug 在第二遍解析，可引用文件内任意行
func (s *CategoryService) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	recs, err := excel.ReadCategories(r)
	if err != nil {
		return nil, invalid("%v", err)
	}
	res := &ImportResult{Errors: []string{}}
	type pending struct {
		row    int
		id     string
		parent string
	}
	var links []pending

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cr := s.repo.WithTx(tx)
		for i, rec := range recs {
			row := i + 2
			name := strings.TrimSpace(rec.Name)
			if name == "" {
				res.fail(row, "name is required")
				continue
			}
			if !domain.Status(rec.Status).Valid() {
				res.fail(row, "status must be 0 or 1")
				continue
			}
			sl := utils.DeriveSlug(rec.Slug, name)
			if sl == "" {
				res.fail(row, "cannot derive slug from %q", name)
				continue
			}
			existing, err := cr.FindBySlugAny(ctx, sl)
			if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return err
			}
			if existing != nil {
				// 回收站里的同 slug 分类先恢复再更新
				if existing.DeletedAt.Valid {
					if _, err := cr.Restore(ctx, existing.ID); err != nil {
						return err
					}
				}
				existing.Name, existing.Description = name, rec.Description
				existing.Status, existing.SortOrder = domain.Status(rec.Status), rec.SortOrder
				if err := cr.Update(ctx, existing); err != nil {
					return err
				}
				res.Updated++
				links = append(links, pending{row, existing.ID, utils.Normalize(rec.ParentSlug)})
				continue
			}
			c := &domain.Category{
				ID: utils.NewID(), Name: name, Slug: sl, Description: rec.Description,
				Status: domain.Status(rec.Status), SortOrder: rec.SortOrder,
			}
			if err := cr.Create(ctx, c); err != nil {
				return err
			}
			res.Created++
			links = append(links, pending{row, c.ID, utils.Normalize(rec.ParentSlug)})
		}

		// 第二遍：挂父级，成环的行保持原父级并记录错误
		all, err := cr.List(ctx, false)
		if err != nil {
			return err
		}
		idBySlug := make(map[string]string, len(all))
		for _, c := range all {
			idBySlug[c.Slug] = c.ID
		}
		for _, l := range links {
			if l.parent == "" {
				continue
			}
			pid, ok := idBySlug[l.parent]
			if !ok {
				res.Errors = append(res.Errors, fmt.Sprintf("row %d: parent %q not found", l.row, l.parent))
				continue
			}
			if listview.WouldCycle(all, l.id, pid) {
				res.Errors = append(res.Errors, fmt.Sprintf("row %d: parent %q would create a cycle", l.row, l.parent))
				continue
			}
			if err := cr.UpdateFields(ctx, l.id, map[string]any{"parent_id": pid}); err != nil {
				return err
			}
			for i := range all {
				if all[i].ID == l.id {
					all[i].ParentID = pid
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.inv.drop(ctx, cache.KeyCategoryTree)
	return res, nil
}
