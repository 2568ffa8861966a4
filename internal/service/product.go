package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/excel"
	"go-shop-admin/internal/repo"
	"go-shop-admin/pkg/listview"
	"go-shop-admin/pkg/utils"
)

type ProductService struct {
	repo         *repo.ProductRepo
	categories   *repo.CategoryRepo
	inv          invalidator
	log          *zap.Logger
	fetcher      excel.ImageFetcher
	imageTimeout time.Duration
}

type ProductInput struct {
	Name        string   `json:"name" binding:"required,max=191"`
	Slug        string   `json:"slug" binding:"max=191"`
	SKU         string   `json:"sku" binding:"max=64"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"gte=0"`
	SalePrice   float64  `json:"salePrice" binding:"gte=0"`
	Stock       int      `json:"stock" binding:"gte=0"`
	CategoryID  string   `json:"categoryId"`
	Brand       string   `json:"brand" binding:"max=64"`
	Thumbnail   string   `json:"thumbnail" binding:"max=512"`
	Images      []string `json:"images"`
	Status      *int     `json:"status" binding:"omitempty,oneof=0 1"`
	IsFeatured  bool     `json:"isFeatured"`
	SortOrder   int      `json:"sortOrder"`
}

type ProductListQuery struct {
	Name       string
	Status     listview.StatusFilter
	CategoryID string
	Brand      string
	Page       int
	Limit      int
}

type ProductList struct {
	Items      []domain.Product    `json:"items"`
	Pagination listview.Pagination `json:"pagination"`
	Stats      listview.Stats      `json:"stats"`
}

// ProductImportRow /products/import-excel 的一行（前端解析 xlsx 后提交 JSON）
type ProductImportRow struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	SKU         string   `json:"sku"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	SalePrice   float64  `json:"salePrice"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"` // 分类 id、slug 或名称
	Brand       string   `json:"brand"`
	Thumbnail   string   `json:"thumbnail"`
	Images      []string `json:"images"`
	Status      *int     `json:"status"`
}

// List 全量读取后走列表管线：过滤（名称忽略变音）-> 分页；统计基于全集
func (s *ProductService) List(ctx context.Context, q ProductListQuery) (*ProductList, error) {
	all, err := s.repo.Find(ctx, repo.ProductQuery{})
	if err != nil {
		return nil, err
	}
	var extra []listview.Predicate[domain.Product]
	if q.CategoryID != "" {
		extra = append(extra, func(p domain.Product) bool { return p.CategoryID == q.CategoryID })
	}
	if b := strings.TrimSpace(q.Brand); b != "" {
		extra = append(extra, func(p domain.Product) bool { return strings.EqualFold(p.Brand, b) })
	}
	filtered := listview.Filter(all, listview.Criteria{Name: q.Name, Status: q.Status}, extra...)
	page, size := listview.NormalizePaging(q.Page, q.Limit)
	p := listview.Paginate(filtered, size, page)
	return &ProductList{Items: p.Items, Pagination: p.Meta(), Stats: domain.ProductProfile.Aggregate(all)}, nil
}

// PublicList 前台只看上架商品
func (s *ProductService) PublicList(ctx context.Context, q ProductListQuery) (*ProductList, error) {
	q.Status = listview.StatusOnlyActive
	out, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	out.Stats = listview.Stats{}
	return out, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	return p, notFound(err, "product")
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p := &domain.Product{ID: utils.NewID(), Status: domain.StatusPublished}
	s.apply(p, in)
	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.inv.drop(ctx)
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.apply(p, in)
	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.inv.drop(ctx)
	return p, nil
}

func (s *ProductService) apply(p *domain.Product, in ProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Slug = utils.DeriveSlug(in.Slug, in.Name)
	p.SKU = strings.TrimSpace(in.SKU)
	p.Description = in.Description
	p.Price, p.SalePrice, p.Stock = in.Price, in.SalePrice, in.Stock
	p.CategoryID = strings.TrimSpace(in.CategoryID)
	p.Brand = strings.TrimSpace(in.Brand)
	p.Thumbnail = in.Thumbnail
	p.Images = in.Images
	if in.Status != nil {
		p.Status = domain.Status(*in.Status)
	}
	p.IsFeatured = in.IsFeatured
	p.SortOrder = in.SortOrder
}

func (s *ProductService) validate(ctx context.Context, p *domain.Product) error {
	if p.Name == "" {
		return invalid("name is required")
	}
	if p.Slug == "" {
		return invalid("slug must contain letters or digits")
	}
	if p.Price < 0 || p.SalePrice < 0 || p.Stock < 0 {
		return invalid("price, salePrice and stock must not be negative")
	}
	if p.SalePrice > 0 && p.SalePrice > p.Price {
		return invalid("salePrice must not exceed price")
	}
	if !p.Status.Valid() {
		return invalid("status must be 0 or 1")
	}
	taken, err := s.repo.SlugTaken(ctx, p.Slug, p.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	if p.CategoryID != "" {
		if _, err := s.categories.FindByID(ctx, p.CategoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return invalid("category %s not found", p.CategoryID)
			}
			return err
		}
	}
	return nil
}

func (s *ProductService) SetStatus(ctx context.Context, id string, status int) (*domain.Product, error) {
	if !domain.Status(status).Valid() {
		return nil, invalid("status must be 0 or 1")
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, notFound(err, "product")
	}
	s.inv.drop(ctx)
	return s.Get(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "product")
	}
	s.inv.drop(ctx)
	return nil
}

// Import 按 SKU（其次 slug）upsert；单行失败跳过并记录，不中断整体
func (s *ProductService) Import(ctx context.Context, rows []ProductImportRow) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, invalid("no rows to import")
	}
	cats, err := s.categories.List(ctx, false)
	if err != nil {
		return nil, err
	}
	catID := make(map[string]string, len(cats)*3)
	for _, c := range cats {
		catID[c.ID] = c.ID
		catID[c.Slug] = c.ID
		catID[utils.Fold(c.Name)] = c.ID
	}

	res := &ImportResult{Errors: []string{}}
	for i, r := range rows {
		row := i + 1
		in := ProductInput{
			Name: r.Name, Slug: r.Slug, SKU: r.SKU, Description: r.Description,
			Price: r.Price, SalePrice: r.SalePrice, Stock: r.Stock, Brand: r.Brand,
			Thumbnail: r.Thumbnail, Images: r.Images, Status: r.Status,
		}
		if c := strings.TrimSpace(r.Category); c != "" {
			id, ok := catID[c]
			if !ok {
				id, ok = catID[utils.Fold(c)]
			}
			if !ok {
				res.fail(row, "category %q not found", c)
				continue
			}
			in.CategoryID = id
		}
		existing, err := s.findForImport(ctx, in)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			in.IsFeatured, in.SortOrder = existing.IsFeatured, existing.SortOrder
			_, err = s.Update(ctx, existing.ID, in)
		} else {
			_, err = s.Create(ctx, in)
		}
		switch {
		case err == nil && existing != nil:
			res.Updated++
		case err == nil:
			res.Created++
		case errors.Is(err, ErrInvalid) || errors.Is(err, ErrSlugTaken):
			res.fail(row, "%v", err)
		default:
			return nil, err
		}
	}
	return res, nil
}

func (s *ProductService) findForImport(ctx context.Context, in ProductInput) (*domain.Product, error) {
	var (
		p   *domain.Product
		err error
	)
	if sku := strings.TrimSpace(in.SKU); sku != "" {
		p, err = s.repo.FindBySKU(ctx, sku)
	} else {
		p, err = s.repo.FindBySlug(ctx, utils.DeriveSlug(in.Slug, in.Name))
	}
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// Export 每行嵌入缩略图；抓图顺序执行，失败留空单元格并计数
func (s *ProductService) Export(ctx context.Context) ([]byte, excel.ExportReport, error) {
	products, err := s.repo.Find(ctx, repo.ProductQuery{})
	if err != nil {
		return nil, excel.ExportReport{}, err
	}
	cats, err := s.categories.List(ctx, false)
	if err != nil {
		return nil, excel.ExportReport{}, err
	}
	catName := make(map[string]string, len(cats))
	for _, c := range cats {
		catName[c.ID] = c.Name
	}
	recs := make([]excel.ProductRecord, 0, len(products))
	for _, p := range products {
		recs = append(recs, excel.ProductRecord{
			Thumbnail: p.Thumbnail, SKU: p.SKU, Name: p.Name, Category: catName[p.CategoryID],
			Brand: p.Brand, Price: p.Price, SalePrice: p.SalePrice, Stock: p.Stock, Status: int(p.Status),
		})
	}
	b, rep, err := excel.WriteProducts(ctx, recs, excel.ExportOptions{
		Fetcher:      s.fetcher,
		ImageTimeout: s.imageTimeout,
		OnImageError: func(url string, err error) {
			s.log.Debug("export image skipped", zap.String("url", url), zap.Error(err))
		},
	})
	if err == nil && rep.ImageFailures > 0 {
		s.log.Warn("product export finished with missing images",
			zap.Int("rows", rep.Rows), zap.Int("failures", rep.ImageFailures))
	}
	return b, rep, err
}
