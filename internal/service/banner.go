package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"go.uber.org/zap"

	"go-shop-admin/internal/core/cache"
	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/repo"
	"go-shop-admin/internal/storage"
	"go-shop-admin/pkg/listview"
	"go-shop-admin/pkg/utils"
)

type BannerService struct {
	repo  *repo.BannerRepo
	store storage.Storage
	inv   invalidator
	cache *cache.Cache
	log   *zap.Logger
}

// BannerForm multipart 表单（image 为文件字段，单独传入）
type BannerForm struct {
	Title    string `form:"title" binding:"required,max=191"`
	Link     string `form:"link" binding:"max=512"`
	Position int    `form:"position" binding:"gte=0"`
	Status   *int   `form:"status" binding:"omitempty,oneof=0 1"`
}

type ListQuery struct {
	Name   string
	Status listview.StatusFilter
	Page   int
	Limit  int
}

type BannerList struct {
	Items      []domain.Banner     `json:"items"`
	Pagination listview.Pagination `json:"pagination"`
	Stats      listview.Stats      `json:"stats"`
}

var allowedImageTypes = map[string]struct{}{
	"image/png": {}, "image/jpeg": {}, "image/gif": {}, "image/webp": {},
}

func (s *BannerService) List(ctx context.Context, q ListQuery) (*BannerList, error) {
	all, err := s.repo.Ordered(ctx, false)
	if err != nil {
		return nil, err
	}
	page, size := listview.NormalizePaging(q.Page, q.Limit)
	p := listview.Paginate(listview.Filter(all, listview.Criteria{Name: q.Name, Status: q.Status}), size, page)
	return &BannerList{Items: p.Items, Pagination: p.Meta(), Stats: domain.BannerProfile.Aggregate(all)}, nil
}

// Public 前台首页 banner，缓存
func (s *BannerService) Public(ctx context.Context) ([]domain.Banner, error) {
	out, err := cache.GetOrLoadJSON(s.cache, ctx, cache.KeyPublicBanners, cacheTTL, func(ctx context.Context) (*[]domain.Banner, error) {
		bs, err := s.repo.Ordered(ctx, true)
		return &bs, err
	})
	if err != nil || out == nil {
		return nil, err
	}
	return *out, nil
}

func (s *BannerService) Get(ctx context.Context, id string) (*domain.Banner, error) {
	b, err := s.repo.FindByID(ctx, id)
	return b, notFound(err, "banner")
}

func (s *BannerService) Create(ctx context.Context, in BannerForm, image *multipart.FileHeader) (*domain.Banner, error) {
	if image == nil {
		return nil, invalid("image is required")
	}
	b := &domain.Banner{
		ID:       utils.NewID(),
		Title:    strings.TrimSpace(in.Title),
		Link:     strings.TrimSpace(in.Link),
		Position: in.Position,
		Status:   domain.StatusPublished,
	}
	if in.Status != nil {
		b.Status = domain.Status(*in.Status)
	}
	if b.Title == "" {
		return nil, invalid("title is required")
	}
	url, err := s.upload(ctx, image)
	if err != nil {
		return nil, err
	}
	b.ImageURL = url
	if err := s.repo.Create(ctx, b); err != nil {
		s.removeImage(ctx, url)
		return nil, err
	}
	s.inv.drop(ctx, cache.KeyPublicBanners)
	return b, nil
}

// Update image 为空时保留原图；替换成功后删除旧图
func (s *BannerService) Update(ctx context.Context, id string, in BannerForm, image *multipart.FileHeader) (*domain.Banner, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title is required")
	}
	old := b.ImageURL
	b.Title, b.Link, b.Position = strings.TrimSpace(in.Title), strings.TrimSpace(in.Link), in.Position
	if in.Status != nil {
		b.Status = domain.Status(*in.Status)
	}
	if image != nil {
		url, err := s.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		b.ImageURL = url
	}
	if err := s.repo.Save(ctx, b); err != nil {
		if b.ImageURL != old {
			s.removeImage(ctx, b.ImageURL)
		}
		return nil, err
	}
	if b.ImageURL != old {
		s.removeImage(ctx, old)
	}
	s.inv.drop(ctx, cache.KeyPublicBanners)
	return b, nil
}

func (s *BannerService) SetStatus(ctx context.Context, id string, status int) (*domain.Banner, error) {
	if !domain.Status(status).Valid() {
		return nil, invalid("status must be 0 or 1")
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, notFound(err, "banner")
	}
	s.inv.drop(ctx, cache.KeyPublicBanners)
	return s.Get(ctx, id)
}

func (s *BannerService) Delete(ctx context.Context, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "banner")
	}
	s.removeImage(ctx, b.ImageURL)
	s.inv.drop(ctx, cache.KeyPublicBanners)
	return nil
}

func (s *BannerService) upload(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if s.store == nil {
		return "", errors.New("banner: object storage not configured")
	}
	ct := fh.Header.Get("Content-Type")
	if _, ok := allowedImageTypes[ct]; !ok {
		return "", invalid("unsupported image type %q", ct)
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return s.store.Put(ctx, storage.ObjectKey("banners", fh.Filename), ct, f)
}

// removeImage 外链图片不归本存储管理，忽略
func (s *BannerService) removeImage(ctx context.Context, url string) {
	if s.store == nil || url == "" {
		return
	}
	if err := s.store.Delete(ctx, url); err != nil && !errors.Is(err, storage.ErrNotOwned) {
		s.log.Warn("delete banner image failed", zap.String("url", url), zap.Error(err))
	}
}
