package service

import (
	"context"
	"strings"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/repo"
	"go-shop-admin/pkg/listview"
	"go-shop-admin/pkg/utils"
)

type PostService struct {
	repo *repo.PostRepo
	inv  invalidator
}

type PostInput struct {
	Title         string `json:"title" binding:"required,max=191"`
	Slug          string `json:"slug" binding:"max=191"`
	Summary       string `json:"summary" binding:"max=512"`
	Content       string `json:"content"`
	FeaturedImage string `json:"featuredImage" binding:"max=512"`
	Author        string `json:"author" binding:"max=64"`
	Status        *int   `json:"status" binding:"omitempty,oneof=0 1"`
	SortOrder     int    `json:"sortOrder"`
}

type PostList struct {
	Items      []domain.Post       `json:"items"`
	Pagination listview.Pagination `json:"pagination"`
	Stats      listview.Stats      `json:"stats"`
}

func (s *PostService) List(ctx context.Context, q ListQuery) (*PostList, error) {
	all, err := s.repo.Ordered(ctx)
	if err != nil {
		return nil, err
	}
	page, size := listview.NormalizePaging(q.Page, q.Limit)
	p := listview.Paginate(listview.Filter(all, listview.Criteria{Name: q.Name, Status: q.Status}), size, page)
	return &PostList{Items: p.Items, Pagination: p.Meta(), Stats: domain.PostProfile.Aggregate(all)}, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	p, err := s.repo.FindByID(ctx, id)
	return p, notFound(err, "post")
}

func (s *PostService) Create(ctx context.Context, in PostInput) (*domain.Post, error) {
	p := &domain.Post{ID: utils.NewID(), Status: domain.StatusPublished}
	if err := s.apply(ctx, p, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.inv.drop(ctx)
	return p, nil
}

func (s *PostService) Update(ctx context.Context, id string, in PostInput) (*domain.Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, p, in); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.inv.drop(ctx)
	return p, nil
}

func (s *PostService) apply(ctx context.Context, p *domain.Post, in PostInput) error {
	p.Title = strings.TrimSpace(in.Title)
	p.Slug = utils.DeriveSlug(in.Slug, in.Title)
	p.Summary, p.Content = in.Summary, in.Content
	p.FeaturedImage, p.Author = in.FeaturedImage, strings.TrimSpace(in.Author)
	p.SortOrder = in.SortOrder
	if in.Status != nil {
		p.Status = domain.Status(*in.Status)
	}
	if p.Title == "" {
		return invalid("title is required")
	}
	if p.Slug == "" {
		return invalid("slug must contain letters or digits")
	}
	taken, err := s.repo.SlugTaken(ctx, p.Slug, p.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	return nil
}

func (s *PostService) SetStatus(ctx context.Context, id string, status int) (*domain.Post, error) {
	if !domain.Status(status).Valid() {
		return nil, invalid("status must be 0 or 1")
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, notFound(err, "post")
	}
	s.inv.drop(ctx)
	return s.Get(ctx, id)
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "post")
	}
	s.inv.drop(ctx)
	return nil
}
