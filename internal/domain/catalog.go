package domain

import (
	"time"

	"gorm.io/gorm"

	"go-shop-admin/pkg/listview"
)

type Status = listview.Status

const (
	StatusUnpublished = listview.StatusUnpublished
	StatusPublished   = listview.StatusPublished
)

// Category 支持层级与回收站（软删）
type Category struct {
	ID          string         `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Name        string         `gorm:"size:191;not null" json:"name"`
	Slug        string         `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Image       string         `gorm:"size:512" json:"image"`
	ParentID    string         `gorm:"size:32;index;not null;default:''" json:"parentId"`
	Status      Status         `gorm:"not null" json:"status"`
	SortOrder   int            `gorm:"not null;default:0" json:"sortOrder"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (Category) TableName() string { return "categories" }

func (c Category) GetID() string       { return c.ID }
func (c Category) GetName() string     { return c.Name }
func (c Category) GetStatus() Status   { return c.Status }
func (c Category) GetParentID() string { return c.ParentID }

// CategoryOrder 兄弟节点排序键：sort_order 升序，其次创建时间
func CategoryOrder(a, b Category) bool {
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

type Product struct {
	ID          string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Name        string    `gorm:"size:191;not null" json:"name"`
	Slug        string    `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	SKU         string    `gorm:"column:sku;size:64;index" json:"sku"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	SalePrice   float64   `gorm:"not null;default:0" json:"salePrice"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	CategoryID  string    `gorm:"size:32;index" json:"categoryId"`
	Brand       string    `gorm:"size:64;index" json:"brand"`
	Thumbnail   string    `gorm:"size:512" json:"thumbnail"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	Status      Status    `gorm:"not null" json:"status"`
	IsFeatured  bool      `gorm:"not null;default:false" json:"isFeatured"`
	SortOrder   int       `gorm:"not null;default:0" json:"sortOrder"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

func (p Product) GetID() string     { return p.ID }
func (p Product) GetName() string   { return p.Name }
func (p Product) GetStatus() Status { return p.Status }

type Banner struct {
	ID        string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Title     string    `gorm:"size:191;not null" json:"title"`
	ImageURL  string    `gorm:"size:512" json:"imageUrl"`
	Link      string    `gorm:"size:512" json:"link"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	Status    Status    `gorm:"not null" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Banner) TableName() string { return "banners" }

func (b Banner) GetID() string     { return b.ID }
func (b Banner) GetName() string   { return b.Title }
func (b Banner) GetStatus() Status { return b.Status }

type Post struct {
	ID            string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Title         string    `gorm:"size:191;not null" json:"title" binding:"required,max=191"`
	Slug          string    `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Summary       string    `gorm:"size:512" json:"summary"`
	Content       string    `gorm:"type:text" json:"content"`
	FeaturedImage string    `gorm:"size:512" json:"featuredImage"`
	Author        string    `gorm:"size:64" json:"author"`
	Status        Status    `gorm:"not null" json:"status"`
	SortOrder     int       `gorm:"not null;default:0" json:"sortOrder"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Post) TableName() string { return "posts" }

func (p Post) GetID() string     { return p.ID }
func (p Post) GetName() string   { return p.Title }
func (p Post) GetStatus() Status { return p.Status }

type Review struct {
	ID         string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	ProductID  string    `gorm:"size:32;index;not null" json:"productId"`
	AuthorName string    `gorm:"size:64;not null" json:"authorName"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	Status     Status    `gorm:"not null;default:0" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Review) TableName() string { return "reviews" }

func (r Review) GetID() string     { return r.ID }
func (r Review) GetName() string   { return r.AuthorName + " " + r.Comment }
func (r Review) GetStatus() Status { return r.Status }
