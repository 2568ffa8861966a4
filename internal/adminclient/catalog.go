package adminclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/service"
	"go-shop-admin/pkg/listview"
)

// ListParams 通用列表参数；Status 取 "all" / "active" / "inactive"
type ListParams struct {
	Name   string
	Status string
	Page   int
	Limit  int
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Name != "" {
		q.Set("name", p.Name)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

func statusBody(status int) map[string]int { return map[string]int{"status": status} }

// ListCategories 拉取当前页；不带筛选条件的首页才会整体替换本地缓存
func (c *Client) ListCategories(ctx context.Context, p ListParams, trashed bool) (*service.CategoryList, error) {
	q := p.values()
	if trashed {
		q.Set("deleted", "true")
	}
	var out service.CategoryList
	if err := c.do(ctx, http.MethodGet, "/api/categories", q, nil, &out); err != nil {
		return nil, err
	}
	if !trashed {
		items := make([]domain.Category, len(out.Items))
		for i, r := range out.Items {
			items[i] = r.Category
		}
		if p.Name == "" && (p.Status == "" || p.Status == "all") && out.Pagination.Pages <= 1 {
			c.Categories.Replace(items)
		} else {
			c.Categories.Upsert(items...)
		}
	}
	return &out, nil
}

// CategoryRows 用本地缓存建树（父级下拉等场景）
func (c *Client) CategoryRows() ([]listview.Row[domain.Category], error) {
	return listview.BuildTree(c.Categories.Items(), domain.CategoryOrder)
}

func (c *Client) CategoryOptions(ctx context.Context, exclude string) ([]service.CategoryOption, error) {
	q := url.Values{}
	if exclude != "" {
		q.Set("exclude", exclude)
	}
	var out []service.CategoryOption
	if err := c.do(ctx, http.MethodGet, "/api/categories/options", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) categoryWrite(ctx context.Context, method, path string, in any) (*domain.Category, error) {
	var out domain.Category
	if err := c.do(ctx, method, path, nil, in, &out); err != nil {
		return nil, err
	}
	c.Categories.Upsert(out)
	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, in service.CategoryInput) (*domain.Category, error) {
	return c.categoryWrite(ctx, http.MethodPost, "/api/categories", in)
}

func (c *Client) UpdateCategory(ctx context.Context, id string, in service.CategoryInput) (*domain.Category, error) {
	return c.categoryWrite(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), in)
}

func (c *Client) PatchCategory(ctx context.Context, id string, p service.CategoryPatch) (*domain.Category, error) {
	return c.categoryWrite(ctx, http.MethodPatch, "/api/categories/"+url.PathEscape(id), p)
}

func (c *Client) SetCategoryStatus(ctx context.Context, id string, status int) (*domain.Category, error) {
	return c.categoryWrite(ctx, http.MethodPatch, "/api/categories/"+url.PathEscape(id)+"/status", statusBody(status))
}

// DeleteCategory 软删除（进回收站）
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return err
	}
	c.Categories.Remove(id)
	return nil
}

func (c *Client) PurgeCategory(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id)+"/permanent", nil, nil, nil); err != nil {
		return err
	}
	c.Categories.Remove(id)
	return nil
}

// RestoreCategories 恢复后的实体需要重新 ListCategories 才会回到缓存
func (c *Client) RestoreCategories(ctx context.Context, ids ...string) (int64, error) {
	var out struct {
		Restored int64 `json:"restored"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/categories/restore", nil,
		map[string][]string{"categoryIds": ids}, &out); err != nil {
		return 0, err
	}
	return out.Restored, nil
}

func (c *Client) ExportCategories(ctx context.Context) ([]byte, error) {
	return c.download(ctx, "/api/categories/export")
}

func (c *Client) ImportCategories(ctx context.Context, filename string, r io.Reader) (*service.ImportResult, error) {
	var out service.ImportResult
	if err := c.upload(ctx, "/api/categories/import", "file", filename, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ProductParams struct {
	ListParams
	CategoryID string
	Brand      string
}

func (c *Client) ListProducts(ctx context.Context, p ProductParams) (*service.ProductList, error) {
	q := p.values()
	if p.CategoryID != "" {
		q.Set("category", p.CategoryID)
	}
	if p.Brand != "" {
		q.Set("brand", p.Brand)
	}
	var out service.ProductList
	if err := c.do(ctx, http.MethodGet, "/api/products", q, nil, &out); err != nil {
		return nil, err
	}
	c.Products.Upsert(out.Items...)
	return &out, nil
}

func (c *Client) SetProductStatus(ctx context.Context, id string, status int) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPatch, "/api/products/"+url.PathEscape(id)+"/status", nil, statusBody(status), &out); err != nil {
		return nil, err
	}
	c.Products.Upsert(out)
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return err
	}
	c.Products.Remove(id)
	return nil
}

func (c *Client) ImportProducts(ctx context.Context, rows []service.ProductImportRow) (*service.ImportResult, error) {
	var out service.ImportResult
	if err := c.do(ctx, http.MethodPost, "/api/products/import-excel", nil, rows, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ExportProducts(ctx context.Context) ([]byte, error) {
	return c.download(ctx, "/api/products/export")
}

func (c *Client) ListBanners(ctx context.Context, p ListParams) (*service.BannerList, error) {
	var out service.BannerList
	if err := c.do(ctx, http.MethodGet, "/api/banners", p.values(), nil, &out); err != nil {
		return nil, err
	}
	c.Banners.Upsert(out.Items...)
	return &out, nil
}

func (c *Client) SetBannerStatus(ctx context.Context, id string, status int) (*domain.Banner, error) {
	var out domain.Banner
	if err := c.do(ctx, http.MethodPatch, "/api/banners/"+url.PathEscape(id)+"/status", nil, statusBody(status), &out); err != nil {
		return nil, err
	}
	c.Banners.Upsert(out)
	return &out, nil
}

func (c *Client) DeleteBanner(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/banners/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return err
	}
	c.Banners.Remove(id)
	return nil
}
