package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/excel"
	"go-shop-admin/internal/service"
	"go-shop-admin/internal/transport/http/ez"
	"go-shop-admin/pkg/listview"
)

type Products struct {
	svc     *service.ProductService
	reviews *service.ReviewService
}

func (Products) Priority() int { return 20 }

type productListQ struct {
	listQ
	Category string `form:"category"`
	Brand    string `form:"brand"`
}

func (q productListQ) query() service.ProductListQuery {
	return service.ProductListQuery{
		Name: q.Name, Status: listview.ParseStatusFilter(q.Status), CategoryID: q.Category,
		Brand: q.Brand, Page: q.Page, Limit: q.Limit,
	}
}

func (h *Products) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[productListQ, *service.ProductList]{
		Method: http.MethodGet, Path: "/products", Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *productListQ) (*service.ProductList, error) {
			return result(h.svc.List(c, in.query()))
		},
	})
	ez.Download(e, "/products/export", excel.ContentType, func(c *gin.Context) (string, []byte, error) {
		b, rep, err := h.svc.Export(c)
		if err != nil {
			return "", nil, fail(err)
		}
		c.Header("X-Export-Rows", strconv.Itoa(rep.Rows))
		c.Header("X-Export-Image-Failures", strconv.Itoa(rep.ImageFailures))
		return "products-" + time.Now().Format("20060102") + ".xlsx", b, nil
	})
	ez.RegisterAction(e, ez.Action[[]service.ProductImportRow, *service.ImportResult]{
		Method: http.MethodPost, Path: "/products/import-excel", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *[]service.ProductImportRow) (*service.ImportResult, error) {
			return result(h.svc.Import(c, *in))
		},
	})
	e.GET("/products/:id", func(c *gin.Context) (any, error) {
		return result(h.svc.Get(c, c.Param("id")))
	})
	ez.RegisterAction(e, ez.Action[service.ProductInput, any]{
		Method: http.MethodPost, Path: "/products", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.ProductInput) (any, error) {
			return result(h.svc.Create(c, *in))
		},
	})
	ez.RegisterAction(e, ez.Action[service.ProductInput, any]{
		Method: http.MethodPut, Path: "/products/:id", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.ProductInput) (any, error) {
			return result(h.svc.Update(c, c.Param("id"), *in))
		},
	})
	ez.RegisterAction(e, ez.Action[statusIn, any]{
		Method: http.MethodPatch, Path: "/products/:id/status", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *statusIn) (any, error) {
			return result(h.svc.SetStatus(c, c.Param("id"), *in.Status))
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, idOut]{
		Method: http.MethodDelete, Path: "/products/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (idOut, error) {
			return idOut{ID: c.Param("id")}, fail(h.svc.Delete(c, c.Param("id")))
		},
	})
}

// MountAPI 前台只暴露上架商品
func (h *Products) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[productListQ, *service.ProductList]{
		Method: http.MethodGet, Path: "/products", Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *productListQ) (*service.ProductList, error) {
			return result(h.svc.PublicList(c, in.query()))
		},
	})
	e.GET("/products/:id", func(c *gin.Context) (any, error) {
		p, err := h.svc.Get(c, c.Param("id"))
		if err != nil {
			return nil, fail(err)
		}
		if p.Status != domain.StatusPublished {
			return nil, ez.NotFound("product not found")
		}
		return p, nil
	})
	e.GET("/products/:id/reviews", func(c *gin.Context) (any, error) {
		return result(h.reviews.Published(c, c.Param("id")))
	})
}
