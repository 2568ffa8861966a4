package handler

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-shop-admin/internal/excel"
	"go-shop-admin/internal/service"
	"go-shop-admin/internal/transport/http/ez"
	"go-shop-admin/pkg/listview"
)

type Categories struct{ svc *service.CategoryService }

func (Categories) Priority() int { return 10 }

type categoryListQ struct {
	listQ
	Deleted bool `form:"deleted"`
}

type restoreIn struct {
	CategoryIDs []string `json:"categoryIds" binding:"required,min=1"`
}

func (h *Categories) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[categoryListQ, *service.CategoryList]{
		Method: http.MethodGet, Path: "/categories", Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *categoryListQ) (*service.CategoryList, error) {
			return result(h.svc.List(c, service.CategoryListQuery{
				Trashed: in.Deleted, Name: in.Name, Status: listview.ParseStatusFilter(in.Status),
				Page: in.Page, Limit: in.Limit,
			}))
		},
	})
	e.GET("/categories/options", func(c *gin.Context) (any, error) {
		return result(h.svc.Options(c, c.Query("exclude")))
	})
	ez.Download(e, "/categories/export", excel.ContentType, func(c *gin.Context) (string, []byte, error) {
		b, err := h.svc.Export(c)
		return "categories-" + time.Now().Format("20060102") + ".xlsx", b, fail(err)
	})
	ez.FILE(e, "/categories/import", "file", func(c *gin.Context, fh *multipart.FileHeader) (any, error) {
		f, err := fh.Open()
		if err != nil {
			return nil, ez.BadRequest("cannot read uploaded file")
		}
		defer f.Close()
		return result(h.svc.Import(c, f))
	})
	ez.RegisterAction(e, ez.Action[restoreIn, gin.H]{
		Method: http.MethodPost, Path: "/categories/restore", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *restoreIn) (gin.H, error) {
			n, err := h.svc.Restore(c, in.CategoryIDs)
			if err != nil {
				return nil, fail(err)
			}
			return gin.H{"restored": n}, nil
		},
	})
	e.GET("/categories/:id", func(c *gin.Context) (any, error) {
		return result(h.svc.Get(c, c.Param("id")))
	})
	ez.RegisterAction(e, ez.Action[service.CategoryInput, any]{
		Method: http.MethodPost, Path: "/categories", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.CategoryInput) (any, error) {
			return result(h.svc.Create(c, *in))
		},
	})
	ez.RegisterAction(e, ez.Action[service.CategoryInput, any]{
		Method: http.MethodPut, Path: "/categories/:id", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.CategoryInput) (any, error) {
			return result(h.svc.Update(c, c.Param("id"), *in))
		},
	})
	ez.RegisterAction(e, ez.Action[service.CategoryPatch, any]{
		Method: http.MethodPatch, Path: "/categories/:id", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.CategoryPatch) (any, error) {
			return result(h.svc.Patch(c, c.Param("id"), *in))
		},
	})
	ez.RegisterAction(e, ez.Action[statusIn, any]{
		Method: http.MethodPatch, Path: "/categories/:id/status", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *statusIn) (any, error) {
			return result(h.svc.SetStatus(c, c.Param("id"), *in.Status))
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, idOut]{
		Method: http.MethodDelete, Path: "/categories/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (idOut, error) {
			return idOut{ID: c.Param("id")}, fail(h.svc.Delete(c, c.Param("id")))
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, idOut]{
		Method: http.MethodDelete, Path: "/categories/:id/permanent", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (idOut, error) {
			return idOut{ID: c.Param("id")}, fail(h.svc.Purge(c, c.Param("id")))
		},
	})
}

// MountAPI 前台分类树
func (h *Categories) MountAPI(g *gin.RouterGroup) {
	ez.New(g).GET("/categories", func(c *gin.Context) (any, error) {
		return result(h.svc.PublicTree(c))
	})
}
