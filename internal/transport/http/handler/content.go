package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-shop-admin/internal/service"
	"go-shop-admin/internal/transport/http/ez"
)

type Banners struct{ svc *service.BannerService }

func (h *Banners) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[listQ, *service.BannerList]{
		Method: http.MethodGet, Path: "/banners", Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (*service.BannerList, error) {
			return result(h.svc.List(c, in.query()))
		},
	})
	e.GET("/banners/:id", func(c *gin.Context) (any, error) {
		return result(h.svc.Get(c, c.Param("id")))
	})
	// multipart：字段 + image 文件
	ez.RegisterAction(e, ez.Action[service.BannerForm, any]{
		Method: http.MethodPost, Path: "/banners", Binder: ez.BindForm,
		Handler: func(c *gin.Context, in *service.BannerForm) (any, error) {
			fh, err := formFile(c, "image")
			if err != nil {
				return nil, err
			}
			return result(h.svc.Create(c, *in, fh))
		},
	})
	ez.RegisterAction(e, ez.Action[service.BannerForm, any]{
		Method: http.MethodPut, Path: "/banners/:id", Binder: ez.BindForm,
		Handler: func(c *gin.Context, in *service.BannerForm) (any, error) {
			fh, err := formFile(c, "image")
			if err != nil {
				return nil, err
			}
			return result(h.svc.Update(c, c.Param("id"), *in, fh))
		},
	})
	ez.RegisterAction(e, ez.Action[statusIn, any]{
		Method: http.MethodPatch, Path: "/banners/:id/status", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *statusIn) (any, error) {
			return result(h.svc.SetStatus(c, c.Param("id"), *in.Status))
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, idOut]{
		Method: http.MethodDelete, Path: "/banners/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (idOut, error) {
			return idOut{ID: c.Param("id")}, fail(h.svc.Delete(c, c.Param("id")))
		},
	})
}

func (h *Banners) MountAPI(g *gin.RouterGroup) {
	ez.New(g).GET("/banners", func(c *gin.Context) (any, error) {
		return result(h.svc.Public(c))
	})
}

type Posts struct{ svc *service.PostService }

func (h *Posts) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[listQ, *service.PostList]{
		Method: http.MethodGet, Path: "/posts", Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (*service.PostList, error) {
			return result(h.svc.List(c, in.query()))
		},
	})
	e.GET("/posts/:id", func(c *gin.Context) (any, error) {
		return result(h.svc.Get(c, c.Param("id")))
	})
	ez.RegisterAction(e, ez.Action[service.PostInput, any]{
		Method: http.MethodPost, Path: "/posts", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.PostInput) (any, error) {
			return result(h.svc.Create(c, *in))
		},
	})
	ez.RegisterAction(e, ez.Action[service.PostInput, any]{
		Method: http.MethodPut, Path: "/posts/:id", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.PostInput) (any, error) {
			return result(h.svc.Update(c, c.Param("id"), *in))
		},
	})
	ez.RegisterAction(e, ez.Action[statusIn, any]{
		Method: http.MethodPatch, Path: "/posts/:id/status", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *statusIn) (any, error) {
			return result(h.svc.SetStatus(c, c.Param("id"), *in.Status))
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, idOut]{
		Method: http.MethodDelete, Path: "/posts/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (idOut, error) {
			return idOut{ID: c.Param("id")}, fail(h.svc.Delete(c, c.Param("id")))
		},
	})
}
