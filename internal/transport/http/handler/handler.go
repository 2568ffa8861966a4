// Package handler HTTP 模块：管理端 /api 与前台 /api/v1
package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-shop-admin/internal/service"
	"go-shop-admin/internal/transport/http/ez"
	"go-shop-admin/pkg/listview"
)

// Modules 所有模块，交给 router.Registry 挂载
func Modules(s *service.Services) []any {
	return []any{
		&Categories{svc: s.Categories},
		&Products{svc: s.Products, reviews: s.Reviews},
		&Banners{svc: s.Banners},
		&Posts{svc: s.Posts},
		&Orders{svc: s.Orders},
		&Payments{svc: s.Payments},
		&Coupons{s: s},
		&Reviews{s: s},
		&Dashboard{svc: s.Dashboard},
		&AdminUsers{svc: s.Auth},
	}
}

// fail 业务错误 -> AErr
func fail(err error) error {
	var ae *ez.AErr
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ae):
		return err
	case errors.Is(err, service.ErrNotFound):
		return ez.NotFound(err.Error())
	case errors.Is(err, service.ErrSlugTaken):
		return ez.Conflict(err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return ez.Unauthorized(err.Error())
	case errors.Is(err, service.ErrInvalid),
		errors.Is(err, service.ErrInvalidParent),
		errors.Is(err, service.ErrCycleDetected),
		errors.Is(err, service.ErrRefundReason),
		errors.Is(err, service.ErrRefundAmount):
		return ez.BadRequest(err.Error())
	case errors.Is(err, service.ErrNotInTrash),
		errors.Is(err, service.ErrTransitionNotAllowed),
		errors.Is(err, service.ErrPaymentTerminal),
		errors.Is(err, service.ErrUseRefundAction),
		errors.Is(err, service.ErrRefundNotAllowed),
		errors.Is(err, service.ErrCouponUnavailable):
		return ez.Unprocessable(err.Error())
	}
	return ez.Internal("internal error", err)
}

func result[T any](v T, err error) (T, error) { return v, fail(err) }

// listQ 通用列表参数
type listQ struct {
	Name   string `form:"name"`
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (q listQ) query() service.ListQuery {
	return service.ListQuery{Name: q.Name, Status: listview.ParseStatusFilter(q.Status), Page: q.Page, Limit: q.Limit}
}

type statusIn struct {
	Status *int `json:"status" binding:"required,oneof=0 1"`
}

// formFile 可选文件字段；未上传返回 nil
func formFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, ez.BadRequest("invalid multipart form: " + err.Error())
	}
	return fh, nil
}

type idOut struct {
	ID string `json:"id"`
}
