package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/service"
	"go-shop-admin/internal/transport/http/ez"
)

type Dashboard struct{ svc *service.DashboardService }

func (h *Dashboard) MountAdmin(g *gin.RouterGroup) {
	ez.New(g).GET("/dashboard", func(c *gin.Context) (any, error) {
		return result(h.svc.Overview(c))
	})
}

// AdminUsers 管理员账号列表
type AdminUsers struct{ svc *service.AuthService }

type userListQ struct {
	Offset int    `form:"offset,default=0" binding:"gte=0"`
	Limit  int    `form:"limit,default=20"`
	Q      string `form:"q"` // 按 email/name 模糊搜
}

type userListOut struct {
	Total int64              `json:"total"`
	Items []domain.AdminUser `json:"items"`
}

func (h *AdminUsers) MountAdmin(g *gin.RouterGroup) {
	ez.RegisterAction(ez.New(g), ez.Action[userListQ, userListOut]{
		Method: http.MethodGet, Path: "/users", Binder: ez.BindQuery,
		Auth: true, Roles: []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, in *userListQ) (userListOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			users, total, err := h.svc.Users(in.Q, in.Offset, in.Limit)
			if err != nil {
				return userListOut{}, ez.Internal("list users failed", err)
			}
			return userListOut{Total: total, Items: users}, nil
		},
	})
}
