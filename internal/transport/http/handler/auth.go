package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/service"
	"go-shop-admin/internal/transport/http/ez"
	mdw "go-shop-admin/internal/transport/http/middleware"
)

type loginIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// MountAuth /auth/login 挂在公共分组（按 IP 限速），/auth/me 挂在鉴权分组
func MountAuth(public, authed *gin.RouterGroup, svc *service.AuthService) {
	ezPublic := ez.New(public.Group("", mdw.RateLimitPerIP(1, 10)))
	ez.RegisterAction(ezPublic, ez.Action[loginIn, *service.LoginResult]{
		Method: http.MethodPost, Path: "/auth/login", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (*service.LoginResult, error) {
			return result(svc.Login(c, in.Email, in.Password))
		},
	})

	ez.RegisterAction(ez.New(authed), ez.Action[struct{}, *domain.AdminUser]{
		Method: http.MethodGet, Path: "/auth/me", Binder: ez.BindNone,
		Auth: true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.AdminUser, error) {
			return result(svc.Me(c, c.GetString(mdw.KeyUserID)))
		},
	})
}
