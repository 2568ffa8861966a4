package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/transport/http/handler"
	mdw "go-shop-admin/internal/transport/http/middleware"
)

// ExportTimeout 商品导出的请求超时；HTTP server 的 WriteTimeout 不能小于它
const ExportTimeout = 5 * time.Minute

// NewAdminEngine 管理端：/api 下除登录外统一要求 admin 角色
func NewAdminEngine(d Deps) *gin.Engine {
	r := newEngine(d, limits{
		rps: 200, burst: 400, concurrency: 300,
		maxBody: 32 << 20, // xlsx 导入与 banner 图片
		timeout: 60 * time.Second,
		slow: map[string]time.Duration{
			// 逐行拉取缩略图嵌入 xlsx
			"/api/products/export":   ExportTimeout,
			"/api/categories/export": 2 * time.Minute,
		},
	})

	api := r.Group("/api")
	admin := api.Group("", mdw.AuthJWT(d.JWT, domain.RoleAdmin))
	handler.MountAuth(api, admin, d.Services.Auth)

	var reg Registry
	reg.Register(handler.Modules(d.Services)...)
	reg.MountAdmin(admin)
	return r
}
