package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"go-shop-admin/internal/transport/http/handler"
)

// NewAPIEngine 前台只读接口 + 下单 / 评价 / 优惠券校验，无需登录
func NewAPIEngine(d Deps) *gin.Engine {
	r := newEngine(d, limits{
		rps: 200, burst: 400, concurrency: 300,
		maxBody: 1 << 20,
		timeout: 10 * time.Second,
	})

	var reg Registry
	reg.Register(handler.Modules(d.Services)...)
	reg.MountAPI(r.Group("/api/v1"))
	return r
}
