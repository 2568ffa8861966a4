package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-shop-admin/internal/core/auth"
	"go-shop-admin/internal/core/server"
	"go-shop-admin/internal/service"
	mdw "go-shop-admin/internal/transport/http/middleware"
)

// Deps engine 依赖
type Deps struct {
	Log      *zap.Logger
	JWT      *auth.JWTer
	Services *service.Services
	Origins  []string

	// 本地存储时由本服务直接提供静态文件
	UploadDir string
	UploadURL string
}

type limits struct {
	rps         rate.Limit
	burst       int
	concurrency int64
	maxBody     int64
	timeout     time.Duration
	slow        map[string]time.Duration
}

func newEngine(d Deps, lim limits) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	r := server.NewEngine(d.Log, d.Origins)
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(lim.rps, lim.burst),
		mdw.ConcurrencyLimit(lim.concurrency),
		mdw.MaxBodyBytes(lim.maxBody),
		mdw.Timeout(lim.timeout, lim.slow),
		mdw.Recovery(d.Log),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", mdw.MetricsHandler())
	if d.UploadDir != "" && d.UploadURL != "" {
		r.Static(d.UploadURL, d.UploadDir)
	}
	return r
}
