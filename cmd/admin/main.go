package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-shop-admin/internal/app"
	"go-shop-admin/internal/core/config"
	"go-shop-admin/internal/core/logger"
	"go-shop-admin/internal/core/server"
	"go-shop-admin/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	a, closeDeps := app.Build(context.Background(), cfg, log)
	defer closeDeps()
	a.EnsureAdmin(context.Background())

	// 路由（后台端）
	r := router.NewAdminEngine(a.Deps)

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 10*time.Second, router.ExportTimeout+30*time.Second, 60*time.Second)

	baseURL := server.BaseURL(cfg.App.Admin.Host, cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_api", baseURL+"/api"),
		zap.Bool("redis", a.Cache.Enabled()),
		zap.String("storage", cfg.Storage.Driver),
	)
	server.Run(srv, log, "admin api")
}
