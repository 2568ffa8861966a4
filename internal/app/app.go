// Package app 两个进程（用户端 / 后台端）共用的依赖装配
package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-shop-admin/internal/core/auth"
	"go-shop-admin/internal/core/cache"
	"go-shop-admin/internal/core/config"
	"go-shop-admin/internal/core/database"
	"go-shop-admin/internal/domain"
	"go-shop-admin/internal/service"
	"go-shop-admin/internal/storage"
	"go-shop-admin/internal/transport/http/router"
)

type App struct {
	Cfg   *config.Config
	Log   *zap.Logger
	DB    *gorm.DB
	Cache *cache.Cache
	Deps  router.Deps
}

// Build 失败直接 Fatal；返回的 cleanup 关闭 redis 与数据库连接
func Build(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, func()) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db, domain.Models()...); err != nil {
			l.Fatal("automigrate failed", zap.Error(err))
		}
		l.Info("automigrate done")
	}

	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Cache.Prefix)
	if c.Enabled() {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := c.Ping(pctx); err != nil {
			// redis 不可用时降级为直接查库
			l.Warn("redis unavailable, cache disabled", zap.Error(err))
			_ = c.Close()
			c = cache.New("", "", 0, cfg.Cache.Prefix)
		}
		cancel()
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		l.Fatal("storage init", zap.Error(err))
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	svc := service.New(db, c, store, jwter, l, service.Options{
		StrictTransitions: cfg.Orders.StrictTransitions,
		DashboardTTL:      time.Duration(cfg.Cache.DashboardTTLSec) * time.Second,
		ImageTimeout:      time.Duration(cfg.Export.ImageTimeoutSec) * time.Second,
		MaxImageBytes:     cfg.Export.MaxImageBytes,
	})

	d := router.Deps{Log: l, JWT: jwter, Services: svc, Origins: cfg.App.CORSOrigins}
	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		d.UploadDir, d.UploadURL = cfg.Storage.LocalDir, cfg.Storage.PublicURL
	}

	cleanup := func() {
		_ = c.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return &App{Cfg: cfg, Log: l, DB: db, Cache: c, Deps: d}, cleanup
}

// EnsureAdmin 配置了初始管理员时创建（已存在不改密码）
func (a *App) EnsureAdmin(ctx context.Context) {
	ad := a.Cfg.Admin
	created, err := a.Deps.Services.Auth.EnsureAdmin(ctx, ad.Email, ad.Password, ad.Name)
	if err != nil {
		a.Log.Fatal("ensure admin", zap.Error(err))
	}
	if created {
		a.Log.Info("initial admin created", zap.String("email", ad.Email))
	}
}
