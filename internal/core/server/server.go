package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewEngine 基础 gin 引擎：zap panic 恢复 + CORS（Authorization 头放行）
func NewEngine(l *zap.Logger, origins []string) *gin.Engine {
	r := gin.New()
	// *gin.Context 作为 context 传入 service 时沿用请求的超时与取消
	r.ContextWithFallback = true
	r.Use(ginzap.RecoveryWithZap(l, true))

	cc := cors.DefaultConfig()
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	cc.AddAllowHeaders("Authorization", "X-Request-ID")
	cc.AddExposeHeaders("X-Request-ID", "Content-Disposition")
	r.Use(cors.New(cc))
	return r
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    rt,
		WriteTimeout:   wt,
		IdleTimeout:    it,
		MaxHeaderBytes: 1 << 20, // 1MB
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }

// BaseURL 启动日志里可点击的地址
func BaseURL(host string, port int) string {
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return "http://" + host + ":" + fmt.Sprint(port)
}

// Run 异步启动，收到 SIGINT/SIGTERM 后优雅关闭
func Run(srv *http.Server, l *zap.Logger, name string) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal(name+" start FAILED", zap.Error(err))
		}
	}()
	l.Info(name+" started SUCCESS", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Warn(name+" shutdown", zap.Error(err))
	}
	l.Info(name + " stopped gracefully")
}
