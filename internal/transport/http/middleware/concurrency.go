package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "go-shop-admin/internal/transport/http/response"
)

// ConcurrencyLimit 同时处理的请求数上限（保护 DB 连接池）。
// 排队等待受请求 ctx 约束，放在 Timeout 之后时等待时间计入请求超时。
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if probe(c) {
			c.Next()
			return
		}
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			reject("busy")
			resp.Abort(c, resp.CodeUnavailable, "server busy")
			return
		}
		httpInflight.Inc()
		defer func() {
			httpInflight.Dec()
			sem.Release(1)
		}()
		c.Next()
	}
}
