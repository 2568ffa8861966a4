package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	resp "go-shop-admin/internal/transport/http/response"
)

// Timeout 默认超时 d；slow 按路由模板覆盖（如带图片的 xlsx 导出）
func Timeout(d time.Duration, slow map[string]time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := d
		if v, ok := slow[c.FullPath()]; ok {
			limit = v
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), limit)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			reject("timeout")
			resp.Abort(c, resp.CodeTimeout, "timeout")
		}
	}
}
