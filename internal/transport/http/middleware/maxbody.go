package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "go-shop-admin/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小；超限时读取 body 的 handler 会拿到 *http.MaxBytesError
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			reject("body")
			resp.Abort(c, resp.CodeTooLarge, "request body too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
