package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"go-shop-admin/internal/core/auth"
	resp "go-shop-admin/internal/transport/http/response"
)

// context key
const (
	KeyUserID = "userId"
	KeyRole   = "role"
	KeyClaims = "claims"
)

// AuthJWT 校验 Bearer token；requireRoles 为空时只要求登录
func AuthJWT(j *auth.JWTer, requireRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Abort(c, resp.CodeUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimSpace(strings.TrimPrefix(ah, "Bearer ")))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "token expired"
			}
			resp.Abort(c, resp.CodeUnauthorized, msg)
			return
		}
		if len(requireRoles) > 0 && !hasRole(claims.Role, requireRoles) {
			resp.Abort(c, resp.CodeForbidden, "forbidden")
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
