package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-shop-admin/internal/core/auth"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Code    int    `json:"code"`
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

func serve(r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func ok(c *gin.Context) { c.String(http.StatusOK, "ok") }

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(KeyRequestID), 36)
	assert.Equal(t, w.Header().Get(KeyRequestID), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "abc")
	w, _ = serve(r, req)
	assert.Equal(t, "abc", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "x\" level=error")
	w, _ = serve(r, req)
	assert.Len(t, w.Body.String(), 36)
}

func TestAuthJWT(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s3cret"), Issuer: "test", TTL: time.Hour}
	r := gin.New()
	r.GET("/admin", AuthJWT(j, "admin"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(KeyUserID)+":"+c.GetString(KeyRole))
	})

	w, env := serve(r, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 401, env.Code)
	assert.False(t, env.Success)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w, env = serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid token", env.Msg)

	editor, _, err := j.Issue("u2", "editor")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+editor)
	w, _ = serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin, _, err := j.Issue("u1", "admin")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	w, _ = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1:admin", w.Body.String())
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(0.001, 1))
	r.GET("/", ok)
	r.GET("/health", ok)

	w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	w, env := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 429, env.Code)

	w, _ = serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitPerIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitPerIP(0.001, 1))
	r.GET("/", ok)

	from := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w, _ := serve(r, req)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, from("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, from("10.0.0.1"))
	assert.Equal(t, http.StatusOK, from("10.0.0.2"))
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodyBytes(8))
	r.POST("/", ok)

	w, env := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, 413, env.Code)

	w, _ = serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(zap.NewNop()))
	r.GET("/", func(*gin.Context) { panic("boom") })

	w, env := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", env.Msg)
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(20*time.Millisecond, map[string]time.Duration{"/export": time.Second}))
	r.GET("/slow", func(c *gin.Context) { <-c.Request.Context().Done() })
	r.GET("/fast", ok)
	r.GET("/export", func(c *gin.Context) {
		select {
		case <-time.After(60 * time.Millisecond):
			c.String(http.StatusOK, "xlsx")
		case <-c.Request.Context().Done():
		}
	})

	w, env := serve(r, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, 504, env.Code)

	w, _ = serve(r, httptest.NewRequest(http.MethodGet, "/fast", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = serve(r, httptest.NewRequest(http.MethodGet, "/export", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "xlsx", w.Body.String())
}

func TestConcurrencyLimit(t *testing.T) {
	r := gin.New()
	r.Use(ConcurrencyLimit(1))
	release := make(chan struct{})
	entered := make(chan struct{})
	r.GET("/hold", func(c *gin.Context) {
		close(entered)
		<-release
		c.Status(http.StatusOK)
	})

	done := make(chan int)
	go func() {
		w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/hold", nil))
		done <- w.Code
	}()
	<-entered

	// 名额被占用时，请求 context 到期即返回 503
	req := httptest.NewRequest(http.MethodGet, "/hold", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 20*time.Millisecond)
	defer cancel()
	w, env := serve(r, req.WithContext(ctx))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "server busy", env.Msg)

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestMaskQuery(t *testing.T) {
	out := maskQuery(map[string][]string{"Token": {"abc"}, "page": {"2"}})
	assert.Equal(t, []string{"****"}, out["Token"])
	assert.Equal(t, []string{"2"}, out["page"])
}
