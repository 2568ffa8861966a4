package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "shop_http_requests_total", Help: "Count of HTTP requests"},
		[]string{"path", "method", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shop_http_request_duration_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 180},
		}, []string{"path", "method"},
	)
	httpInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "shop_http_inflight_requests", Help: "Requests holding a concurrency slot",
	})
	// reason: rate | ip_rate | busy | body | timeout
	httpRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "shop_http_rejected_total", Help: "Requests rejected by a limiter"},
		[]string{"reason"},
	)
)

func init() { prometheus.MustRegister(httpReqTotal, httpLatency, httpInflight, httpRejected) }

// Metrics 按路由模板统计；未匹配的路径归到一个 label，避免基数爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpReqTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler /metrics
func MetricsHandler() gin.HandlerFunc { return gin.WrapH(promhttp.Handler()) }

func reject(reason string) { httpRejected.WithLabelValues(reason).Inc() }

// probe 健康检查与指标抓取不占限流 / 并发额度
func probe(c *gin.Context) bool {
	p := c.Request.URL.Path
	return p == "/health" || p == "/metrics"
}
