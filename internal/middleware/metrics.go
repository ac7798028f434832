package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threelinepoem_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "threelinepoem_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// Poem metrics
	poemsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threelinepoem_poems_generated_total",
		Help: "Total number of poems generated, by branch (ai or fallback)",
	}, []string{"branch"})

	poemGenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "threelinepoem_poem_generation_duration_seconds",
		Help:    "Duration of poem generation",
		Buckets: prometheus.DefBuckets,
	}, []string{"branch"})

	// Rate limit metrics
	rateLimitRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "threelinepoem_rate_limit_rejected_total",
		Help: "Total number of requests rejected by the rate limiter",
	})
)

// Metrics 是记录 HTTP 请求计数和耗时的 Gin 中间件。
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// 用路由模板做标签，避免 :id 之类的路径参数撑爆标签基数
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordPoemGenerated 记录一次三行诗生成、所走的分支及耗时。
func RecordPoemGenerated(usedAI bool, duration time.Duration) {
	branch := "fallback"
	if usedAI {
		branch = "ai"
	}
	poemsGenerated.WithLabelValues(branch).Inc()
	poemGenerationDuration.WithLabelValues(branch).Observe(duration.Seconds())
}

// RecordRateLimited 记录一次被限流拒绝的请求。
func RecordRateLimited() {
	rateLimitRejected.Inc()
}

// MetricsHandler 返回 Prometheus 指标输出的处理函数。
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
