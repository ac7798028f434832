package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/skfghd/threelinepoem/pkg/log"
	"github.com/skfghd/threelinepoem/pkg/sanitize"
	"golang.org/x/time/rate"
)

// RateLimiter 定义了可插拔的限流后端接口。
// 单实例部署用进程内实现即可；多实例部署切换到 Redis 后端，
// 让限流窗口在实例之间共享。
type RateLimiter interface {
	Allow(clientKey string) bool
}

// RateLimit 按客户端 IP 应用限流，超出预算的请求返回 429。
func RateLimit(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			RecordRateLimited()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "요청이 너무 많습니다. 잠시 후 다시 시도해주세요.",
			})
			return
		}
		c.Next()
	}
}

// clientLimiter 绑定单个客户端的令牌桶和最近活跃时间。
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryRateLimiter 是基于 golang.org/x/time/rate 的进程内限流器。
// 进程重启后计数清零，这对粗粒度的滥用防护是可接受的。
type MemoryRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rpm      int
	burst    int
	stop     chan struct{}
}

// NewMemoryRateLimiter 创建一个进程内限流器，并启动后台清理。
// 不再使用时调用 Stop 结束清理协程。
func NewMemoryRateLimiter(rpm, burst int) *MemoryRateLimiter {
	rl := &MemoryRateLimiter{
		limiters: make(map[string]*clientLimiter),
		rpm:      rpm,
		burst:    burst,
		stop:     make(chan struct{}),
	}
	go rl.cleanup(10 * time.Minute)
	return rl
}

// Stop 结束后台清理协程，只应调用一次。
func (rl *MemoryRateLimiter) Stop() {
	close(rl.stop)
}

// Allow 为客户端惰性创建令牌桶并取一个令牌。
func (rl *MemoryRateLimiter) Allow(clientKey string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[clientKey]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.rpm))/60, rl.burst),
		}
		rl.limiters[clientKey] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter.Allow()
}

// cleanup 周期性清理长时间不活跃的客户端，避免映射无限增长。
// Stop 被调用后释放定时器并退出。
func (rl *MemoryRateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for key, cl := range rl.limiters {
				if time.Since(cl.lastSeen) > interval {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// redisRateLimiter 是基于 Redis INCR+TTL 固定窗口的限流器，
// 计数键按分钟滚动，窗口在所有实例间共享。
type redisRateLimiter struct {
	redisClient *redis.Client
	rpm         int
}

// NewRedisRateLimiter 创建一个 Redis 后端的限流器。
func NewRedisRateLimiter(redisClient *redis.Client, rpm int) RateLimiter {
	return &redisRateLimiter{redisClient: redisClient, rpm: rpm}
}

// Allow 对当前分钟窗口的计数键做 INCR，首次创建时设置过期时间。
// Redis 不可用时放行请求：限流是粗粒度防护，不应阻断正常功能。
func (rl *redisRateLimiter) Allow(clientKey string) bool {
	ctx := context.Background()
	key := fmt.Sprintf("ratelimit:%s:%s", clientKey, time.Now().Format("200601021504"))

	count, err := rl.redisClient.Incr(ctx, key).Result()
	if err != nil {
		log.Warnf("rate limiter redis error, allowing request: %s", sanitize.ErrorMessage(err))
		return true
	}
	if count == 1 {
		// TTL 设置失败会让分钟键永久滞留，至少要留下日志线索
		if err := rl.redisClient.Expire(ctx, key, 2*time.Minute).Err(); err != nil {
			log.Warnf("rate limiter failed to set window ttl: %s", sanitize.ErrorMessage(err))
		}
	}
	return count <= int64(rl.rpm)
}
