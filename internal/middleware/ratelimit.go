package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// Generation endpoints can each cost an upstream model call, so the
	// window is intentionally tight.
	rateLimitMax    = 10
	rateLimitWindow = time.Minute
)

// RateLimit returns a middleware enforcing a per-IP sliding-window limit on
// generation endpoints, backed by Redis counters.
func RateLimit(rdb *redis.Client, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		window := time.Now().Unix() / int64(rateLimitWindow.Seconds())
		key := fmt.Sprintf("nb:rate_limit:%s:%d", ip, window)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis trouble must not take the endpoint down.
			c.Next()
			return
		}

		if count == 1 {
			rdb.PExpire(ctx, key, rateLimitWindow+time.Second)
		}

		if count > rateLimitMax {
			log.Warn("rate limited", zap.String("ip", ip), zap.String("path", c.Request.URL.Path))
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":      0,
				"code":    http.StatusTooManyRequests,
				"message": "Too many briefing requests, slow down",
			})
			return
		}

		c.Next()
	}
}
