package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// TradeRateLimit limits trading operations per caller address (not per IP)
// using Redis. Requires the JWT middleware to have run first.
func TradeRateLimit(maxOps int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			// Redis not configured, fail-open
			c.Next()
			return
		}

		addrVal, exists := c.Get("address")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		address, ok := addrVal.(string)
		if !ok || address == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid caller"})
			return
		}

		key := "trade_rl:" + address + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		ctx := context.Background()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			c.Header("X-TradeRateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		c.Header("X-TradeRateLimit-Limit", strconv.Itoa(maxOps))
		c.Header("X-TradeRateLimit-Remaining", strconv.FormatInt(remaining(int64(maxOps), val), 10))

		if val > int64(maxOps) {
			RLBlocked.WithLabelValues("trade:" + c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "trade rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues("trade:" + c.FullPath()).Inc()
		c.Next()
	}
}

func remaining(limit, used int64) int64 {
	if used > limit {
		return 0
	}
	return limit - used
}
