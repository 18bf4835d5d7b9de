package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// UserRateLimit limits expensive mutations (batch create, AI draft
// generation) per authenticated user rather than per IP. Requires Auth
// to have run first. Fail-open when Redis is unavailable.
func UserRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		userID, ok := userIDVal.(int64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid user"})
			return
		}

		key := "user_rl:" + strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		ctx := context.Background()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(maxRequests)-val), 10))

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues("user:" + c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message":     "rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues("user:" + c.FullPath()).Inc()
		c.Next()
	}
}
