package middlewares

import (
	"net/http"
	"os"
	"time"

	"carelink-be/config"

	"github.com/gin-gonic/gin"
)

// IssueRateLimiter caps how many reports a single client IP may file per day.
// /report enforces no authentication, so the client IP is the only stable key.
// The limiter is a no-op when Redis is not configured.
func IssueRateLimiter(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.RedisClient == nil {
			c.Next()
			return
		}

		ctx := config.Ctx
		keyPrefix := os.Getenv("REDIS_REPORT_LIMIT_PREFIX")
		if keyPrefix == "" {
			keyPrefix = "report-limit"
		}

		clientKey := keyPrefix + ":" + c.ClientIP()

		count, err := config.RedisClient.Incr(ctx, clientKey).Result()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "redis error incrementing count"})
			c.Abort()
			return
		}

		// Set TTL only for the first increment (when count = 1)
		if count == 1 {
			err = config.RedisClient.Expire(ctx, clientKey, 24*time.Hour).Err()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "redis error setting TTL"})
				c.Abort()
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := config.RedisClient.TTL(ctx, clientKey).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
