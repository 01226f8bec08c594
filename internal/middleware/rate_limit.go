package middleware

import (
	"fmt"
	"net/http"
	"time"

	"dental-intake/internal/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit limits requests per client IP using a fixed one-minute window
// counted in Redis, so the limit holds across replicas. If Redis is down
// the middleware fails open; availability of the intake endpoint matters
// more than the courtesy limit.
func RateLimit(rdb *redis.Client, perMinute int, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if perMinute <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), time.Now().UTC().Format("200601021504"))

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.WithError(err).Warn("Rate limit check unavailable", map[string]interface{}{
				"client_ip": c.ClientIP(),
			})
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, time.Minute)
		}

		if count > int64(perMinute) {
			log.Warn("rate limit exceeded", map[string]interface{}{
				"client_ip":  c.ClientIP(),
				"request_id": GetRequestID(c),
			})
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
