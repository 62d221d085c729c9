// middleware/rate_limiter.go

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/soxlite/api/db"
	logger "github.com/soxlite/api/logging"
)

// RateLimiter applies a per-IP sliding window. It is a pass-through while
// Redis is disabled, and fails open when Redis errors.
func RateLimiter(limit int, per time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !db.Enabled() || limit <= 0 {
			c.Next()
			return
		}
		key := c.ClientIP()
		allowed, err := db.RateLimit(c.Request.Context(), key, limit, per)
		if err != nil {
			logger.Warn("Rate limiting unavailable", zap.Error(err), zap.String("ip", key))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Duration", per.String())

		if !allowed {
			logger.Warn("Rate limit exceeded",
				zap.String("ip", key),
				zap.Int("limit", limit),
				zap.Duration("per", per))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}
