package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// rateLimit keys admission control by the connecting network address.
// Denied requests receive 429 with a Retry-After hint and never reach
// the query planner.
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := s.limiter.Check(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(s.limiter.Quota()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			s.metrics.RateLimitRejections.Inc()
			s.log.WarnContext(c.Request.Context(), "Rate limit exceeded",
				"client", c.ClientIP(), "path", c.FullPath())

			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":    false,
				"error":      "Rate limit exceeded. Please try again later.",
				"retryAfter": retryAfter,
			})
			return
		}

		c.Next()
	}
}

// requestMetrics counts handled requests by route template and status.
func (s *Server) requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		s.metrics.RequestsTotal.
			WithLabelValues(endpoint, strconv.Itoa(c.Writer.Status())).
			Inc()
	}
}
