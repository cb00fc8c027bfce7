package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/ratelimit"
)

// Paths the limiter never touches: probes and dashboards must stay cheap
// and unthrottled.
var rateLimitExempt = map[string]bool{
	"/":        true,
	"/health":  true,
	"/metrics": true,
}

// ClientIP prefers the first hop of X-Forwarded-For, else the connection
// address.
func ClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	return c.RemoteIP()
}

func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rateLimitExempt[c.Request.URL.Path] {
			c.Next()
			return
		}
		d := limiter.Allow(c.Request.Context(), ClientIP(c))
		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		if !d.Allowed {
			c.Header("Retry-After", strconv.Itoa(d.RetryAfter))
			c.Header("X-RateLimit-Reset", strconv.Itoa(d.RetryAfter))
			err := errdefs.E(errdefs.APIRateLimited, "Rate limit exceeded. Retry after %d seconds.", d.RetryAfter).
				WithContext("retry_after", d.RetryAfter)
			c.AbortWithStatusJSON(errdefs.HTTPStatus(err), errdefs.NewEnvelope(err))
			return
		}
		c.Next()
	}
}
