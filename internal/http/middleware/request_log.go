package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/typeset-backend/internal/pkg/logger"
)

// RequestLog emits one structured line per request. The client IP passes
// through the logger's hashing redaction.
func RequestLog(log *logger.Logger) gin.HandlerFunc {
	log = log.With("service", "HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"took", time.Since(start).String(),
			"client_ip", ClientIP(c),
		)
	}
}
