package middleware

import (
	"time"

	"ridefare/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs every request with its latency and status.
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log
		if requestID, exists := c.Get("request_id"); exists {
			if id, ok := requestID.(string); ok {
				entry = log.WithRequestID(id)
			}
		}

		entry.LogAPIRequest(
			c.Request.Method,
			c.FullPath(),
			c.Writer.Status(),
			time.Since(start).Milliseconds(),
		)
	}
}
