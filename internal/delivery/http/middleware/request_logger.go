package middleware

import (
	"time"

	"preset-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		reqID, _ := c.Get(requestIDKey)
		fields := []interface{}{
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Log.Errorw("HTTP request", fields...)
		case status >= 400:
			logger.Log.Warnw("HTTP request", fields...)
		default:
			logger.Log.Infow("HTTP request", fields...)
		}
	}
}
