package middleware

import (
	"time"

	"github.com/bhandras/rfext/internal/logger"
	"github.com/gin-gonic/gin"
)

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Process request
		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		// Log format: [method] path?query - status (latency) id
		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := GetRequestID(c)
		if statusCode >= 500 {
			logger.Warnf("[%s] %s - %d (%v) %s", c.Request.Method, path, statusCode, latency, requestID)
			return
		}
		logger.Infof("[%s] %s - %d (%v) %s", c.Request.Method, path, statusCode, latency, requestID)
	}
}
