package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"gigflow_backend/internal/logger"
)

// RequestLogger logs every handled request with method, path, status and
// duration.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.HTTPLog(
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)
	}
}
