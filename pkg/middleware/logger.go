package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medtransit/fare-engine/pkg/logger"
)

// RequestLogger logs one line per request, annotated with the correlation ID
// carried on the request context.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
		}

		reqLogger := logger.WithContext(c.Request.Context())
		if len(c.Errors) > 0 {
			reqLogger.Error("request completed with errors", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		reqLogger.Info("request completed", fields...)
	}
}
