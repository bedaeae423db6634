package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medtransit/fare-engine/pkg/logger"
)

// CorrelationIDHeader carries the request correlation ID in and out.
const CorrelationIDHeader = "X-Request-ID"

// CorrelationID accepts a caller-supplied correlation ID or mints one, stores
// it on the request context for logger.WithContext, and echoes it back on the
// response.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Request = c.Request.WithContext(
			logger.ContextWithCorrelationID(c.Request.Context(), correlationID),
		)
		c.Writer.Header().Set(CorrelationIDHeader, correlationID)

		c.Next()
	}
}
