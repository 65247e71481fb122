package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxRequestIDKey = "request_id"

	// RequestIDHeader is echoed back on every response
	RequestIDHeader = "X-Request-ID"
)

// RequestID attaches a request id to each request, honoring one supplied by
// the caller so traces can span services
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(ctxRequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()
	}
}

// RequestIDFromContext returns the request id set by RequestID
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(ctxRequestIDKey)
}
