package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextKeyRequestID holds the request correlation id on the Gin
	// context. The logger and recovery middleware both read it.
	ContextKeyRequestID = "request_id"

	requestIDHeader = "X-Request-ID"
)

// RequestID assigns every request a unique id for log correlation.
// An inbound X-Request-ID is trusted if present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(ContextKeyRequestID, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()
	}
}
