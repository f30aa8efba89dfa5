package middleware

import (
	"spotly/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID tags every request with an id, taken from the caller when present,
// and stores a logger carrying that id in the request context.
func RequestID(base *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		ctx := logger.ContextWithLogger(c.Request.Context(), base.WithRequestID(requestID))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
