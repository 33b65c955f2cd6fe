package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the gin context key the run id is stored under.
	RequestIDKey = "request_id"

	requestIDHeader = "X-Request-ID"
)

// RequestID assigns every request a run id: the inbound X-Request-ID header
// when present, a fresh UUID otherwise. The id is echoed back on the
// response.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}
