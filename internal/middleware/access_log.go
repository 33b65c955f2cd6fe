package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// AccessLog logs one line per handled request: method, path, status,
// duration and run id.
func (m Middleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		m.l.Infof(c.Request.Context(), "%s %s -> %d (%s) request_id=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.GetString(RequestIDKey),
		)
	}
}
