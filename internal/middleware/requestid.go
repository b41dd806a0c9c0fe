package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id on responses and, when a
// client supplies one, on requests.
const RequestIDHeader = "X-Request-ID"

// ContextRequestIDKey is the Gin context key the request logger reads.
const ContextRequestIDKey = "request_id"

// RequestID tags every request with a correlation id so log lines from
// one request can be tied together. A client-supplied id is kept;
// otherwise a fresh UUID is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}
