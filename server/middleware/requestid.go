package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID is the request ID header read and written by RequestID.
const HeaderRequestID = "X-Request-Id"

// ContextRequestID is the Gin context key the request ID is stored under.
const ContextRequestID = "request_id"

// RequestID injects a unique X-Request-Id header into every request and
// response, keeping an ID supplied by the caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID returns the request ID set by RequestID, or "" when the
// middleware did not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}
