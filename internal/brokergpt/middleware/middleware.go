// Package middleware provides the gin middleware stack for BrokerGPT:
// request id tagging, structured request logging, panic recovery, and CORS.
package middleware

import (
	"crypto/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// HeaderXRequestID carries the request id between client and server.
const HeaderXRequestID = "X-Request-ID"

// ContextKeyRequestID is the gin context key the response envelope reads.
const ContextKeyRequestID = "request_id"

// RequestID tags every request with a ULID, honoring one supplied by the
// caller. The id lands in the response header and the gin context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderXRequestID)
		if requestID == "" {
			requestID = ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Writer.Header().Set(HeaderXRequestID, requestID)
		c.Next()
	}
}
