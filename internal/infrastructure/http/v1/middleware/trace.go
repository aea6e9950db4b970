package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "stockmaster/internal/core/context"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"

	KeyRequestID = "request_id"
	KeyTraceID   = "trace_id"
)

// Trace reads or generates the request and trace IDs and puts them into
// the request context and the response headers.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		info := appctx.NewRequestInfo(
			c.GetHeader(HeaderRequestID),
			c.GetHeader(HeaderTraceID),
			c.ClientIP(),
		)

		c.Request = c.Request.WithContext(appctx.WithRequest(c.Request.Context(), info))

		c.Set(KeyRequestID, info.RequestID)
		c.Set(KeyTraceID, info.TraceID)

		c.Header(HeaderRequestID, info.RequestID)
		c.Header(HeaderTraceID, info.TraceID)

		c.Next()
	}
}
