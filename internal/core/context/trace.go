// Package context carries per-request metadata through context.Context.
package context

import (
	"context"

	"github.com/google/uuid"
)

// RequestInfo identifies an inbound request in logs and error responses.
type RequestInfo struct {
	RequestID string
	TraceID   string
	ClientIP  string
}

type requestKey struct{}

// WithRequest attaches request metadata to ctx.
func WithRequest(ctx context.Context, info *RequestInfo) context.Context {
	return context.WithValue(ctx, requestKey{}, info)
}

// GetRequest returns request metadata from ctx, or nil outside a request.
func GetRequest(ctx context.Context) *RequestInfo {
	if v, ok := ctx.Value(requestKey{}).(*RequestInfo); ok {
		return v
	}
	return nil
}

// GetRequestID returns the request ID from ctx or an empty string.
func GetRequestID(ctx context.Context) string {
	if r := GetRequest(ctx); r != nil {
		return r.RequestID
	}
	return ""
}

// NewRequestInfo builds metadata for a request, generating any missing ID.
func NewRequestInfo(requestID, traceID, clientIP string) *RequestInfo {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	if traceID == "" {
		traceID = requestID
	}
	return &RequestInfo{
		RequestID: requestID,
		TraceID:   traceID,
		ClientIP:  clientIP,
	}
}
