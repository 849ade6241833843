package http

import "context"

type contextKey string

const requestInfoContextKey contextKey = "saintdujour/request"

// requestInfo is what the middleware chain and the handler learn about a request.
// The handler fills Day once jour has been resolved.
type requestInfo struct {
	ID       string
	Jour     string
	Day      string
	ClientIP string
}

func withRequestInfo(ctx context.Context, info *requestInfo) context.Context {
	return context.WithValue(ctx, requestInfoContextKey, info)
}

func requestInfoFromContext(ctx context.Context) *requestInfo {
	if ctx == nil {
		return nil
	}
	info, _ := ctx.Value(requestInfoContextKey).(*requestInfo)
	return info
}

// RequestIDFromContext extracts the request identifier from the context when available.
func RequestIDFromContext(ctx context.Context) string {
	if info := requestInfoFromContext(ctx); info != nil {
		return info.ID
	}
	return ""
}
