package http

import (
	"net"
	stdhttp "net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

const (
	rateLimitMessage   = "too many requests, retry in a moment"
	sentryFlushTimeout = 2 * time.Second
)

// sentryMiddleware gives each request its own hub so tags set further down the
// chain (request ID, jour, resolved day) stay scoped to that request.
func (s *Server) sentryMiddleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if s.sentry == nil {
			next(ctx)
			return
		}

		hub := s.sentry.Clone()
		scope := hub.Scope()
		scope.SetTag("http.method", ctx.Method())
		if op := ctx.Operation(); op != nil {
			scope.SetTag("http.route", op.Path)
		}

		ctx = huma.WithContext(ctx, sentry.SetHubOnContext(ctx.Context(), hub))
		defer hub.Flush(sentryFlushTimeout)

		next(ctx)
	}
}

func (s *Server) recoveryMiddleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			err, ok := rec.(error)
			if !ok {
				err = eris.Errorf("panic: %v", rec)
			}
			s.recordError(ctx.Context(), err, "panic recovered", nil)

			if hub := sentry.GetHubFromContext(ctx.Context()); hub != nil {
				hub.RecoverWithContext(ctx.Context(), rec)
			}

			if writeErr := huma.WriteErr(s.api, ctx, stdhttp.StatusInternalServerError, "internal server error"); writeErr != nil && s.logger != nil {
				s.logger.WithError(writeErr).Error("writing panic response failed")
			}
		}()

		next(ctx)
	}
}

// requestMiddleware assigns the request ID, records the raw jour query and the
// client address, and writes one access log line once the request is served.
func (s *Server) requestMiddleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		info := &requestInfo{
			ID:       uuid.NewString(),
			Jour:     ctx.Query("jour"),
			ClientIP: clientIP(ctx),
		}

		goCtx := withRequestInfo(ctx.Context(), info)
		ctx = huma.WithContext(ctx, goCtx)
		ctx.SetHeader("X-Request-ID", info.ID)

		if hub := sentry.GetHubFromContext(goCtx); hub != nil {
			hub.Scope().SetTag("request_id", info.ID)
			if info.Jour != "" {
				hub.Scope().SetTag("saints.jour", info.Jour)
			}
		}

		start := time.Now()
		next(ctx)
		s.logAccess(ctx, info, time.Since(start))
	}
}

func (s *Server) rateLimitMiddleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		ip := clientIP(ctx)
		if info := requestInfoFromContext(ctx.Context()); info != nil {
			ip = info.ClientIP
		}

		if s.rateLimiter == nil || s.rateLimiter.Allow(ip) {
			next(ctx)
			return
		}

		ctx.SetHeader("Retry-After", "1")
		if err := huma.WriteErr(s.api, ctx, stdhttp.StatusTooManyRequests, rateLimitMessage); err != nil && s.logger != nil {
			s.logger.WithError(err).Error("writing rate limit response failed")
		}
	}
}

func (s *Server) logAccess(ctx huma.Context, info *requestInfo, elapsed time.Duration) {
	if s.logger == nil {
		return
	}

	status := ctx.Status()
	if status == 0 {
		status = stdhttp.StatusOK
	}

	u := ctx.URL()
	fields := logrus.Fields{
		"request_id":  info.ID,
		"method":      ctx.Method(),
		"path":        u.Path,
		"status":      status,
		"remote_ip":   info.ClientIP,
		"duration_ms": float64(elapsed.Microseconds()) / 1000,
	}
	if op := ctx.Operation(); op != nil {
		fields["route"] = op.Path
	}
	if info.Jour != "" {
		fields["jour"] = info.Jour
	}
	if info.Day != "" {
		fields["day"] = info.Day
	}

	entry := s.logger.WithFields(fields)
	switch {
	case status >= stdhttp.StatusInternalServerError:
		entry.Error("request failed")
	case status == stdhttp.StatusTooManyRequests:
		entry.Warn("request rate limited")
	default:
		entry.Info("request completed")
	}
}

func clientIP(ctx huma.Context) string {
	if forwarded := ctx.Header("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if candidate := strings.TrimSpace(first); candidate != "" {
			return candidate
		}
	}

	if realIP := strings.TrimSpace(ctx.Header("X-Real-IP")); realIP != "" {
		return realIP
	}

	remote := ctx.RemoteAddr()
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		return strings.TrimSpace(remote)
	}
	return host
}
