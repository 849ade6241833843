package http

import (
	stdhttp "net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"saintdujour/app/internal/saints"
)

// Options configures the HTTP server wiring.
type Options struct {
	SaintsService saints.Service
	Logger        *logrus.Logger
	SentryHub     *sentry.Hub
	RateLimiter   RateLimiterSettings
	// Now supplies "today" when a request carries no date. Defaults to time.Now.
	Now func() time.Time
}

// RateLimiterSettings configures the HTTP rate limiter behaviour.
type RateLimiterSettings struct {
	RequestsPerSecond float64
	Burst             int
	ClientTTL         time.Duration
}

// Server wires the JSON API via Huma.
type Server struct {
	api         huma.API
	mux         *stdhttp.ServeMux
	saints      saints.Service
	logger      *logrus.Logger
	sentry      *sentry.Hub
	rateLimiter *RateLimiter
	now         func() time.Time
}

// NewServer constructs the HTTP server.
func NewServer(opts Options) (*Server, error) {
	if opts.SaintsService == nil {
		return nil, eris.New("saints service is required")
	}

	settings := opts.RateLimiter
	if settings.Burst <= 0 {
		return nil, eris.New("rate limiter burst must be greater than zero")
	}
	if settings.RequestsPerSecond <= 0 {
		return nil, eris.New("rate limiter requests per second must be greater than zero")
	}
	if settings.ClientTTL <= 0 {
		return nil, eris.New("rate limiter client TTL must be greater than zero")
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	mux := stdhttp.NewServeMux()
	config := huma.DefaultConfig("API Saint du Jour", "1.0.0")

	api := humago.New(mux, config)

	srv := &Server{
		api:         api,
		mux:         mux,
		saints:      opts.SaintsService,
		logger:      opts.Logger,
		sentry:      opts.SentryHub,
		rateLimiter: NewRateLimiter(settings),
		now:         now,
	}

	srv.registerMiddlewares()
	srv.registerRoutes()

	return srv, nil
}

// Handler exposes the underlying HTTP handler for wiring into the application.
func (s *Server) Handler() stdhttp.Handler {
	return s.mux
}

// API exposes the underlying Huma API instance.
func (s *Server) API() huma.API {
	return s.api
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	s.rateLimiter.Close()
}

func (s *Server) registerMiddlewares() {
	s.api.UseMiddleware(
		s.sentryMiddleware(),
		s.recoveryMiddleware(),
		s.requestMiddleware(),
		s.rateLimitMiddleware(),
	)
}

func (s *Server) registerRoutes() {
	s.registerSaintsRoute()
	s.registerHealthRoute()
}

func (s *Server) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.mux.ServeHTTP(w, r)
}
