package bootstrap

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"saintdujour/app/internal/config"
	apphttp "saintdujour/app/internal/http"
	"saintdujour/app/internal/saints"
)

type Dependencies struct {
	Config    config.Config
	Logger    *logrus.Logger
	SentryHub *sentry.Hub
	Now       func() time.Time
}

type Result struct {
	SaintsService saints.Service
	HTTPServer    *apphttp.Server
	Cleanup       func() error
}

// Build composes the application layers and returns the constructed components.
func Build(_ context.Context, deps Dependencies) (Result, error) {
	if deps.Logger == nil {
		return Result{}, eris.New("logger is required")
	}

	fetcher, err := saints.NewFetcher(saints.FetcherOptions{
		BaseURL: deps.Config.SourceBaseURL,
		Timeout: deps.Config.FetchTimeout,
	})
	if err != nil {
		return Result{}, eris.Wrap(err, "creating month page fetcher")
	}

	saintsService, err := saints.NewService(fetcher, deps.Logger)
	if err != nil {
		return Result{}, eris.Wrap(err, "creating saints service")
	}

	httpServer, err := apphttp.NewServer(apphttp.Options{
		SaintsService: saintsService,
		Logger:        deps.Logger,
		SentryHub:     deps.SentryHub,
		Now:           deps.Now,
		RateLimiter: apphttp.RateLimiterSettings{
			Burst:             deps.Config.RateLimit.Burst,
			RequestsPerSecond: deps.Config.RateLimit.RequestsPerSecond,
			ClientTTL:         deps.Config.RateLimit.ClientTTL,
		},
	})
	if err != nil {
		return Result{}, eris.Wrap(err, "initialising http server")
	}

	cleanup := func() error {
		httpServer.Close()
		return nil
	}

	return Result{
		SaintsService: saintsService,
		HTTPServer:    httpServer,
		Cleanup:       cleanup,
	}, nil
}
