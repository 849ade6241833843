package log

import (
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	sentrylogrus "github.com/getsentry/sentry-go/logrus"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

const (
	sentryFlushTimeout = 2 * time.Second
	serviceName        = "saint-du-jour"
)

// reportedLevels are forwarded to Sentry; fail-open fetch errors are logged at ErrorLevel and included.
var reportedLevels = []logrus.Level{
	logrus.ErrorLevel,
	logrus.FatalLevel,
	logrus.PanicLevel,
}

// SentrySettings represents the configuration required to bootstrap Sentry.
type SentrySettings struct {
	DSN         string
	Environment string
	// Release defaults to the main module version recorded in the binary.
	Release string
	// SourceBaseURL tags every event with the site being scraped.
	SourceBaseURL string
}

// InitSentry connects error-level logrus entries to Sentry. It is a no-op without a DSN.
func InitSentry(logger *logrus.Logger, settings SentrySettings) (*sentry.Hub, func(), error) {
	if settings.DSN == "" {
		return nil, func() {}, nil
	}

	release := settings.Release
	if release == "" {
		release = buildRelease()
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              settings.DSN,
		Environment:      settings.Environment,
		Release:          release,
		AttachStacktrace: true,
	})
	if err != nil {
		return nil, nil, eris.Wrap(err, "error initializing sentry client")
	}

	scope := sentry.NewScope()
	scope.SetTag("service", serviceName)
	if settings.SourceBaseURL != "" {
		scope.SetTag("saints.source", settings.SourceBaseURL)
	}

	logger.AddHook(sentrylogrus.NewLogHookFromClient(reportedLevels, client))

	hub := sentry.NewHub(client, scope)
	return hub, func() { hub.Flush(sentryFlushTimeout) }, nil
}

func buildRelease() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return serviceName + "@dev"
	}
	return serviceName + "@" + info.Main.Version
}
