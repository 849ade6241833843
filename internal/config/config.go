package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// Config holds runtime configuration values for the saint du jour server.
type Config struct {
	ServerPort    int
	LogLevel      string
	LogFile       string
	SourceBaseURL string
	FetchTimeout  time.Duration
	SentryDSN     string
	Environment   string
	ShutdownGrace time.Duration
	RateLimit     RateLimitConfig
}

// RateLimitConfig configures the per-client token bucket.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	ClientTTL         time.Duration
}

const (
	defaultServerPort    = 8080
	defaultLogLevel      = "info"
	defaultLogFile       = "saint_du_jour.log"
	defaultSourceBaseURL = "https://liguesaintamedee.ch/"
	defaultFetchTimeout  = 15 * time.Second
	defaultEnvironment   = "development"
	defaultShutdownGrace = 10 * time.Second

	defaultRateLimitRPS   = 5
	defaultRateLimitBurst = 10
	defaultRateLimitTTL   = 5 * time.Minute
)

// Load reads configuration values from environment variables, applying defaults where necessary.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:      getEnv("LOG_LEVEL", defaultLogLevel),
		SourceBaseURL: getEnv("SOURCE_BASE_URL", defaultSourceBaseURL),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		Environment:   getEnv("ENV", defaultEnvironment),
	}

	// An explicitly empty LOG_FILE disables file logging.
	if value, ok := os.LookupEnv("LOG_FILE"); ok {
		cfg.LogFile = value
	} else {
		cfg.LogFile = defaultLogFile
	}

	portValue := getEnv("SERVER_PORT", strconv.Itoa(defaultServerPort))
	port, err := strconv.Atoi(portValue)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid SERVER_PORT value: %s", portValue)
	}
	cfg.ServerPort = port

	if cfg.FetchTimeout, err = getDuration("FETCH_TIMEOUT", defaultFetchTimeout); err != nil {
		return nil, err
	}
	if cfg.ShutdownGrace, err = getDuration("SHUTDOWN_GRACE", defaultShutdownGrace); err != nil {
		return nil, err
	}
	if cfg.RateLimit.ClientTTL, err = getDuration("RATE_LIMIT_TTL", defaultRateLimitTTL); err != nil {
		return nil, err
	}

	rpsValue := getEnv("RATE_LIMIT_RPS", strconv.Itoa(defaultRateLimitRPS))
	rps, err := strconv.ParseFloat(rpsValue, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid RATE_LIMIT_RPS value: %s", rpsValue)
	}
	cfg.RateLimit.RequestsPerSecond = rps

	burstValue := getEnv("RATE_LIMIT_BURST", strconv.Itoa(defaultRateLimitBurst))
	burst, err := strconv.Atoi(burstValue)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid RATE_LIMIT_BURST value: %s", burstValue)
	}
	cfg.RateLimit.Burst = burst

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, value)
	}
	if parsed <= 0 {
		return 0, eris.Errorf("invalid %s value: %s must be positive", key, value)
	}
	return parsed, nil
}
