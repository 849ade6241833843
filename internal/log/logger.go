package log

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// NewLogger constructs a logrus logger configured with JSON output and the provided log level.
// When filePath is set, entries are written to stdout and appended to that file; the returned
// close function releases the file.
func NewLogger(level, filePath string) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	logger.SetReportCaller(false)
	logger.SetLevel(logrus.InfoLevel)

	closeFn := func() error { return nil }

	if level != "" {
		parsedLevel, err := logrus.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, nil, eris.Wrapf(err, "invalid log level: %s", level)
		}
		logger.SetLevel(parsedLevel)
	}

	if filePath == "" {
		return logger, closeFn, nil
	}

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, eris.Wrapf(err, "creating log directory: %s", dir)
		}
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "opening log file: %s", filePath)
	}

	logger.SetOutput(io.MultiWriter(os.Stdout, file))
	closeFn = file.Close

	return logger, closeFn, nil
}
