package saints

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// Service looks up the saints commemorated on a given day.
type Service interface {
	ForDay(ctx context.Context, day time.Time) ([]Saint, error)
}

type service struct {
	fetcher PageFetcher
	logger  *logrus.Logger
}

var _ Service = (*service)(nil)

// NewService wires the saints service with its page fetcher.
func NewService(fetcher PageFetcher, logger *logrus.Logger) (Service, error) {
	if fetcher == nil {
		return nil, eris.New("page fetcher is required")
	}

	return &service{
		fetcher: fetcher,
		logger:  logger,
	}, nil
}

// ForDay fetches the month page of day and returns one Saint per matching day heading.
// Upstream failures are returned as *FetchError, wrapped.
func (s *service) ForDay(ctx context.Context, day time.Time) ([]Saint, error) {
	month := MonthName(day)

	doc, err := s.fetcher.FetchMonth(ctx, month)
	if err != nil {
		return nil, eris.Wrapf(err, "fetching saints of %s", month)
	}

	label := DayLabel(day)
	markers := Markers(doc, label)
	base := s.fetcher.BaseURL()

	saints := make([]Saint, 0, len(markers))
	for _, marker := range markers {
		entry := Extract(After(marker))
		saint := Saint{Name: entry.Name, Description: entry.Description}

		if entry.Name != nil {
			s.logInfo(logrus.Fields{"label": label, "name": *entry.Name}, "saint extracted")

			if src, ok := ImageSource(doc, *entry.Name); ok {
				image := ResolveImage(base, src)
				saint.Image = &image
			}
		}

		saints = append(saints, saint)
	}

	return saints, nil
}

func (s *service) logInfo(fields logrus.Fields, message string) {
	if s.logger == nil {
		return
	}
	s.logger.WithFields(fields).Info(message)
}
