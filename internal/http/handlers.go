package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"saintdujour/app/internal/saints"
)

const dateLayout = "2006-01-02"

type saintsInput struct {
	Day string `query:"jour" format:"date" example:"2025-01-14" doc:"Calendar day (YYYY-MM-DD). Defaults to today on the server clock."`
}

type saintView struct {
	Name        *string `json:"nom" nullable:"true" doc:"Name of the saint, null when the listing carries none"`
	Description string  `json:"description" doc:"Free-text description as published by the source site"`
	Image       *string `json:"image" nullable:"true" doc:"Absolute URL of the saint's picture"`
}

type saintsResponse struct {
	Body []saintView
}

type healthResponse struct {
	Body struct {
		Status string `json:"status"`
	}
}

func (s *Server) registerSaintsRoute() {
	huma.Get(s.api, "/", s.saintsHandler, func(op *huma.Operation) {
		op.Summary = "Saints of the day"
		op.Description = "Lists the saints commemorated on the given day. An unreachable source site yields an empty list."
	})
}

func (s *Server) registerHealthRoute() {
	huma.Get(s.api, "/healthz", s.healthHandler, func(op *huma.Operation) {
		op.Summary = "Health check"
	})
}

func (s *Server) saintsHandler(ctx context.Context, input *saintsInput) (*saintsResponse, error) {
	day, err := s.resolveDay(input.Day)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("jour must be a calendar date formatted as YYYY-MM-DD", err)
	}

	s.tagDay(ctx, day)
	fields := logrus.Fields{"day": day.Format(dateLayout)}
	s.logInfo(ctx, fields, "starting saints lookup")

	found, err := s.saints.ForDay(ctx, day)
	if err != nil {
		var fetchErr *saints.FetchError
		if errors.As(err, &fetchErr) {
			// Fail open: callers get an empty list when the source site is unreachable.
			s.recordError(ctx, err, "fetching saints page failed", logrus.Fields{
				"day":    day.Format(dateLayout),
				"url":    fetchErr.URL,
				"status": fetchErr.Status,
			})
			return &saintsResponse{Body: []saintView{}}, nil
		}

		s.recordError(ctx, err, "saints lookup failed", fields)
		return nil, huma.Error500InternalServerError("saints lookup failed")
	}

	resp := &saintsResponse{Body: make([]saintView, 0, len(found))}
	for _, saint := range found {
		resp.Body = append(resp.Body, saintView{
			Name:        saint.Name,
			Description: saint.Description,
			Image:       saint.Image,
		})
	}

	fields["count"] = len(resp.Body)
	s.logInfo(ctx, fields, "saints lookup completed")

	return resp, nil
}

func (s *Server) healthHandler(_ context.Context, _ *struct{}) (*healthResponse, error) {
	resp := &healthResponse{}
	resp.Body.Status = "ok"
	return resp, nil
}

func (s *Server) resolveDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.now(), nil
	}
	return time.ParseInLocation(dateLayout, raw, time.Local)
}

// tagDay records the resolved day on the access log line and the Sentry scope.
func (s *Server) tagDay(ctx context.Context, day time.Time) {
	formatted := day.Format(dateLayout)
	if info := requestInfoFromContext(ctx); info != nil {
		info.Day = formatted
	}
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("saints.day", formatted)
	}
}

func (s *Server) logInfo(ctx context.Context, fields logrus.Fields, message string) {
	if s.logger == nil {
		return
	}

	entry := s.logger.WithFields(fields)
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}
	entry.Info(message)
}

func (s *Server) recordError(ctx context.Context, err error, message string, fields logrus.Fields) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if fields != nil {
			entry = entry.WithFields(fields)
		}
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			entry = entry.WithField("request_id", requestID)
		}
		entry.Error(message)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	if s.sentry != nil {
		s.sentry.CaptureException(err)
	}
}
