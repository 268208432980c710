// Package slog provides logging decorators for lessonfetch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lessonfetch/lessonfetch"
)

// Ensure LoggingFetcher implements lessonfetch.Fetcher.
var _ lessonfetch.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   lessonfetch.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next lessonfetch.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, req lessonfetch.FetchRequest) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", req.URL,
			"pre_steps", len(req.PreSteps),
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, req)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
