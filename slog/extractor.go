package slog

import (
	"log/slog"
	"time"

	"github.com/lessonfetch/lessonfetch"
)

// Ensure LoggingExtractor implements lessonfetch.Extractor.
var _ lessonfetch.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging. It makes the
// selector-to-heuristic fallback visible: a site whose selectors stopped
// matching shows up as a warning instead of silently changing behavior.
type LoggingExtractor struct {
	next   lessonfetch.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next lessonfetch.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html string, opts lessonfetch.ExtractOptions) (result *lessonfetch.ExtractResult, err error) {
	defer func(begin time.Time) {
		var matched, words int
		var container string
		if result != nil {
			matched = len(result.MatchedSelectors)
			words = result.Words
			container = result.Container
		}
		e.logger.Info("extract",
			"requested_selectors", len(opts.Selectors),
			"matched_selectors", matched,
			"container", container,
			"words", words,
			"duration", time.Since(begin),
			"err", err,
		)
		if err == nil && len(opts.Selectors) > 0 && matched == 0 {
			e.logger.Warn("no selector matched, fell back to heuristic scoring",
				"selectors", opts.Selectors,
				"container", container,
			)
		}
	}(time.Now())
	return e.next.Extract(html, opts)
}
