package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lessonfetch/lessonfetch"
)

// Ensure LoggingLessonService implements lessonfetch.LessonService.
var _ lessonfetch.LessonService = (*LoggingLessonService)(nil)

// LoggingLessonService wraps a LessonService with logging. The API token
// is never logged.
type LoggingLessonService struct {
	next   lessonfetch.LessonService
	logger *slog.Logger
}

// NewLoggingLessonService creates a new LoggingLessonService.
func NewLoggingLessonService(next lessonfetch.LessonService, logger *slog.Logger) *LoggingLessonService {
	return &LoggingLessonService{next: next, logger: logger}
}

// ImportLesson delegates to the wrapped service and logs the outcome.
func (s *LoggingLessonService) ImportLesson(ctx context.Context, token string, lesson *lessonfetch.Lesson) (id int64, err error) {
	defer func(begin time.Time) {
		s.logger.Info("import lesson",
			"title", lesson.Title,
			"language", lesson.Language,
			"words", lessonfetch.WordCount(lesson.Text),
			"lesson_id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ImportLesson(ctx, token, lesson)
}

// ImportAudioLesson delegates to the wrapped service and logs the outcome.
func (s *LoggingLessonService) ImportAudioLesson(ctx context.Context, token string, lesson *lessonfetch.Lesson, audioPath string) (id int64, err error) {
	defer func(begin time.Time) {
		s.logger.Info("import audio lesson",
			"title", lesson.Title,
			"language", lesson.Language,
			"audio", audioPath,
			"lesson_id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ImportAudioLesson(ctx, token, lesson, audioPath)
}
