package mock

import (
	"context"

	"github.com/lessonfetch/lessonfetch"
)

var _ lessonfetch.LessonService = (*LessonService)(nil)

// LessonService is a mock implementation of lessonfetch.LessonService.
type LessonService struct {
	ImportLessonFn      func(ctx context.Context, token string, lesson *lessonfetch.Lesson) (int64, error)
	ImportAudioLessonFn func(ctx context.Context, token string, lesson *lessonfetch.Lesson, audioPath string) (int64, error)
}

func (s *LessonService) ImportLesson(ctx context.Context, token string, lesson *lessonfetch.Lesson) (int64, error) {
	return s.ImportLessonFn(ctx, token, lesson)
}

func (s *LessonService) ImportAudioLesson(ctx context.Context, token string, lesson *lessonfetch.Lesson, audioPath string) (int64, error) {
	return s.ImportAudioLessonFn(ctx, token, lesson, audioPath)
}
