package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/lessonfetch/lessonfetch"
	"github.com/lessonfetch/lessonfetch/mock"
	lfslog "github.com/lessonfetch/lessonfetch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingLessonService_ImportLesson(t *testing.T) {
	t.Parallel()

	t.Run("logs import without the token", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.LessonService{
			ImportLessonFn: func(ctx context.Context, token string, lesson *lessonfetch.Lesson) (int64, error) {
				return 4242, nil
			},
		}

		svc := lfslog.NewLoggingLessonService(inner, logger)
		lesson := &lessonfetch.Lesson{
			Title:       "Noticias del día",
			Text:        "uno dos tres cuatro",
			ShareStatus: lessonfetch.ShareStatusPrivate,
			Language:    "es",
		}
		id, err := svc.ImportLesson(context.Background(), "super-secret-token", lesson)

		require.NoError(t, err)
		assert.Equal(t, int64(4242), id)
		output := buf.String()
		assert.Contains(t, output, "import lesson")
		assert.Contains(t, output, "lesson_id=4242")
		assert.Contains(t, output, "words=4")
		assert.NotContains(t, output, "super-secret-token")
	})
}

func TestLoggingLessonService_ImportAudioLesson(t *testing.T) {
	t.Parallel()

	t.Run("logs audio path", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.LessonService{
			ImportAudioLessonFn: func(ctx context.Context, token string, lesson *lessonfetch.Lesson, audioPath string) (int64, error) {
				return 7, nil
			},
		}

		svc := lfslog.NewLoggingLessonService(inner, logger)
		lesson := &lessonfetch.Lesson{
			Title:       "Capítulo 1",
			Text:        "texto",
			ShareStatus: lessonfetch.ShareStatusPrivate,
			Language:    "es",
		}
		_, err := svc.ImportAudioLesson(context.Background(), "super-secret-token", lesson, "audio/capitulo-01.mp3")

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "import audio lesson")
		assert.Contains(t, output, "capitulo-01.mp3")
		assert.NotContains(t, output, "super-secret-token")
	})
}
