package mock

import (
	"context"

	"github.com/lessonfetch/lessonfetch"
)

var _ lessonfetch.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of lessonfetch.ArtifactWriter.
type ArtifactWriter struct {
	WriteLessonFn func(ctx context.Context, lesson *lessonfetch.Lesson, markdown string) (*lessonfetch.ArtifactPaths, error)
}

func (w *ArtifactWriter) WriteLesson(ctx context.Context, lesson *lessonfetch.Lesson, markdown string) (*lessonfetch.ArtifactPaths, error) {
	return w.WriteLessonFn(ctx, lesson, markdown)
}
