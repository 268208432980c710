package lessonfetch

import "context"

// ArtifactPaths lists the files written for one prepared lesson.
type ArtifactPaths struct {
	TextPath     string
	PayloadPath  string
	MarkdownPath string
}

// ArtifactWriter persists prepared lesson files so an import can be
// inspected before (or instead of) uploading.
type ArtifactWriter interface {
	// WriteLesson writes the lesson text and API payload to disk and
	// returns the paths. markdown is written alongside when non-empty.
	WriteLesson(ctx context.Context, lesson *Lesson, markdown string) (*ArtifactPaths, error)
}
