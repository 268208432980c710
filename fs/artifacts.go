package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lessonfetch/lessonfetch"
)

// maxSlugLen bounds the slug part of artifact filenames.
const maxSlugLen = 80

// Ensure ArtifactWriter implements lessonfetch.ArtifactWriter at compile time.
var _ lessonfetch.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter writes prepared lessons to an output directory as
// YYYYMMDD-<slug>.txt plus YYYYMMDD-<slug>.payload.json, with an optional
// Markdown rendition alongside.
type ArtifactWriter struct {
	dir string
}

// NewArtifactWriter creates an ArtifactWriter rooted at dir. The directory
// is created on the first write.
func NewArtifactWriter(dir string) *ArtifactWriter {
	return &ArtifactWriter{dir: dir}
}

// WriteLesson writes the lesson text and API payload and returns the paths.
// markdown is written to a .md file alongside when non-empty. Writing the
// same lesson twice on the same day overwrites the previous files.
func (w *ArtifactWriter) WriteLesson(ctx context.Context, lesson *lessonfetch.Lesson, markdown string) (*lessonfetch.ArtifactPaths, error) {
	if err := lesson.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, err
	}

	slug := lessonfetch.Slugify(lesson.Title)
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	base := time.Now().Format("20060102") + "-" + slug

	paths := &lessonfetch.ArtifactPaths{
		TextPath:    filepath.Join(w.dir, base+".txt"),
		PayloadPath: filepath.Join(w.dir, base+".payload.json"),
	}

	if err := os.WriteFile(paths.TextPath, []byte(lesson.Text+"\n"), 0644); err != nil {
		return nil, err
	}

	payload, err := marshalPayload(lesson)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(paths.PayloadPath, payload, 0644); err != nil {
		return nil, err
	}

	if markdown != "" {
		paths.MarkdownPath = filepath.Join(w.dir, base+".md")
		if err := os.WriteFile(paths.MarkdownPath, []byte(FormatMarkdown(lesson, markdown)), 0644); err != nil {
			return nil, err
		}
	}

	return paths, nil
}

// FormatMarkdown renders the Markdown artifact with YAML frontmatter.
func FormatMarkdown(lesson *lessonfetch.Lesson, markdown string) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: ")
	b.WriteString(lesson.Title)
	b.WriteString("\nlanguage: ")
	b.WriteString(lesson.Language)
	b.WriteString("\nimported: ")
	b.WriteString(time.Now().Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(markdown)
	return b.String()
}

// marshalPayload renders the lesson as the API payload JSON without
// HTML escaping, matching what ImportLesson sends.
func marshalPayload(lesson *lessonfetch.Lesson) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lesson); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
