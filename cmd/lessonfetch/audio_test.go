package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/lessonfetch/lessonfetch"
	main "github.com/lessonfetch/lessonfetch/cmd/lessonfetch"
	"github.com/lessonfetch/lessonfetch/importer"
	"github.com/lessonfetch/lessonfetch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeAudioDir creates a temp directory holding empty MP3 files.
func writeAudioDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("ID3"), 0o644))
	}
	return dir
}

type audioCapture struct {
	mu      sync.Mutex
	tokens  []string
	lessons []*lessonfetch.Lesson
}

func TestAudioCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("uploads every file and reports the count", func(t *testing.T) {
		t.Parallel()

		dir := writeAudioDir(t, "01.mp3", "02.mp3")

		capture := &audioCapture{}
		lessons := &mock.LessonService{
			ImportAudioLessonFn: func(ctx context.Context, token string, lesson *lessonfetch.Lesson, path string) (int64, error) {
				capture.mu.Lock()
				defer capture.mu.Unlock()
				capture.tokens = append(capture.tokens, token)
				capture.lessons = append(capture.lessons, lesson)
				return int64(7000 + len(capture.lessons)), nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:          context.Background(),
			Stdout:       stdout,
			Stderr:       &bytes.Buffer{},
			Audio:        &importer.AudioImporter{Lessons: lessons},
			DefaultToken: "default-token",
		}

		cmd := &main.AudioCmd{Dir: dir, TitlePrefix: "Cuentos", StartTrack: 1, Language: "es"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.Len(t, capture.lessons, 2)
		assert.Equal(t, "Cuentos 01", capture.lessons[0].Title)
		assert.Equal(t, "Cuentos 02", capture.lessons[1].Title)
		assert.Equal(t, "default-token", capture.tokens[0])
		assert.Contains(t, stdout.String(), "Cuentos 01 uploaded as lesson 7001")
		assert.Contains(t, stdout.String(), "2 of 2 file(s) uploaded")
	})

	t.Run("flag token beats the default", func(t *testing.T) {
		t.Parallel()

		dir := writeAudioDir(t, "01.mp3")

		var gotToken string
		lessons := &mock.LessonService{
			ImportAudioLessonFn: func(ctx context.Context, token string, lesson *lessonfetch.Lesson, path string) (int64, error) {
				gotToken = token
				return 1, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:          context.Background(),
			Stdout:       &bytes.Buffer{},
			Stderr:       &bytes.Buffer{},
			Audio:        &importer.AudioImporter{Lessons: lessons},
			DefaultToken: "default-token",
		}

		cmd := &main.AudioCmd{Dir: dir, TitlePrefix: "Cuentos", StartTrack: 1, Token: "flag-token"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "flag-token", gotToken)
	})

	t.Run("dry run lists titles without uploading", func(t *testing.T) {
		t.Parallel()

		dir := writeAudioDir(t, "01.mp3", "02.mp3")

		lessons := &mock.LessonService{
			ImportAudioLessonFn: func(ctx context.Context, token string, lesson *lessonfetch.Lesson, path string) (int64, error) {
				t.Error("a dry run must not upload")
				return 0, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Audio:  &importer.AudioImporter{Lessons: lessons},
		}

		cmd := &main.AudioCmd{Dir: dir, TitlePrefix: "Cuentos", StartTrack: 1, DryRun: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Cuentos 01")
		assert.Contains(t, stdout.String(), "Cuentos 02")
		assert.Contains(t, stdout.String(), "2 file(s) ready. Rerun without --dry-run to upload.")
	})

	t.Run("a failing file yields a nonzero exit", func(t *testing.T) {
		t.Parallel()

		dir := writeAudioDir(t, "01.mp3", "02.mp3")

		lessons := &mock.LessonService{
			ImportAudioLessonFn: func(ctx context.Context, token string, lesson *lessonfetch.Lesson, path string) (int64, error) {
				if filepath.Base(path) == "01.mp3" {
					return 0, lessonfetch.Errorf(lessonfetch.EINTERNAL, "lingq: status 500")
				}
				return 42, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:          context.Background(),
			Stdout:       stdout,
			Stderr:       stderr,
			Audio:        &importer.AudioImporter{Lessons: lessons},
			DefaultToken: "default-token",
		}

		cmd := &main.AudioCmd{Dir: dir, TitlePrefix: "Cuentos", StartTrack: 1}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, lessonfetch.EINTERNAL, lessonfetch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "01.mp3")
		assert.Contains(t, stdout.String(), "1 of 2 file(s) uploaded")
	})

	t.Run("missing prefix is rejected before any work", func(t *testing.T) {
		t.Parallel()

		dir := writeAudioDir(t, "01.mp3")

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Audio:  &importer.AudioImporter{Lessons: &mock.LessonService{}},
		}

		cmd := &main.AudioCmd{Dir: dir, StartTrack: 1}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, lessonfetch.EINVALID, lessonfetch.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("language falls back to the configured default", func(t *testing.T) {
		t.Parallel()

		dir := writeAudioDir(t, "01.mp3")

		var gotLanguage string
		lessons := &mock.LessonService{
			ImportAudioLessonFn: func(ctx context.Context, token string, lesson *lessonfetch.Lesson, path string) (int64, error) {
				gotLanguage = lesson.Language
				return 1, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:             context.Background(),
			Stdout:          &bytes.Buffer{},
			Stderr:          &bytes.Buffer{},
			Audio:           &importer.AudioImporter{Lessons: lessons},
			DefaultToken:    "default-token",
			DefaultLanguage: "pt",
		}

		cmd := &main.AudioCmd{Dir: dir, TitlePrefix: "Cuentos", StartTrack: 1}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "pt", gotLanguage)
	})
}
