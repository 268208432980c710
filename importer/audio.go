package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lessonfetch/lessonfetch"
)

// AudioImporter uploads a directory of MP3 files as sequentially numbered
// lessons, optionally transcribing each file so the lesson text is the
// real transcript instead of a title placeholder.
type AudioImporter struct {
	Lessons     lessonfetch.LessonService
	Transcriber lessonfetch.Transcriber
}

// AudioOptions carries the inputs for one audio batch.
type AudioOptions struct {
	// Dir is the directory scanned for *.mp3 files.
	Dir string

	// Prefix is the lesson title prefix: "My Book" numbers lessons
	// "My Book 01", "My Book 02", ...
	Prefix string

	// Language is the lesson language code and the transcription hint.
	// Empty means DefaultLanguage.
	Language string

	// Collection assigns the lessons to a course when non-zero.
	Collection int64

	// Token is the API key for the uploads.
	Token string

	// StartTrack numbers the first file. Useful when resuming a
	// partial upload. Values below 1 mean 1.
	StartTrack int

	// Transcribe runs each file through the transcriber before upload.
	Transcribe bool

	// DryRun lists the files and generated titles without uploading.
	DryRun bool
}

// AudioReport is the outcome for one file of the batch.
type AudioReport struct {
	Path     string
	Title    string
	Words    int
	LessonID int64
	Err      error
}

// ImportDir uploads every MP3 in opts.Dir in natural filename order.
// A failing file does not stop the batch; its error lands in the report.
func (a *AudioImporter) ImportDir(ctx context.Context, opts AudioOptions) ([]*AudioReport, error) {
	if opts.Prefix == "" {
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "lesson title prefix required")
	}

	files, err := listMP3s(opts.Dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, lessonfetch.Errorf(lessonfetch.ENOTFOUND, "no MP3 files found in %s", opts.Dir)
	}

	if !opts.DryRun && opts.Token == "" {
		return nil, lessonfetch.Errorf(lessonfetch.EUNAUTHORIZED, "missing API key")
	}

	start := opts.StartTrack
	if start < 1 {
		start = 1
	}
	language := opts.Language
	if language == "" {
		language = DefaultLanguage
	}

	// Zero-pad to 2 digits; 3 when the batch runs past track 99.
	pad := 2
	if start+len(files)-1 > 99 {
		pad = 3
	}

	reports := make([]*AudioReport, 0, len(files))
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		title := fmt.Sprintf("%s %0*d", opts.Prefix, pad, start+i)
		report := &AudioReport{Path: path, Title: title}
		reports = append(reports, report)

		if opts.DryRun {
			continue
		}

		// The lesson text defaults to the title because the API
		// rejects a blank text field.
		text := title
		if opts.Transcribe && a.Transcriber != nil {
			transcript, err := a.Transcriber.Transcribe(ctx, path, language)
			if err != nil {
				report.Err = fmt.Errorf("transcribing %s: %w", filepath.Base(path), err)
				continue
			}
			text = transcript
			report.Words = lessonfetch.WordCount(transcript)
		}

		lesson := &lessonfetch.Lesson{
			Title:        title,
			Text:         text,
			ShareStatus:  lessonfetch.ShareStatusPrivate,
			CollectionID: opts.Collection,
			Language:     language,
		}
		id, err := a.Lessons.ImportAudioLesson(ctx, opts.Token, lesson, path)
		if err != nil {
			report.Err = err
			continue
		}
		report.LessonID = id
	}

	return reports, nil
}

// listMP3s returns the .mp3 files in dir sorted in natural order.
func listMP3s(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, lessonfetch.Errorf(lessonfetch.ENOTFOUND, "audio directory %s: %s", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".mp3") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	sort.Slice(files, func(i, j int) bool {
		return naturalLess(filepath.Base(files[i]), filepath.Base(files[j]))
	})
	return files, nil
}

// naturalLess orders filenames with digit runs compared numerically, so
// "track2.mp3" sorts before "track10.mp3" (unlike plain string sort).
func naturalLess(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	for a != "" && b != "" {
		if isDigit(a[0]) && isDigit(b[0]) {
			aRun, aRest := splitDigits(a)
			bRun, bRest := splitDigits(b)
			if c := compareDigitRuns(aRun, bRun); c != 0 {
				return c < 0
			}
			a, b = aRest, bRest
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// splitDigits splits s into its leading digit run and the remainder.
func splitDigits(s string) (run, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// compareDigitRuns compares two digit runs by numeric value without
// parsing them, so arbitrarily long runs cannot overflow.
func compareDigitRuns(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}
