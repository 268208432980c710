package main

import (
	"fmt"

	"github.com/lessonfetch/lessonfetch"
	"github.com/lessonfetch/lessonfetch/importer"
)

// Run executes the audio command.
func (c *AudioCmd) Run(deps *Dependencies) error {
	opts := importer.AudioOptions{
		Dir:        c.Dir,
		Prefix:     c.TitlePrefix,
		Language:   firstNonEmpty(c.Language, deps.DefaultLanguage),
		Collection: c.Collection,
		Token:      firstNonEmpty(c.Token, deps.DefaultToken),
		StartTrack: c.StartTrack,
		Transcribe: c.Transcribe,
		DryRun:     c.DryRun,
	}

	reports, err := deps.Audio.ImportDir(deps.Ctx, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonfetch.ErrorMessage(err))
		return err
	}

	var failed int
	for _, report := range reports {
		switch {
		case report.Err != nil:
			failed++
			fmt.Fprintf(deps.Stderr, "  %s: %v\n", report.Path, report.Err)
		case c.DryRun:
			fmt.Fprintf(deps.Stdout, "  %s  %s\n", report.Title, report.Path)
		default:
			fmt.Fprintf(deps.Stdout, "  %s uploaded as lesson %d\n", report.Title, report.LessonID)
		}
	}

	if c.DryRun {
		fmt.Fprintf(deps.Stdout, "%d file(s) ready. Rerun without --dry-run to upload.\n", len(reports))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%d of %d file(s) uploaded\n", len(reports)-failed, len(reports))
	if failed > 0 {
		return lessonfetch.Errorf(lessonfetch.EINTERNAL, "%d of %d files failed", failed, len(reports))
	}
	return nil
}
