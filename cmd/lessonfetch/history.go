package main

import (
	"fmt"

	"github.com/lessonfetch/lessonfetch"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := lessonfetch.ImportFilter{Limit: c.Limit}
	if c.Site != "" {
		filter.SiteSlug = &c.Site
	}
	if c.URL != "" {
		filter.SourceURL = &c.URL
	}

	records, err := deps.History.FindImports(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonfetch.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No imports recorded.")
		return nil
	}

	for _, rec := range records {
		line := fmt.Sprintf("%s  %s  %q  %d words",
			rec.ImportedAt.Format("2006-01-02 15:04"), rec.SiteSlug, rec.Title, rec.Words)
		if rec.LessonID != 0 {
			line += fmt.Sprintf("  lesson %d", rec.LessonID)
		}
		fmt.Fprintln(deps.Stdout, line)
	}
	return nil
}
