package main

import (
	"fmt"

	"github.com/lessonfetch/lessonfetch"
	"github.com/lessonfetch/lessonfetch/importer"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	opts := importer.ImportOptions{
		TokenOverride: c.Token,
		DefaultToken:  deps.DefaultToken,
		DryRun:        c.DryRun || !c.Upload,
		Force:         c.Force,
	}

	if c.All {
		return c.runAll(deps, opts)
	}

	site, err := c.targetSite(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonfetch.ErrorMessage(err))
		return err
	}

	report, err := deps.Importer.ImportSite(deps.Ctx, site, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonfetch.ErrorMessage(err))
		return err
	}

	c.printReport(deps, report)
	return nil
}

// targetSite resolves what to import: a saved site, an ad-hoc URL, or a
// saved site pointed at a different page.
func (c *ImportCmd) targetSite(deps *Dependencies) (*lessonfetch.Site, error) {
	if c.Site != "" {
		site, err := deps.Sites.FindSiteBySlug(deps.Ctx, c.Site)
		if err != nil {
			return nil, err
		}
		if c.URL != "" {
			// An explicit URL beats the configured page and the feed.
			site.URL = c.URL
			site.FeedURL = ""
		}
		c.applyOverrides(site)
		return site, nil
	}

	if c.URL == "" {
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "a URL, --site or --all is required")
	}

	slug, err := lessonfetch.SlugForURL(c.URL)
	if err != nil {
		return nil, err
	}
	site := &lessonfetch.Site{
		Slug:     slug,
		URL:      c.URL,
		Language: firstNonEmpty(c.Language, deps.DefaultLanguage),
	}
	c.applyOverrides(site)
	return site, nil
}

// applyOverrides copies explicitly set flags onto the site.
func (c *ImportCmd) applyOverrides(site *lessonfetch.Site) {
	if c.Engine != "" {
		site.Engine = c.Engine
	}
	if c.Language != "" {
		site.Language = c.Language
	}
	if c.MinWords > 0 {
		site.MinWords = c.MinWords
	}
	if c.Collection != 0 {
		site.CollectionID = c.Collection
	}
	if c.Title != "" {
		site.Title = c.Title
	}
}

func (c *ImportCmd) runAll(deps *Dependencies, opts importer.ImportOptions) error {
	if c.Concurrency > 0 {
		deps.Importer.Concurrency = c.Concurrency
	}

	sites, err := deps.Sites.FindSites(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonfetch.ErrorMessage(err))
		return err
	}
	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites configured. Use 'lessonfetch sites add' or 'lessonfetch pick' to create one.")
		return nil
	}

	for _, site := range sites {
		c.applyOverrides(site)
	}

	progress := func(report *importer.ImportReport) {
		switch {
		case report.Err != nil:
			fmt.Fprintf(deps.Stderr, "  %s: %v\n", report.Slug, report.Err)
		case report.Skipped:
			fmt.Fprintf(deps.Stdout, "  %s: skipped, %s\n", report.Slug, report.SkipReason)
		case report.LessonID != 0:
			fmt.Fprintf(deps.Stdout, "  %s: %q uploaded as lesson %d\n", report.Slug, report.Title, report.LessonID)
		default:
			fmt.Fprintf(deps.Stdout, "  %s: %q prepared (%d words)\n", report.Slug, report.Title, report.Words)
		}
	}

	reports := deps.Importer.ImportAll(deps.Ctx, sites, opts, progress)

	var imported, skipped, failed int
	for _, report := range reports {
		switch {
		case report.Err != nil:
			failed++
		case report.Skipped:
			skipped++
		default:
			imported++
		}
	}
	fmt.Fprintf(deps.Stdout, "%d imported, %d skipped, %d failed\n", imported, skipped, failed)

	if failed > 0 {
		return lessonfetch.Errorf(lessonfetch.EINTERNAL, "%d of %d sites failed", failed, len(sites))
	}
	return nil
}

func (c *ImportCmd) printReport(deps *Dependencies, report *importer.ImportReport) {
	if report.Skipped {
		fmt.Fprintf(deps.Stdout, "Skipped %s: %s\n", report.Slug, report.SkipReason)
		return
	}

	for _, warning := range report.Warnings {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", warning)
	}

	if report.Paths != nil {
		fmt.Fprintf(deps.Stdout, "Prepared lesson text: %s\n", report.Paths.TextPath)
		fmt.Fprintf(deps.Stdout, "Prepared LingQ payload: %s\n", report.Paths.PayloadPath)
		if report.Paths.MarkdownPath != "" {
			fmt.Fprintf(deps.Stdout, "Archived markdown: %s\n", report.Paths.MarkdownPath)
		}
	}
	fmt.Fprintf(deps.Stdout, "Extracted words: %d\n", report.Words)

	if report.LessonID != 0 {
		fmt.Fprintf(deps.Stdout, "LingQ upload complete. Lesson ID: %d\n", report.LessonID)
	} else {
		fmt.Fprintln(deps.Stdout, "Upload skipped. Use --upload after setting LINGQ_API_KEY.")
	}
}
