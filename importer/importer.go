// Package importer orchestrates the daily import pipeline: resolve the
// source URL, fetch, extract, quality-check, archive and upload.
package importer

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/lessonfetch/lessonfetch"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultLanguage is the lesson language used when a site does not
	// configure one.
	DefaultLanguage = "es"

	// DefaultConcurrency is how many sites an import-all run processes
	// at once.
	DefaultConcurrency = 4
)

// Importer coordinates one import run. The zero value is not usable;
// populate the service fields before calling its methods. Fetcher handles
// plain HTTP sites; Browser, when set, takes over for sites that need
// pre-steps or locale emulation.
type Importer struct {
	Feeds       lessonfetch.FeedService
	Fetcher     lessonfetch.Fetcher
	Browser     lessonfetch.Fetcher
	Extractors  map[string]lessonfetch.Extractor
	Converter   lessonfetch.Converter
	Detector    lessonfetch.LanguageDetector
	Artifacts   lessonfetch.ArtifactWriter
	Lessons     lessonfetch.LessonService
	History     lessonfetch.HistoryService
	RateLimiter lessonfetch.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// ImportOptions carries per-run inputs shared by all sites.
type ImportOptions struct {
	// TokenOverride, when set, is used for every upload regardless of
	// per-site keys. Set from an explicit command-line flag.
	TokenOverride string

	// DefaultToken is the API key used for sites without their own.
	DefaultToken string

	// DryRun prepares the lesson and writes artifacts but skips the
	// upload and the history record.
	DryRun bool

	// Force imports even when the content hash was already seen.
	Force bool
}

// ImportReport is the outcome of importing one site.
type ImportReport struct {
	Slug       string
	SourceURL  string
	Title      string
	Words      int
	LessonID   int64
	Paths      *lessonfetch.ArtifactPaths
	Skipped    bool
	SkipReason string
	Warnings   []string
	DryRun     bool
	Err        error
}

// ProgressFunc receives each site's report as import-all proceeds.
// Calls are serialized.
type ProgressFunc func(report *ImportReport)

// ImportSite runs the full pipeline for one site: resolve the source URL
// (following the feed when configured), fetch with retry, extract, verify
// language and novelty, write artifacts, upload and record. Unchanged or
// wrong-language content yields a skipped report, not an error.
func (imp *Importer) ImportSite(ctx context.Context, site *lessonfetch.Site, opts ImportOptions) (*ImportReport, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}

	report := &ImportReport{Slug: site.Slug, DryRun: opts.DryRun}

	sourceURL, feedTitle, err := imp.resolveSource(ctx, site)
	if err != nil {
		return nil, err
	}
	report.SourceURL = sourceURL

	if imp.RateLimiter != nil {
		u, err := url.Parse(sourceURL)
		if err != nil {
			return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "invalid source URL %q: %v", sourceURL, err)
		}
		if err := imp.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	rawHTML, err := imp.fetch(ctx, site, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", sourceURL, err)
	}

	extractor, err := imp.extractorFor(site)
	if err != nil {
		return nil, err
	}
	extracted, err := extractor.Extract(rawHTML, lessonfetch.ExtractOptions{
		Selectors: site.Selectors,
		MinWords:  site.MinWords,
	})
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", sourceURL, err)
	}
	report.Words = extracted.Words

	// A language mismatch almost always means the extractor grabbed
	// boilerplate or the site served the wrong edition; uploading that
	// would pollute the course.
	if imp.Detector != nil && site.Language != "" {
		if code, ok := imp.Detector.Detect(extracted.Text); ok && code != site.Language {
			report.Skipped = true
			report.SkipReason = fmt.Sprintf("detected language %q, expected %q", code, site.Language)
			return report, nil
		}
	}

	hash := lessonfetch.HashContent(extracted.Text)
	if !opts.Force {
		seen, err := imp.History.SeenContent(ctx, sourceURL, hash)
		if err != nil {
			return nil, err
		}
		if seen {
			report.Skipped = true
			report.SkipReason = "content unchanged since last import"
			return report, nil
		}
	}

	title := firstNonEmpty(site.Title, extracted.Title, feedTitle)
	if title == "" {
		title = lessonfetch.DeriveTitle(sourceURL, time.Now())
	}
	report.Title = title

	language := site.Language
	if language == "" && imp.Detector != nil {
		if code, ok := imp.Detector.Detect(extracted.Text); ok {
			language = code
		}
	}
	if language == "" {
		language = DefaultLanguage
	}

	lesson := &lessonfetch.Lesson{
		Title:        title,
		Text:         extracted.Text,
		ShareStatus:  lessonfetch.ShareStatusPrivate,
		CollectionID: site.CollectionID,
		Language:     language,
	}

	// The markdown archive is best-effort; text and payload always win.
	markdown := ""
	if imp.Converter != nil && extracted.ContentHTML != "" {
		md, err := imp.Converter.Convert(extracted.ContentHTML)
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("markdown conversion failed: %v", err))
		} else {
			markdown = md
		}
	}

	// Artifacts are written before the upload so a failed upload still
	// leaves the prepared payload on disk for inspection and retry.
	if imp.Artifacts != nil {
		paths, err := imp.Artifacts.WriteLesson(ctx, lesson, markdown)
		if err != nil {
			return nil, fmt.Errorf("writing artifacts: %w", err)
		}
		report.Paths = paths
	}

	if opts.DryRun {
		return report, nil
	}

	token := firstNonEmpty(opts.TokenOverride, site.APIKey, opts.DefaultToken)
	lessonID, err := imp.Lessons.ImportLesson(ctx, token, lesson)
	if err != nil {
		return nil, fmt.Errorf("uploading lesson: %w", err)
	}
	report.LessonID = lessonID

	rec := &lessonfetch.ImportRecord{
		SiteSlug:    site.Slug,
		SourceURL:   sourceURL,
		Title:       title,
		Language:    language,
		Words:       extracted.Words,
		ContentHash: hash,
		LessonID:    lessonID,
	}
	if report.Paths != nil {
		rec.TextPath = report.Paths.TextPath
		rec.PayloadPath = report.Paths.PayloadPath
	}
	if err := imp.History.RecordImport(ctx, rec); err != nil {
		return nil, fmt.Errorf("recording import: %w", err)
	}

	return report, nil
}

// ImportAll imports every site concurrently, bounded by Concurrency.
// One failing site never aborts the others; its error is folded into the
// corresponding report. Reports come back in the order of sites.
func (imp *Importer) ImportAll(ctx context.Context, sites []*lessonfetch.Site, opts ImportOptions, progress ProgressFunc) []*ImportReport {
	concurrency := imp.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	reports := make([]*ImportReport, len(sites))

	var mu sync.Mutex // serializes progress callbacks

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, site := range sites {
		g.Go(func() error {
			report, err := imp.ImportSite(gctx, site, opts)
			if err != nil {
				report = &ImportReport{Slug: site.Slug, DryRun: opts.DryRun, Err: err}
			}
			reports[i] = report

			if progress != nil {
				mu.Lock()
				progress(report)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

// resolveSource determines the URL to fetch: the newest feed entry when a
// feed is configured, the site URL otherwise, with the lang parameter
// appended when the site selects content that way.
func (imp *Importer) resolveSource(ctx context.Context, site *lessonfetch.Site) (sourceURL, feedTitle string, err error) {
	sourceURL = site.URL
	if site.FeedURL != "" {
		if imp.Feeds == nil {
			return "", "", lessonfetch.Errorf(lessonfetch.EINTERNAL, "site %s configures a feed but no feed service is available", site.Slug)
		}
		entry, err := imp.Feeds.LatestEntry(ctx, site.FeedURL)
		if err != nil {
			return "", "", fmt.Errorf("resolving feed %s: %w", site.FeedURL, err)
		}
		sourceURL = entry.URL
		feedTitle = entry.Title
	}

	if site.SourceLang != "" {
		sourceURL, err = lessonfetch.WithQueryParam(sourceURL, "lang", site.SourceLang)
		if err != nil {
			return "", "", err
		}
	}
	return sourceURL, feedTitle, nil
}

// fetch retrieves the page with retry, routing to the browser fetcher
// when the site needs one.
func (imp *Importer) fetch(ctx context.Context, site *lessonfetch.Site, sourceURL string) (string, error) {
	req := lessonfetch.FetchRequest{
		URL:            sourceURL,
		AcceptLanguage: site.AcceptLanguageHeader(),
		Locale:         site.BrowserLanguage,
		PreSteps:       site.PreSteps,
	}

	fetcher := imp.Fetcher
	if site.NeedsBrowser() && imp.Browser != nil {
		fetcher = imp.Browser
	}
	if fetcher == nil {
		return "", lessonfetch.Errorf(lessonfetch.EINTERNAL, "no fetcher available for site %s", site.Slug)
	}

	delays := imp.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, req, fetcher.Fetch, delays)
}

// extractorFor picks the extraction engine. An empty name means the
// heuristic engine; explicit selectors force it too, since no other
// engine evaluates them.
func (imp *Importer) extractorFor(site *lessonfetch.Site) (lessonfetch.Extractor, error) {
	engine := site.Engine
	if engine == "" || len(site.Selectors) > 0 {
		engine = lessonfetch.EngineHeuristic
	}
	extractor, ok := imp.Extractors[engine]
	if !ok || extractor == nil {
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "no extractor registered for engine %q", engine)
	}
	return extractor, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
