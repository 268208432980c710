package lessonfetch

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pre-step actions executed by a browser fetcher before the content page
// is loaded. Typical use is picking a site language on a settings page.
const (
	StepGoto        = "goto"          // navigate to Step.URL
	StepFill        = "fill"          // fill the input at Step.Selector with Step.Value
	StepSelect      = "select"        // choose Step.Value in the <select> at Step.Selector
	StepClick       = "click"         // click the element at Step.Selector
	StepWaitForLoad = "wait_for_load" // wait for the document to load
	StepWait        = "wait"          // sleep Step.Millis milliseconds (default 500)
)

// Extraction engine names accepted in a site's Engine field.
const (
	EngineHeuristic   = "heuristic"
	EngineReadability = "readability"
	EngineTrafilatura = "trafilatura"
)

// PreStep is one browser action run before fetching a site's content page.
type PreStep struct {
	Action   string `json:"action"`
	URL      string `json:"url,omitempty"`
	Selector string `json:"selector,omitempty"`
	Value    string `json:"value,omitempty"`
	Millis   int    `json:"ms,omitempty"`
}

// Site is a saved per-site import configuration. One JSON file per site;
// the slug doubles as the filename.
type Site struct {
	// Slug identifies the site. Derived from the host by default.
	Slug string `json:"-"`

	// URL is the content page to import.
	URL string `json:"url"`

	// FeedURL, when set, resolves the newest entry of an RSS/Atom feed
	// instead of fetching URL directly.
	FeedURL string `json:"feed_url,omitempty"`

	// Selectors enables explicit-selector extraction when non-empty.
	Selectors []string `json:"selectors,omitempty"`

	// APIKey is the LingQ token for this site's uploads. Falls back to
	// the LINGQ_API_KEY environment variable when empty.
	APIKey string `json:"api_key,omitempty"`

	// Language is the LingQ language code for created lessons.
	Language string `json:"language,omitempty"`

	// BrowserLanguage forces the browser locale during fetches.
	BrowserLanguage string `json:"browser_language,omitempty"`

	// AcceptLanguage overrides the Accept-Language header. Falls back
	// to BrowserLanguage when empty.
	AcceptLanguage string `json:"accept_language,omitempty"`

	// SourceLang, when set, is appended to the URL as a lang query
	// parameter. Some multi-language sites select content that way.
	SourceLang string `json:"source_lang,omitempty"`

	// Title overrides the derived lesson title.
	Title string `json:"title,omitempty"`

	// CollectionID assigns lessons to a LingQ course.
	CollectionID int64 `json:"collection_id,omitempty"`

	// MinWords overrides the extraction word floor when positive.
	MinWords int `json:"min_words,omitempty"`

	// Engine overrides the extraction engine ("heuristic",
	// "readability", "trafilatura").
	Engine string `json:"engine,omitempty"`

	// PreSteps run in a browser before the content page is fetched.
	PreSteps []PreStep `json:"pre_steps,omitempty"`
}

var slugRE = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Validate returns an error if the site contains invalid fields.
func (s *Site) Validate() error {
	if s.Slug == "" {
		return Errorf(EINVALID, "site slug required")
	}
	if !slugRE.MatchString(s.Slug) {
		return Errorf(EINVALID, "site slug %q must match %s", s.Slug, slugRE.String())
	}
	if s.URL == "" && s.FeedURL == "" {
		return Errorf(EINVALID, "site URL or feed URL required")
	}
	switch s.Engine {
	case "", EngineHeuristic, EngineReadability, EngineTrafilatura:
	default:
		return Errorf(EINVALID, "unknown extraction engine %q", s.Engine)
	}
	for _, step := range s.PreSteps {
		switch step.Action {
		case StepGoto, StepFill, StepSelect, StepClick, StepWaitForLoad, StepWait:
		default:
			return Errorf(EINVALID, "unknown pre-step action %q", step.Action)
		}
	}
	return nil
}

// NeedsBrowser reports whether importing this site requires a real
// browser rather than a plain HTTP fetch.
func (s *Site) NeedsBrowser() bool {
	return len(s.PreSteps) > 0 || s.BrowserLanguage != ""
}

// AcceptLanguageHeader returns the Accept-Language value for HTTP
// fetches: the explicit override, or the browser language.
func (s *Site) AcceptLanguageHeader() string {
	if s.AcceptLanguage != "" {
		return s.AcceptLanguage
	}
	return s.BrowserLanguage
}

// SiteService manages saved site configurations.
type SiteService interface {
	// FindSites lists all saved sites sorted by slug.
	FindSites(ctx context.Context) ([]*Site, error)

	// FindSiteBySlug retrieves one site.
	// Returns ENOTFOUND if no site with the slug exists.
	FindSiteBySlug(ctx context.Context, slug string) (*Site, error)

	// SaveSite creates or replaces a site configuration.
	SaveSite(ctx context.Context, site *Site) error

	// DeleteSite removes a site configuration.
	// Returns ENOTFOUND if no site with the slug exists.
	DeleteSite(ctx context.Context, slug string) error
}

var nonSlugRE = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowers value and replaces every non-alphanumeric run with a
// single hyphen. Returns "lesson" when nothing survives.
func Slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = nonSlugRE.ReplaceAllString(value, "-")
	value = strings.Trim(value, "-")
	if value == "" {
		return "lesson"
	}
	return value
}

// SlugForURL derives a site slug from the URL's host.
// Example: https://www.example.co.uk/news → example-co-uk
func SlugForURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL: %v", err)
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", rawURL)
	}
	return Slugify(host), nil
}

var titleCaser = cases.Title(language.Und)

// DeriveTitle builds a default lesson title from the source URL:
// the last path segment title-cased, the host, and the date.
// Example: https://www.example.com/daily-news → "Daily News (example.com) 2026-01-02"
func DeriveTitle(rawURL string, now time.Time) string {
	datePart := now.Format("2006-01-02")

	u, err := url.Parse(rawURL)
	if err != nil {
		return "Daily Reading " + datePart
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")

	path := strings.Trim(u.Path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	path = strings.ReplaceAll(path, "-", " ")
	path = strings.ReplaceAll(path, "_", " ")
	path = strings.TrimSpace(path)

	if path != "" {
		return titleCaser.String(path) + " (" + host + ") " + datePart
	}
	return "Daily Reading (" + host + ") " + datePart
}

// WithQueryParam returns rawURL with the query parameter set,
// preserving existing parameters.
func WithQueryParam(rawURL, key, value string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL: %v", err)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
