package lessonfetch

import "context"

// FetchRequest describes one page fetch.
type FetchRequest struct {
	// URL is the page to fetch.
	URL string

	// AcceptLanguage, when set, is sent as the Accept-Language header.
	AcceptLanguage string

	// Locale, when set, is emulated as the browser locale so pages see
	// it in navigator.language. Only browser-based fetchers honor it;
	// HTTP fetchers ignore it.
	Locale string

	// PreSteps are browser actions to run before loading URL. Only
	// browser-based fetchers can execute them; HTTP fetchers return
	// EINVALID when steps are present.
	PreSteps []PreStep
}

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content and pre-navigation steps.
type Fetcher interface {
	// Fetch retrieves the page described by req and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, req FetchRequest) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
