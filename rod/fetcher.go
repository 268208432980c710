package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/lessonfetch/lessonfetch"
)

// defaultStepWait is how long a "wait" pre-step sleeps when no duration
// is configured.
const defaultStepWait = 500 * time.Millisecond

// Ensure Fetcher implements lessonfetch.Fetcher at compile time.
var _ lessonfetch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// It runs a site's pre-steps before loading the content page, so pages
// behind cookie banners or language pickers render the wanted content.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	closed  atomic.Bool
}

// NewFetcher creates a new Fetcher backed by a managed headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...ManagerOption) (*Fetcher, error) {
	manager, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Fetcher{manager: manager}, nil
}

// Fetch executes req's pre-steps, navigates to req.URL and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, req lessonfetch.FetchRequest) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.closed.Load() {
		return "", lessonfetch.Errorf(lessonfetch.EINVALID, "fetcher is closed")
	}

	// Create a new page
	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := emulateLanguage(page, req); err != nil {
		return "", err
	}

	for i, step := range req.PreSteps {
		if err := runPreStep(ctx, page, step); err != nil {
			return "", fmt.Errorf("pre-step %d (%s): %w", i+1, step.Action, err)
		}
	}

	// Navigate to URL
	if err := page.Navigate(req.URL); err != nil {
		return "", err
	}

	// Wait for page to load
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Get rendered HTML
	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// emulateLanguage applies the request's locale and Accept-Language header
// to the page before any navigation. The locale implies the header when no
// explicit header is set, matching what a real browser in that locale
// would send.
func emulateLanguage(page *rod.Page, req lessonfetch.FetchRequest) error {
	if req.Locale != "" {
		setLocale := proto.EmulationSetLocaleOverride{Locale: req.Locale}
		if err := setLocale.Call(page); err != nil {
			return fmt.Errorf("setting locale override: %w", err)
		}
	}

	header := req.AcceptLanguage
	if header == "" {
		header = req.Locale
	}
	if header != "" {
		if _, err := page.SetExtraHeaders([]string{"Accept-Language", header}); err != nil {
			return fmt.Errorf("setting Accept-Language header: %w", err)
		}
	}
	return nil
}

// runPreStep executes one configured browser action. Element steps block
// until the element appears, bounded by the page context.
func runPreStep(ctx context.Context, page *rod.Page, step lessonfetch.PreStep) error {
	switch step.Action {
	case lessonfetch.StepGoto:
		if step.URL == "" {
			return nil
		}
		if err := page.Navigate(step.URL); err != nil {
			return err
		}
		return page.WaitLoad()

	case lessonfetch.StepFill:
		el, err := page.Element(step.Selector)
		if err != nil {
			return err
		}
		if err := el.SelectAllText(); err != nil {
			return err
		}
		return el.Input(step.Value)

	case lessonfetch.StepSelect:
		el, err := page.Element(step.Selector)
		if err != nil {
			return err
		}
		// Match the <option> by its value attribute.
		option := fmt.Sprintf("[value=%q]", step.Value)
		return el.Select([]string{option}, true, rod.SelectorTypeCSSSector)

	case lessonfetch.StepClick:
		el, err := page.Element(step.Selector)
		if err != nil {
			return err
		}
		return el.Click(proto.InputMouseButtonLeft, 1)

	case lessonfetch.StepWaitForLoad:
		return page.WaitLoad()

	case lessonfetch.StepWait:
		d := time.Duration(step.Millis) * time.Millisecond
		if step.Millis <= 0 {
			d = defaultStepWait
		}
		select {
		case <-time.After(d):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}

	default:
		return lessonfetch.Errorf(lessonfetch.EINVALID, "unknown pre-step action %q", step.Action)
	}
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
