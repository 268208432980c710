package lessonfetch

import "context"

// Picker interactively collects content selectors from a rendered page.
// Implementations open the page, let the operator click content elements,
// and synthesize one CSS selector per picked element.
type Picker interface {
	// Pick runs an interactive session on url, seeded with any
	// previously chosen selectors, and returns the final selector list.
	// Returns the seed list unchanged when the operator picks nothing.
	Pick(ctx context.Context, url string, initial []string) ([]string, error)

	// Close releases browser resources.
	Close() error
}
