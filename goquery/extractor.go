package goquery

import (
	"github.com/lessonfetch/lessonfetch"
)

// Ensure Extractor implements lessonfetch.Extractor at compile time.
var _ lessonfetch.Extractor = (*Extractor)(nil)

// Extractor is the heuristic extraction engine. It strips boilerplate,
// tries any explicit selectors first, and falls back to content scoring
// when they match nothing.
type Extractor struct {
	cfg lessonfetch.ExtractConfig
}

// NewExtractor creates an Extractor with the given configuration.
func NewExtractor(cfg lessonfetch.ExtractConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract processes raw HTML and returns the readable content.
// Selector extraction runs on the stripped tree; a no-match result falls
// through to the heuristic scorer, observable to callers through the
// returned Container field. Text below the word floor is ETOOSHORT.
func (e *Extractor) Extract(rawHTML string, opts lessonfetch.ExtractOptions) (*lessonfetch.ExtractResult, error) {
	if rawHTML == "" {
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "empty HTML input")
	}

	cfg := e.cfg
	if opts.MinWords > 0 {
		cfg.MinWords = opts.MinWords
	}

	doc, err := Parse(rawHTML)
	if err != nil {
		return nil, err
	}
	Strip(doc, cfg)

	if len(opts.Selectors) > 0 {
		result, err := ExtractBySelectors(doc, opts.Selectors)
		if err != nil {
			return nil, err
		}
		if !result.NoMatch() {
			if result.Words < cfg.MinWords {
				return nil, lessonfetch.Errorf(lessonfetch.ETOOSHORT,
					"extracted only %d words (minimum required: %d)", result.Words, cfg.MinWords)
			}
			return result, nil
		}
	}

	return ExtractByHeuristic(doc, cfg)
}
