package readability

import (
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/lessonfetch/lessonfetch"
)

// Ensure Extractor implements lessonfetch.Extractor at compile time.
var _ lessonfetch.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability as an alternative extraction engine.
type Extractor struct {
	cfg lessonfetch.ExtractConfig
}

// NewExtractor creates a new Extractor.
func NewExtractor(cfg lessonfetch.ExtractConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract processes raw HTML and returns the main content.
// This engine cannot evaluate CSS selectors; opts.Selectors is EINVALID.
func (e *Extractor) Extract(rawHTML string, opts lessonfetch.ExtractOptions) (*lessonfetch.ExtractResult, error) {
	if rawHTML == "" {
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "empty HTML input")
	}
	if len(opts.Selectors) > 0 {
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "readability engine does not support explicit selectors")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	minWords := e.cfg.MinWords
	if opts.MinWords > 0 {
		minWords = opts.MinWords
	}

	text := lessonfetch.CleanText(article.TextContent)
	words := lessonfetch.WordCount(text)
	if words < minWords {
		return nil, lessonfetch.Errorf(lessonfetch.ETOOSHORT,
			"extracted only %d words (minimum required: %d)", words, minWords)
	}

	return &lessonfetch.ExtractResult{
		Title:       article.Title,
		Text:        text,
		ContentHTML: article.Content,
		Words:       words,
	}, nil
}
