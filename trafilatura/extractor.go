package trafilatura

import (
	"bytes"
	"strings"

	"github.com/lessonfetch/lessonfetch"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements lessonfetch.Extractor at compile time.
var _ lessonfetch.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura as an alternative extraction engine.
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
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "trafilatura engine does not support explicit selectors")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	minWords := e.cfg.MinWords
	if opts.MinWords > 0 {
		minWords = opts.MinWords
	}

	text := lessonfetch.CleanText(result.ContentText)
	words := lessonfetch.WordCount(text)
	if words < minWords {
		return nil, lessonfetch.Errorf(lessonfetch.ETOOSHORT,
			"extracted only %d words (minimum required: %d)", words, minWords)
	}

	return &lessonfetch.ExtractResult{
		Title:       result.Metadata.Title,
		Text:        text,
		ContentHTML: contentHTML,
		Words:       words,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
