package mock

import "github.com/lessonfetch/lessonfetch"

var _ lessonfetch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of lessonfetch.Extractor.
type Extractor struct {
	ExtractFn func(html string, opts lessonfetch.ExtractOptions) (*lessonfetch.ExtractResult, error)
}

func (e *Extractor) Extract(html string, opts lessonfetch.ExtractOptions) (*lessonfetch.ExtractResult, error) {
	return e.ExtractFn(html, opts)
}
