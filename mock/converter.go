package mock

import "github.com/lessonfetch/lessonfetch"

var _ lessonfetch.Converter = (*Converter)(nil)

// Converter is a mock implementation of lessonfetch.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
