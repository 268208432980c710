package mock

import "github.com/lessonfetch/lessonfetch"

var _ lessonfetch.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of lessonfetch.LanguageDetector.
type LanguageDetector struct {
	DetectFn func(text string) (string, bool)
}

func (d *LanguageDetector) Detect(text string) (string, bool) {
	return d.DetectFn(text)
}
