package lingua

import (
	"strings"

	"github.com/lessonfetch/lessonfetch"
	"github.com/pemistahl/lingua-go"
)

// Ensure Detector implements lessonfetch.LanguageDetector at compile time.
var _ lessonfetch.LanguageDetector = (*Detector)(nil)

// Detector identifies the language of extracted text using lingua-go.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector creates a Detector covering all languages lingua supports.
// Language models load lazily on first use.
func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build(),
	}
}

// Detect returns the lowercase ISO 639-1 code of the dominant language of
// text. ok is false when the text is too short or ambiguous to classify.
func (d *Detector) Detect(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	lang, exists := d.detector.DetectLanguageOf(text)
	if !exists {
		return "", false
	}

	return strings.ToLower(lang.IsoCode639_1().String()), true
}
