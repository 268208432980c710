package lessonfetch

// LanguageDetector identifies the natural language of a text.
type LanguageDetector interface {
	// Detect returns the ISO 639-1 code of the text's language.
	// ok is false when no language could be determined with
	// reasonable confidence.
	Detect(text string) (code string, ok bool)
}
