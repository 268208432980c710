package lessonfetch

// Extraction defaults. These are the tuning constants the heuristic was
// shipped with; callers override them through ExtractConfig.
const (
	// DefaultMinWords is the minimum word count for extracted text.
	// Shorter matches almost always mean the wrong container was picked.
	DefaultMinWords = 120

	// DefaultParagraphWeight is the score weight of one paragraph
	// relative to one word. Paragraph density beats raw word count.
	DefaultParagraphWeight = 4

	// DefaultMaxSelectorDepth is how many ancestor levels selector
	// synthesis will climb before giving up on finding an id anchor.
	DefaultMaxSelectorDepth = 5
)

// DefaultStripTags returns the tags removed by boilerplate stripping.
// The set is a fixed configuration constant: tags that never carry
// readable lesson content.
func DefaultStripTags() []string {
	return []string{
		"script", "style", "noscript", "iframe", "embed", "object",
		"form", "header", "footer", "nav", "aside",
	}
}

// ExtractConfig carries the extraction tunables. A zero value is not
// usable; obtain one from DefaultExtractConfig and adjust fields. Configs
// are passed by value into every extraction entry point, so concurrent
// calls with different tunings never interfere.
type ExtractConfig struct {
	// StripTags is the boilerplate exclusion tag set.
	StripTags []string

	// ParagraphWeight is k in score = words + k*paragraphs.
	ParagraphWeight int

	// MinWords is the word floor below which extraction fails
	// with ETOOSHORT.
	MinWords int

	// MaxSelectorDepth caps the ancestor walk during selector synthesis.
	MaxSelectorDepth int
}

// DefaultExtractConfig returns the shipped extraction configuration.
func DefaultExtractConfig() ExtractConfig {
	return ExtractConfig{
		StripTags:        DefaultStripTags(),
		ParagraphWeight:  DefaultParagraphWeight,
		MinWords:         DefaultMinWords,
		MaxSelectorDepth: DefaultMaxSelectorDepth,
	}
}

// ExtractResult holds the readable content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title, when the engine could determine one.
	Title string

	// Text is the extracted plain text, normalized by CleanText.
	Text string

	// ContentHTML is the winning container's HTML, when the engine
	// preserves it. Used for the markdown archive.
	ContentHTML string

	// MatchedSelectors lists the explicit selectors that matched at
	// least one node, in the order they were tried. Empty on the
	// heuristic path and on a selector miss.
	MatchedSelectors []string

	// Container names the heuristic winner's tag ("article", "main",
	// "section"), or "body" when no candidate qualified and the whole
	// document text was used. Empty on the selector path.
	Container string

	// Words is the word count of Text.
	Words int
}

// NoMatch reports whether a selector-mode extraction matched nothing.
// A no-match result tells the caller to retry via the heuristic path.
func (r *ExtractResult) NoMatch() bool {
	return len(r.MatchedSelectors) == 0 && r.Text == ""
}

// ExtractOptions carries per-call extraction inputs.
type ExtractOptions struct {
	// Selectors enables explicit-selector mode when non-empty. The
	// selectors are tried in order before any heuristic runs. Engines
	// that cannot evaluate CSS selectors return EINVALID when set.
	Selectors []string

	// MinWords overrides the engine's word floor when positive.
	MinWords int
}

// Extractor extracts the main readable content from an HTML page.
type Extractor interface {
	// Extract processes raw HTML and returns the readable content.
	// Text below the word floor is an ETOOSHORT error; the pipeline
	// must not persist or upload on that path.
	Extract(html string, opts ExtractOptions) (*ExtractResult, error)
}
