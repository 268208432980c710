package readability_test

import (
	"strings"
	"testing"

	"github.com/lessonfetch/lessonfetch"
	"github.com/lessonfetch/lessonfetch/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lowFloorConfig keeps the short fixtures in this file above the word floor.
func lowFloorConfig() lessonfetch.ExtractConfig {
	cfg := lessonfetch.DefaultExtractConfig()
	cfg.MinWords = 3
	return cfg
}

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor(lowFloorConfig())
	_, err := ext.Extract("", lessonfetch.ExtractOptions{})

	require.Error(t, err)
	assert.Equal(t, lessonfetch.EINVALID, lessonfetch.ErrorCode(err))
}

func TestExtractor_RejectsSelectors(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><article><p>Content here for the test.</p></article></body>
</html>`

	ext := readability.NewExtractor(lowFloorConfig())
	_, err := ext.Extract(html, lessonfetch.ExtractOptions{Selectors: []string{".reading"}})

	require.Error(t, err)
	assert.Equal(t, lessonfetch.EINVALID, lessonfetch.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body><article><p>Content of the page body.</p></article></body>
</html>`

	ext := readability.NewExtractor(lowFloorConfig())
	result, err := ext.Extract(html, lessonfetch.ExtractOptions{})

	require.NoError(t, err)
	assert.Equal(t, "Page Title", result.Title)
}

func TestExtractor_RemovesNavigation(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article><p>This is the main article content that should be preserved in the output.</p></article>
</body>
</html>`

	ext := readability.NewExtractor(lowFloorConfig())
	result, err := ext.Extract(html, lessonfetch.ExtractOptions{})

	require.NoError(t, err)
	assert.NotContains(t, result.Text, "Home Nav Link")
	assert.NotContains(t, result.Text, "About Nav Link")
}

func TestExtractor_RemovesFooter(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article><p>This is the main article content that should be preserved in the output.</p></article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

	ext := readability.NewExtractor(lowFloorConfig())
	result, err := ext.Extract(html, lessonfetch.ExtractOptions{})

	require.NoError(t, err)
	assert.NotContains(t, result.Text, "Footer copyright text")
}

func TestExtractor_KeepsMainArticleContent(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/home">Home</a></nav>
<article><p>This is the important article paragraph text that must be kept.</p></article>
<footer><p>Footer</p></footer>
</body>
</html>`

	ext := readability.NewExtractor(lowFloorConfig())
	result, err := ext.Extract(html, lessonfetch.ExtractOptions{})

	require.NoError(t, err)
	assert.Contains(t, result.Text, "important article paragraph text")
	assert.Contains(t, result.ContentHTML, "important article paragraph text")
}

func TestExtractor_CleansExtractedText(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<p>First   paragraph	with messy    spacing.</p>
<p>Second paragraph of the article.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor(lowFloorConfig())
	result, err := ext.Extract(html, lessonfetch.ExtractOptions{})

	require.NoError(t, err)
	assert.Contains(t, result.Text, "First paragraph with messy spacing.")
	assert.NotContains(t, result.Text, "\n\n\n")
	assert.Equal(t, lessonfetch.WordCount(result.Text), result.Words)
}

func TestExtractor_EnforcesWordFloor(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><article><p>Too short to be a lesson.</p></article></body>
</html>`

	ext := readability.NewExtractor(lessonfetch.DefaultExtractConfig())
	_, err := ext.Extract(html, lessonfetch.ExtractOptions{})

	require.Error(t, err)
	assert.Equal(t, lessonfetch.ETOOSHORT, lessonfetch.ErrorCode(err))
}

func TestExtractor_AcceptsLongArticle(t *testing.T) {
	t.Parallel()

	para := "<p>" + strings.TrimSpace(strings.Repeat("palabra ", 80)) + "</p>"
	html := `<!DOCTYPE html>
<html>
<head><title>Long Article</title></head>
<body><article>` + para + para + `</article></body>
</html>`

	ext := readability.NewExtractor(lessonfetch.DefaultExtractConfig())
	result, err := ext.Extract(html, lessonfetch.ExtractOptions{})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Words, 160)
}

func TestExtractor_PerCallMinWordsOverride(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><article><p>Short but acceptable for this site configuration today.</p></article></body>
</html>`

	ext := readability.NewExtractor(lessonfetch.DefaultExtractConfig())

	_, err := ext.Extract(html, lessonfetch.ExtractOptions{})
	require.Error(t, err)
	assert.Equal(t, lessonfetch.ETOOSHORT, lessonfetch.ErrorCode(err))

	result, err := ext.Extract(html, lessonfetch.ExtractOptions{MinWords: 5})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Words, 5)
}
