package goquery_test

import (
	"testing"

	"github.com/lessonfetch/lessonfetch"
	"github.com/lessonfetch/lessonfetch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("explicit selectors bypass scoring", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article><p>` + words(40) + `</p></article>
<div class="reading">Hoy leemos un cuento corto.</div>
</body></html>`

		cfg := lessonfetch.DefaultExtractConfig()
		cfg.MinWords = 3

		e := goquery.NewExtractor(cfg)
		result, err := e.Extract(html, lessonfetch.ExtractOptions{Selectors: []string{".reading"}})
		require.NoError(t, err)

		assert.Equal(t, "Hoy leemos un cuento corto.", result.Text)
		assert.Equal(t, []string{".reading"}, result.MatchedSelectors)
		assert.Empty(t, result.Container)
	})

	t.Run("selector miss falls back to the heuristic", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article><p>` + words(40) + `</p></article>
</body></html>`

		cfg := lessonfetch.DefaultExtractConfig()
		cfg.MinWords = 3

		e := goquery.NewExtractor(cfg)
		result, err := e.Extract(html, lessonfetch.ExtractOptions{Selectors: []string{".gone"}})
		require.NoError(t, err)

		assert.Equal(t, "article", result.Container)
		assert.Empty(t, result.MatchedSelectors)
		assert.Equal(t, words(40), result.Text)
	})

	t.Run("stripping runs before selector extraction", func(t *testing.T) {
		t.Parallel()

		// .menu only exists inside <nav>, which stripping removes.
		html := `<html><body>
<nav><div class="menu">Home News Contact</div></nav>
<article><p>` + words(40) + `</p></article>
</body></html>`

		cfg := lessonfetch.DefaultExtractConfig()
		cfg.MinWords = 3

		e := goquery.NewExtractor(cfg)
		result, err := e.Extract(html, lessonfetch.ExtractOptions{Selectors: []string{".menu"}})
		require.NoError(t, err)

		assert.Equal(t, "article", result.Container)
		assert.NotContains(t, result.Text, "Home")
	})

	t.Run("selector text below the floor is insufficient content", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="reading">muy corto</div></body></html>`

		e := goquery.NewExtractor(lessonfetch.DefaultExtractConfig())
		_, err := e.Extract(html, lessonfetch.ExtractOptions{Selectors: []string{".reading"}})

		assert.Equal(t, lessonfetch.ETOOSHORT, lessonfetch.ErrorCode(err))
	})

	t.Run("options can lower the word floor per call", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article><p>` + words(15) + `</p></article></body></html>`

		e := goquery.NewExtractor(lessonfetch.DefaultExtractConfig())

		_, err := e.Extract(html, lessonfetch.ExtractOptions{})
		assert.Equal(t, lessonfetch.ETOOSHORT, lessonfetch.ErrorCode(err))

		result, err := e.Extract(html, lessonfetch.ExtractOptions{MinWords: 10})
		require.NoError(t, err)
		assert.Equal(t, 15, result.Words)
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(lessonfetch.DefaultExtractConfig())
		_, err := e.Extract("", lessonfetch.ExtractOptions{})

		assert.Equal(t, lessonfetch.EINVALID, lessonfetch.ErrorCode(err))
	})
}
