package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/lessonfetch/lessonfetch"
	"github.com/lessonfetch/lessonfetch/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements lessonfetch.Extractor at compile time.
var _ lessonfetch.Extractor = (*trafilatura.Extractor)(nil)

// lowFloorConfig keeps the short fixtures in this file above the word floor.
func lowFloorConfig() lessonfetch.ExtractConfig {
	cfg := lessonfetch.DefaultExtractConfig()
	cfg.MinWords = 3
	return cfg
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Noticias del día - El Diario</title>
<meta property="og:title" content="Noticias del día">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>Noticias del día</h1>
<p>Este es el contenido principal de la página de noticias.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor(lowFloorConfig())
		result, err := ext.Extract(html, lessonfetch.ExtractOptions{})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts main content as plain text", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/">Inicio</a><a href="/noticias">Noticias</a></nav>
<article>
<h1>Una historia</h1>
<p>Este párrafo contiene el texto real que queremos leer en la lección.</p>
<p>Y este es el segundo párrafo de la historia.</p>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2024</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor(lowFloorConfig())
		result, err := ext.Extract(html, lessonfetch.ExtractOptions{})

		require.NoError(t, err)
		assert.Contains(t, result.Text, "texto real que queremos leer")
		assert.Contains(t, result.Text, "segundo párrafo")
		assert.Contains(t, result.ContentHTML, "texto real que queremos leer")
		assert.Equal(t, lessonfetch.WordCount(result.Text), result.Words)
	})

	t.Run("removes navigation boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Inicio</a></li>
<li><a href="/sobre">Sobre nosotros</a></li>
<li><a href="/archivo">Archivo</a></li>
</ul>
</nav>
<main>
<h1>Contenido principal</h1>
<p>Este párrafo contiene el contenido que de verdad queremos.</p>
</main>
</body>
</html>`

		ext := trafilatura.NewExtractor(lowFloorConfig())
		result, err := ext.Extract(html, lessonfetch.ExtractOptions{})

		require.NoError(t, err)
		assert.Contains(t, result.Text, "de verdad queremos")
		assert.NotContains(t, result.Text, "Sobre nosotros")
	})

	t.Run("removes footer boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<h1>Título del artículo</h1>
<p>Cuerpo del artículo con contenido sustantivo para los lectores.</p>
</article>
<footer>
<p>Copyright 2024 Example Corp</p>
<nav>Privacy | Terms | Contact</nav>
</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor(lowFloorConfig())
		result, err := ext.Extract(html, lessonfetch.ExtractOptions{})

		require.NoError(t, err)
		assert.Contains(t, result.Text, "contenido sustantivo")
		assert.NotContains(t, result.Text, "Copyright 2024 Example Corp")
	})

	t.Run("enforces word floor", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article><p>Demasiado corto para una lección.</p></article></body></html>`

		ext := trafilatura.NewExtractor(lessonfetch.DefaultExtractConfig())
		_, err := ext.Extract(html, lessonfetch.ExtractOptions{})

		require.Error(t, err)
		assert.Equal(t, lessonfetch.ETOOSHORT, lessonfetch.ErrorCode(err))
	})

	t.Run("accepts article above word floor", func(t *testing.T) {
		t.Parallel()

		para := "<p>" + strings.TrimSpace(strings.Repeat("palabra ", 80)) + "</p>"
		html := `<!DOCTYPE html>
<html>
<head><title>Artículo largo</title></head>
<body><article><h1>Artículo largo</h1>` + para + para + `</article></body>
</html>`

		ext := trafilatura.NewExtractor(lessonfetch.DefaultExtractConfig())
		result, err := ext.Extract(html, lessonfetch.ExtractOptions{})

		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Words, 160)
	})

	t.Run("per-call min words override", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article><p>Corto pero aceptable para este sitio en particular hoy.</p></article></body></html>`

		ext := trafilatura.NewExtractor(lessonfetch.DefaultExtractConfig())
		result, err := ext.Extract(html, lessonfetch.ExtractOptions{MinWords: 5})

		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Words, 5)
	})

	t.Run("rejects explicit selectors", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article><p>Contenido de prueba para el test.</p></article></body></html>`

		ext := trafilatura.NewExtractor(lowFloorConfig())
		_, err := ext.Extract(html, lessonfetch.ExtractOptions{Selectors: []string{".reading"}})

		require.Error(t, err)
		assert.Equal(t, lessonfetch.EINVALID, lessonfetch.ErrorCode(err))
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor(lowFloorConfig())
		_, err := ext.Extract("", lessonfetch.ExtractOptions{})

		require.Error(t, err)
		assert.Equal(t, lessonfetch.EINVALID, lessonfetch.ErrorCode(err))
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Contenido simple de una sola línea para extraer.</p></body></html>`

		ext := trafilatura.NewExtractor(lowFloorConfig())
		result, err := ext.Extract(html, lessonfetch.ExtractOptions{})

		require.NoError(t, err)
		assert.Contains(t, result.Text, "Contenido simple")
	})
}
