package htmltomarkdown_test

import (
	"testing"

	"github.com/lessonfetch/lessonfetch"
	"github.com/lessonfetch/lessonfetch/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements lessonfetch.Converter at compile time.
var _ lessonfetch.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<p>Hola, mundo.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Hola, mundo.")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Título</h1><h2>Subtítulo</h2><h3>Sección</h3>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Título")
		assert.Contains(t, md, "## Subtítulo")
		assert.Contains(t, md, "### Sección")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		html := `<p>Visita <a href="https://example.com">Example</a> para más información.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[Example](https://example.com)")
	})

	t.Run("converts unordered lists", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>Primero</li><li>Segundo</li><li>Tercero</li></ul>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "- Primero")
		assert.Contains(t, md, "- Segundo")
		assert.Contains(t, md, "- Tercero")
	})

	t.Run("converts ordered lists", func(t *testing.T) {
		t.Parallel()

		html := `<ol><li>Primero</li><li>Segundo</li><li>Tercero</li></ol>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "1. Primero")
		assert.Contains(t, md, "2. Segundo")
		assert.Contains(t, md, "3. Tercero")
	})

	t.Run("converts bold and italic", func(t *testing.T) {
		t.Parallel()

		html := `<p><strong>Negrita</strong> y <em>cursiva</em> en el texto.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "**Negrita**")
		assert.Contains(t, md, "*cursiva*")
	})

	t.Run("converts blockquotes", func(t *testing.T) {
		t.Parallel()

		html := `<blockquote><p>Esta es una cita.</p></blockquote>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "> Esta es una cita.")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Palabra</th><th>Traducción</th></tr></thead>
<tbody><tr><td>casa</td><td>house</td></tr><tr><td>perro</td><td>dog</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		// Table cells may have padding for alignment, so check for content
		assert.Contains(t, md, "Palabra")
		assert.Contains(t, md, "casa")
		assert.Contains(t, md, "perro")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, lessonfetch.EINVALID, lessonfetch.ErrorCode(err))
	})

	t.Run("handles complete article page", func(t *testing.T) {
		t.Parallel()

		html := `<article>
<h1>Un viaje por los Andes</h1>
<p>El viaje comenzó una mañana fría de <em>invierno</em>.</p>
<h2>La partida</h2>
<p>Salimos antes del amanecer, con las mochilas llenas.</p>
<blockquote><p>El camino se hace al andar.</p></blockquote>
<h2>Vocabulario</h2>
<ul>
<li>la mochila</li>
<li>el amanecer</li>
</ul>
</article>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Un viaje por los Andes")
		assert.Contains(t, md, "## La partida")
		assert.Contains(t, md, "*invierno*")
		assert.Contains(t, md, "> El camino se hace al andar.")
		assert.Contains(t, md, "- la mochila")
	})
}
