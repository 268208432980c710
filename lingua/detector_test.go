package lingua_test

import (
	"testing"

	"github.com/lessonfetch/lessonfetch/lingua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	det := lingua.NewDetector()

	t.Run("detects spanish", func(t *testing.T) {
		t.Parallel()

		code, ok := det.Detect("El perro corre por el parque todas las mañanas y luego vuelve a casa para desayunar con su familia.")

		require.True(t, ok)
		assert.Equal(t, "es", code)
	})

	t.Run("detects english", func(t *testing.T) {
		t.Parallel()

		code, ok := det.Detect("The committee published its annual report on Thursday, describing a year of steady progress.")

		require.True(t, ok)
		assert.Equal(t, "en", code)
	})

	t.Run("detects german", func(t *testing.T) {
		t.Parallel()

		code, ok := det.Detect("Die Kinder spielen im Garten, während die Großeltern auf der Terrasse Kaffee trinken.")

		require.True(t, ok)
		assert.Equal(t, "de", code)
	})

	t.Run("empty text is not classified", func(t *testing.T) {
		t.Parallel()

		_, ok := det.Detect("")

		assert.False(t, ok)
	})

	t.Run("whitespace only is not classified", func(t *testing.T) {
		t.Parallel()

		_, ok := det.Detect("   \n\t  ")

		assert.False(t, ok)
	})
}
