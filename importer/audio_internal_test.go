package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaturalLess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"digit runs compare numerically", "track2.mp3", "track10.mp3", true},
		{"plain string order would disagree", "track10.mp3", "track2.mp3", false},
		{"leading zeros do not change the value", "cap002.mp3", "cap2.mp3", false},
		{"equal names are not less", "a.mp3", "a.mp3", false},
		{"dot sorts before digits", "cap.mp3", "cap1.mp3", true},
		{"case is ignored", "Track1.mp3", "track2.mp3", true},
		{"runs longer than int64 still compare", "f99999999999999999999.mp3", "f100000000000000000000.mp3", true},
		{"mixed segments fall back to bytes", "a1b.mp3", "a1c.mp3", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, naturalLess(tt.a, tt.b))
		})
	}
}
