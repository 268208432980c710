package lessonfetch

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var (
	spaceRunRE   = regexp.MustCompile(`[ \t]+`)
	newlineRunRE = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes extracted text: carriage returns are dropped,
// runs of spaces and tabs collapse to a single space, and runs of three
// or more newlines collapse to a blank line. The result is trimmed.
func CleanText(raw string) string {
	text := strings.ReplaceAll(raw, "\r", "")
	text = spaceRunRE.ReplaceAllString(text, " ")
	text = newlineRunRE.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// WordCount counts whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// HashContent computes xxHash of content and returns a hex string.
// Used to detect unchanged pages across daily imports.
func HashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}
