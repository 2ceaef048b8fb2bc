package knowledge

import (
	"regexp"
	"strings"
)

// LoadedDocument is one reference document read from the knowledge directory.
type LoadedDocument struct {
	Filename string
	Text     string
}

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// NormalizeText strips carriage returns, collapses runs of three or more
// newlines into a single blank line and trims surrounding whitespace.
func NormalizeText(raw string) string {
	text := strings.ReplaceAll(raw, "\r", "")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
