package document

import (
	"regexp"
	"strings"
)

var (
	newlineRunPattern = regexp.MustCompile(`\n{3,}`)
	bulletGlyphs      = []string{"●", "▪", "‣", "∙", "·", "⁃"}
)

// CleanText normalizes extracted document text: CRLF to LF, non-breaking
// spaces to spaces, bullet glyphs to a canonical "•", trailing whitespace
// trimmed, and at most two consecutive newlines. Interior space and tab
// runs are preserved: the structure detector reads column and table layout
// out of them.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, " ", " ")

	for _, glyph := range bulletGlyphs {
		text = strings.ReplaceAll(text, glyph, "•")
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")
	text = newlineRunPattern.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
