package normalize

import (
	"regexp"
	"strings"
)

var reLineSpace = regexp.MustCompile(`\s+`)

// CleanText collapses runs of whitespace within each line, preserving line
// breaks and trimming line edges.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(reLineSpace.ReplaceAllString(lines[i], " "))
	}
	return strings.Join(lines, "\n")
}

// Deduplicate repairs doubled character streams ("RRaaww" -> "Raw") seen
// when a corrupted content stream paints every glyph twice. A run of two
// identical characters collapses to one.
func Deduplicate(text string) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		out = append(out, runes[i])
		if i+1 < len(runes) && runes[i+1] == runes[i] {
			i++
		}
	}
	return string(out)
}
