package ui

import (
	"strconv"
	"strings"
)

// DefaultMaxLines caps how many lines of a prompt or artifact body are shown
// inline before truncation.
const DefaultMaxLines = 20

// TruncateLines truncates text to maxLines, appending a muted marker with
// the hidden line count. Text at or under the limit is returned unchanged.
func TruncateLines(text string, maxLines int) string {
	if text == "" || maxLines <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= maxLines {
		return text
	}
	hidden := len(lines) - maxLines
	var b strings.Builder
	b.WriteString(strings.Join(lines[:maxLines], "\n"))
	b.WriteString("\n")
	b.WriteString(RenderMuted("… (" + strconv.Itoa(hidden) + " more lines)"))
	return b.String()
}

// Indent prefixes every line of text with the given prefix.
func Indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
