package ui

import (
	"strings"
	"testing"
)

func TestTruncateLines(t *testing.T) {
	text := strings.Repeat("line\n", 9) + "line"

	if got := TruncateLines(text, 20); got != text {
		t.Error("text under the limit should be unchanged")
	}
	got := TruncateLines(text, 4)
	if !strings.Contains(got, "6 more lines") {
		t.Errorf("truncated output missing hidden count: %q", got)
	}
	// Count full lines only; the truncation marker also contains "line".
	if strings.Count(got, "line\n") != 4 {
		t.Errorf("expected 4 visible lines, got %q", got)
	}
}

func TestTruncateLinesEdgeCases(t *testing.T) {
	if got := TruncateLines("", 5); got != "" {
		t.Errorf("empty input should stay empty, got %q", got)
	}
	if got := TruncateLines("abc", 0); got != "abc" {
		t.Errorf("non-positive limit should be a no-op, got %q", got)
	}
}

func TestIndent(t *testing.T) {
	got := Indent("a\nb\n", "  ")
	if got != "  a\n  b" {
		t.Errorf("Indent = %q", got)
	}
}
