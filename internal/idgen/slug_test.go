package idgen

import (
	"strings"
	"testing"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Fix authentication bug", "fix_authentication_bug"},
		{"stop words removed", "Add support for the new parser", "add_support_new_parser"},
		{"punctuation", "Ship v2.0 (beta!)", "ship_v2_0_beta"},
		{"empty", "", "untitled"},
		{"whitespace only", "   ", "untitled"},
		{"all stop words keeps first", "of the", "of"},
		{"numeric start prefixed", "2fa rollout", "n2fa_rollout"},
		{"mixed case", "Improve CLI Startup Time", "improve_cli_startup_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.title); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSlugTruncation(t *testing.T) {
	long := "implement the complete hierarchical validation engine for batch artifact creation sessions"
	got := Slug(long)
	if len(got) > maxSlugLength {
		t.Errorf("slug length %d exceeds max %d: %q", len(got), maxSlugLength, got)
	}
	if strings.HasSuffix(got, "_") || strings.HasPrefix(got, "_") {
		t.Errorf("slug has dangling underscore: %q", got)
	}
}
