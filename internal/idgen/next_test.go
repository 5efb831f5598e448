package idgen

import "testing"

func TestNextChildID(t *testing.T) {
	tests := []struct {
		name     string
		parent   string
		existing []string
		want     string
	}{
		{"no children", "A", []string{"A", "B", "B.1"}, "A.1"},
		{"one child", "A", []string{"A", "A.1"}, "A.2"},
		{"gap keeps max", "A", []string{"A.1", "A.3"}, "A.4"},
		{"grandchildren ignored for numbering", "A", []string{"A.2", "A.2.9"}, "A.3"},
		{"nested parent", "A.2", []string{"A.2.1", "A.2.2", "A.3.7"}, "A.2.3"},
		{"double digits", "A", []string{"A.9", "A.10"}, "A.11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextChildID(tt.parent, tt.existing); got != tt.want {
				t.Errorf("NextChildID(%q) = %q, want %q", tt.parent, got, tt.want)
			}
		})
	}
}

func TestNextRootID(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty store", nil, "A"},
		{"single root", []string{"A", "A.1"}, "B"},
		{"several roots", []string{"A", "C", "B"}, "D"},
		{"rollover to double letters", []string{"Z"}, "AA"},
		{"double letter increment", []string{"AA", "AB"}, "AC"},
		{"carry within double letters", []string{"AZ"}, "BA"},
		{"longer code wins", []string{"Z", "AA"}, "AB"},
		{"non-root ids ignored", []string{"A.1", "A.1.2"}, "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextRootID(tt.existing); got != tt.want {
				t.Errorf("NextRootID(%v) = %q, want %q", tt.existing, got, tt.want)
			}
		})
	}
}
