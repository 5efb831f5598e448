package types

import "testing"

func TestParentID(t *testing.T) {
	tests := []struct {
		id      string
		want    string
		wantErr bool
	}{
		{"A.1.2", "A.1", false},
		{"A.1", "A", false},
		{"AB.12", "AB", false},
		{"A", "", true},
		{"AB", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := ParentID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParentID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParentID(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestTypeForID(t *testing.T) {
	tests := []struct {
		id   string
		want ArtifactType
	}{
		{"A", TypeInitiative},
		{"AB", TypeInitiative},
		{"A.3", TypeMilestone},
		{"A.3.14", TypeIssue},
	}

	for _, tt := range tests {
		got, err := TypeForID(tt.id)
		if err != nil {
			t.Fatalf("TypeForID(%q) returned error: %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("TypeForID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}

	if _, err := TypeForID("A.1.1.1"); err == nil {
		t.Error("TypeForID accepted a depth-4 id")
	}
}

func TestIsArtifactID(t *testing.T) {
	valid := []string{"A", "Z", "AA", "A.1", "AB.12", "A.1.9"}
	invalid := []string{"", "a", "A.", "A.1.", "1.2", "A.b", "A.1.2.3", "A-1"}

	for _, id := range valid {
		if !IsArtifactID(id) {
			t.Errorf("IsArtifactID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsArtifactID(id) {
			t.Errorf("IsArtifactID(%q) = true, want false", id)
		}
	}
}

func TestCurrentState(t *testing.T) {
	a := &Artifact{}
	if got := a.CurrentState(); got != EventCreated {
		t.Errorf("empty lifecycle state = %q, want %q", got, EventCreated)
	}

	a.Lifecycle = []LifecycleEvent{
		{Event: EventCreated},
		{Event: EventStarted},
		{Event: EventCompleted},
	}
	if got := a.CurrentState(); got != EventCompleted {
		t.Errorf("state = %q, want %q", got, EventCompleted)
	}
	if !a.IsClosed() {
		t.Error("completed artifact should be closed")
	}
}
