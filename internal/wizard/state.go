package wizard

import (
	"github.com/kodebase-io/kodebase/internal/aienv"
	"github.com/kodebase-io/kodebase/internal/hierarchy"
	"github.com/kodebase-io/kodebase/internal/types"
)

// State is the mutable session record for one wizard invocation. It is
// owned exclusively by the Model and discarded when the wizard completes or
// cancels; only the artifact file and the batch context outlive it.
type State struct {
	Steps     []StepID
	StepIndex int

	Environment  aienv.Environment
	ArtifactType types.ArtifactType
	ParentID     string
	Objective    string

	// AllocatedID is the ID reserved for the artifact being created, and
	// Slug its directory slug.
	AllocatedID string
	Slug        string

	// Prompt is the generated instruction payload.
	Prompt string

	// Artifact and Path hold the completed result once detection or manual
	// confirmation succeeds.
	Artifact *types.Artifact
	Path     string

	// Errors maps field names to in-place error strings.
	Errors map[string]string

	// Batch is the active batch creation context, nil outside a batch.
	Batch *hierarchy.BatchContext

	IsComplete  bool
	IsCancelled bool
}

// Current returns the active step.
func (s *State) Current() StepID {
	if s.StepIndex < 0 || s.StepIndex >= len(s.Steps) {
		return ""
	}
	return s.Steps[s.StepIndex]
}

// Completion is handed to the completion callback when the wizard finishes.
type Completion struct {
	Artifact *types.Artifact
	Type     types.ArtifactType
	ParentID string
	Slug     string
	ID       string
	Path     string
}
