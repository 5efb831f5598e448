package artifact

import (
	"fmt"

	"github.com/kodebase-io/kodebase/internal/types"
)

// Validate checks an artifact's structural shape and returns every problem
// found, not just the first. An empty result means the artifact is
// structurally valid; content quality is not judged here.
func Validate(a *types.Artifact) []string {
	var errs []string

	id := a.Metadata.ID
	if id == "" {
		errs = append(errs, "metadata.id is required")
	} else if !types.IsArtifactID(id) {
		errs = append(errs, fmt.Sprintf("metadata.id %q is not a valid artifact id", id))
	}

	if a.Metadata.Title == "" {
		errs = append(errs, "metadata.title is required")
	}
	if a.Metadata.SchemaVersion == "" {
		errs = append(errs, "metadata.schema_version is required")
	}

	typ := a.Metadata.ArtifactType
	if !typ.IsValid() {
		errs = append(errs, fmt.Sprintf("metadata.artifact_type %q is not one of initiative, milestone, issue", typ))
	}

	if id != "" && types.IsArtifactID(id) && typ.IsValid() {
		derived, err := types.TypeForID(id)
		if err == nil && derived != typ {
			errs = append(errs, fmt.Sprintf("metadata.artifact_type %q does not match depth of id %s (expected %s)", typ, id, derived))
		}

		if derived == types.TypeInitiative {
			if a.Metadata.Relationships.Parent != "" {
				errs = append(errs, "initiatives must not declare a parent relationship")
			}
			if a.Metadata.Estimation != "" {
				errs = append(errs, "initiatives do not carry an estimation")
			}
		} else {
			parent, perr := types.ParentID(id)
			if perr == nil && a.Metadata.Relationships.Parent != parent {
				errs = append(errs, fmt.Sprintf("relationships.parent %q does not match id %s (expected %s)", a.Metadata.Relationships.Parent, id, parent))
			}
		}
	}

	for i, ev := range a.Lifecycle {
		switch ev.Event {
		case types.EventCreated, types.EventStarted, types.EventCompleted, types.EventCancelled:
		default:
			errs = append(errs, fmt.Sprintf("lifecycle[%d].event %q is not a known event", i, ev.Event))
		}
	}

	return errs
}
