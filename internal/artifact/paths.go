package artifact

import (
	"fmt"
	"path/filepath"

	"github.com/kodebase-io/kodebase/internal/types"
)

// Artifact file layout under <root>/.kodebase/artifacts:
//
//	<ID>.<slug>/<ID>.yml                       initiatives and milestones
//	<ParentID>.<slug>/<FullID>.<slug>.yml      issues, inside the parent
//	                                           milestone's directory
//
// Initiatives and milestones each own a directory named after their ID and
// slug; issues are files inside their parent milestone's directory.

// DirName returns the directory name owned by an initiative or milestone.
func DirName(id, slug string) string {
	return id + "." + slug
}

// FileName returns the YAML file name for an artifact.
func FileName(id, slug string, typ types.ArtifactType) string {
	if typ == types.TypeIssue {
		return id + "." + slug + ".yml"
	}
	return id + ".yml"
}

// GlobForChildren returns the glob pattern (relative to the artifacts root)
// matching any artifact file directly under parentID. Used by the completion
// watcher's legacy mode when no scaffold path exists yet. An empty parentID
// matches new top-level initiative files.
func GlobForChildren(artifactsDir, parentID string) (string, error) {
	if parentID == "" {
		return globForRoots(artifactsDir), nil
	}
	parentType, err := types.TypeForID(parentID)
	if err != nil {
		return "", err
	}
	switch parentType {
	case types.TypeInitiative:
		// Milestone dirs live next to the initiative dir.
		return filepath.Join(artifactsDir, parentID+".*", parentID+".*.yml"), nil
	case types.TypeMilestone:
		// Issue files live inside the milestone dir.
		return filepath.Join(artifactsDir, parentID+".*", parentID+".*.*.yml"), nil
	}
	return "", fmt.Errorf("artifact %s cannot have children", parentID)
}

// globForRoots matches new top-level initiative files.
func globForRoots(artifactsDir string) string {
	return filepath.Join(artifactsDir, "*", "*.yml")
}
