// Package types defines the core artifact types shared across kodebase.
package types

import "time"

// SchemaVersion is the current artifact schema version written into new artifacts.
const SchemaVersion = "1.0"

// ArtifactType categorizes an artifact by its depth in the hierarchy.
type ArtifactType string

const (
	TypeInitiative ArtifactType = "initiative"
	TypeMilestone  ArtifactType = "milestone"
	TypeIssue      ArtifactType = "issue"
)

// IsValid returns true if the artifact type is one of the known types.
func (t ArtifactType) IsValid() bool {
	switch t {
	case TypeInitiative, TypeMilestone, TypeIssue:
		return true
	}
	return false
}

// Label returns the human-facing display name for the type.
func (t ArtifactType) Label() string {
	switch t {
	case TypeInitiative:
		return "Initiative"
	case TypeMilestone:
		return "Milestone"
	case TypeIssue:
		return "Issue"
	}
	return string(t)
}

// ChildType returns the artifact type one level below t, or "" for issues.
func (t ArtifactType) ChildType() ArtifactType {
	switch t {
	case TypeInitiative:
		return TypeMilestone
	case TypeMilestone:
		return TypeIssue
	}
	return ""
}

// Lifecycle event names, in the order they normally occur.
const (
	EventCreated   = "created"
	EventStarted   = "started"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)

// LifecycleEvent records one state change on an artifact.
type LifecycleEvent struct {
	Event string    `yaml:"event"`
	Actor string    `yaml:"actor,omitempty"`
	At    time.Time `yaml:"at"`
}

// Relationships links an artifact to its parent and its blocking peers.
type Relationships struct {
	Parent    string   `yaml:"parent,omitempty"`
	Blocks    []string `yaml:"blocks,omitempty"`
	BlockedBy []string `yaml:"blocked_by,omitempty"`
}

// Metadata is the structural header every artifact carries.
type Metadata struct {
	ID            string        `yaml:"id"`
	Title         string        `yaml:"title"`
	ArtifactType  ArtifactType  `yaml:"artifact_type"`
	SchemaVersion string        `yaml:"schema_version"`
	Priority      string        `yaml:"priority,omitempty"`
	Estimation    string        `yaml:"estimation,omitempty"` // absent for initiatives
	CreatedBy     string        `yaml:"created_by,omitempty"`
	Assignee      string        `yaml:"assignee,omitempty"`
	Relationships Relationships `yaml:"relationships"`
}

// Artifact is one tracked unit of work: an initiative, milestone, or issue.
// Initiatives carry vision/scope/success criteria; milestones and issues
// carry a summary plus optional description.
type Artifact struct {
	Metadata Metadata `yaml:"metadata"`

	Vision          string `yaml:"vision,omitempty"`
	Scope           string `yaml:"scope,omitempty"`
	SuccessCriteria string `yaml:"success_criteria,omitempty"`

	Summary     string `yaml:"summary,omitempty"`
	Description string `yaml:"description,omitempty"`

	Lifecycle []LifecycleEvent `yaml:"lifecycle,omitempty"`
}

// ID returns the artifact's identifier.
func (a *Artifact) ID() string {
	return a.Metadata.ID
}

// Type returns the artifact's type.
func (a *Artifact) Type() ArtifactType {
	return a.Metadata.ArtifactType
}

// CurrentState returns the name of the most recent lifecycle event,
// or EventCreated when no events are recorded yet.
func (a *Artifact) CurrentState() string {
	if len(a.Lifecycle) == 0 {
		return EventCreated
	}
	return a.Lifecycle[len(a.Lifecycle)-1].Event
}

// IsClosed reports whether the artifact's most recent lifecycle event
// makes it ineligible as a parent for new children.
func (a *Artifact) IsClosed() bool {
	switch a.CurrentState() {
	case EventCompleted, EventCancelled:
		return true
	}
	return false
}
