// Package hierarchy decides, after any artifact creation, whether the
// surrounding Initiative/Milestone/Issue tree is structurally complete and
// what must happen next. It accumulates a BatchContext across repeated
// wizard invocations within one process run and supports rolling back a
// whole batch.
package hierarchy

import "github.com/kodebase-io/kodebase/internal/types"

// BatchContext is the transaction-scoped state of one multi-artifact
// creation session. It is threaded explicitly through each wizard
// invocation, never held in a package-level singleton, so independent
// batches cannot interfere. It lives in memory only; a crash mid-batch loses the
// rollback list (the artifact files themselves survive on disk).
type BatchContext struct {
	// RootID and RootType identify the artifact the batch started from.
	RootID   string
	RootType types.ArtifactType

	// CreatedArtifacts lists every artifact ID created in this batch, in
	// creation order.
	CreatedArtifacts []string

	// CreatedPaths lists the file path of every artifact created in this
	// batch; this is the rollback list.
	CreatedPaths []string

	// IncompleteMilestones lists milestone IDs still missing at least one
	// issue, in child-listing order. The first entry is always the next
	// required target.
	IncompleteMilestones []string
}

// NewBatchContext starts a batch rooted at the given artifact.
func NewBatchContext(rootID string, rootType types.ArtifactType) *BatchContext {
	return &BatchContext{RootID: rootID, RootType: rootType}
}

// Record appends a created artifact and its file path to the batch.
func (b *BatchContext) Record(id, path string) {
	b.CreatedArtifacts = append(b.CreatedArtifacts, id)
	if path != "" {
		b.CreatedPaths = append(b.CreatedPaths, path)
	}
}

// SatisfyMilestone removes a milestone from the incomplete list, typically
// because an issue was just created under it.
func (b *BatchContext) SatisfyMilestone(id string) {
	kept := b.IncompleteMilestones[:0]
	for _, m := range b.IncompleteMilestones {
		if m != id {
			kept = append(kept, m)
		}
	}
	b.IncompleteMilestones = kept
}

// AddIncompleteMilestone appends a milestone needing its first issue,
// keeping the list free of duplicates.
func (b *BatchContext) AddIncompleteMilestone(id string) {
	for _, m := range b.IncompleteMilestones {
		if m == id {
			return
		}
	}
	b.IncompleteMilestones = append(b.IncompleteMilestones, id)
}

// Clear empties the batch after completion or rollback.
func (b *BatchContext) Clear() {
	b.CreatedArtifacts = nil
	b.CreatedPaths = nil
	b.IncompleteMilestones = nil
}
