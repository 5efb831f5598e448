package hierarchy

import (
	"context"
	"fmt"

	"github.com/kodebase-io/kodebase/internal/artifact"
	"github.com/kodebase-io/kodebase/internal/types"
)

// Engine runs hierarchy validation against the artifact store.
type Engine struct {
	store artifact.Store
}

// NewEngine returns an engine backed by the given store.
func NewEngine(store artifact.Store) *Engine {
	return &Engine{store: store}
}

// Validate inspects the tree around a just-created artifact and decides what
// must happen next. An incomplete tree is a normal Valid=false result; the
// only errors are store failures and programmer misuse (e.g. asking for the
// parent of a root initiative).
//
// batch may be nil (standalone creation). The returned result always carries
// a non-nil batch context; pass it back in on the next invocation of the
// same session.
func (e *Engine) Validate(ctx context.Context, created *types.Artifact, path string, batch *BatchContext) (*ValidationResult, error) {
	switch created.Type() {
	case types.TypeIssue:
		return e.validateIssue(created, path, batch)
	case types.TypeMilestone:
		return e.validateMilestone(ctx, created, path, batch)
	case types.TypeInitiative:
		return e.validateInitiative(ctx, created, path, batch)
	}
	return nil, fmt.Errorf("cannot validate artifact %s: unknown type %q", created.ID(), created.Type())
}

// validateIssue: an issue is always individually valid. Creating it
// satisfies its parent milestone; any other milestones still missing issues
// keep the batch open with a required action targeting the first of them.
func (e *Engine) validateIssue(created *types.Artifact, path string, batch *BatchContext) (*ValidationResult, error) {
	id := created.ID()
	parent, err := types.ParentID(id)
	if err != nil {
		return nil, fmt.Errorf("issue %s: %w", id, err)
	}

	if batch == nil {
		// Standalone issue: synthesize a minimal context rooted at its
		// parent milestone.
		batch = NewBatchContext(parent, types.TypeMilestone)
	}
	batch.Record(id, path)
	batch.SatisfyMilestone(parent)

	if len(batch.IncompleteMilestones) > 0 {
		next := batch.IncompleteMilestones[0]
		return &ValidationResult{
			Valid:   false,
			Message: fmt.Sprintf("Issue %s created. Milestone %s still needs its first issue.", id, next),
			Actions: []NextStepAction{
				{Kind: ActionAddIssue, ParentID: next, Required: true},
				{Kind: ActionAddIssue, ParentID: parent},
			},
			Batch: batch,
		}, nil
	}

	return &ValidationResult{
		Valid:   true,
		Message: fmt.Sprintf("Issue %s created. Hierarchy is complete.", id),
		Actions: []NextStepAction{
			{Kind: ActionFinish},
			{Kind: ActionAddIssue, ParentID: parent},
		},
		Batch: batch,
	}, nil
}

// validateMilestone: a milestone needs at least one issue. With none, the
// batch stays open with a required add-first-issue action.
func (e *Engine) validateMilestone(ctx context.Context, created *types.Artifact, path string, batch *BatchContext) (*ValidationResult, error) {
	id := created.ID()
	if batch == nil {
		batch = NewBatchContext(id, types.TypeMilestone)
	}
	batch.Record(id, path)

	issues, err := e.store.Children(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing issues under %s: %w", id, err)
	}

	if len(issues) == 0 {
		batch.AddIncompleteMilestone(id)
		return &ValidationResult{
			Valid:   false,
			Message: fmt.Sprintf("Milestone %s created. It needs its first issue.", id),
			Actions: []NextStepAction{
				{Kind: ActionAddIssue, ParentID: id, Required: true},
			},
			Batch: batch,
		}, nil
	}

	return &ValidationResult{
		Valid:   true,
		Message: fmt.Sprintf("Milestone %s created with %d issue(s).", id, len(issues)),
		Actions: []NextStepAction{
			{Kind: ActionFinish},
			{Kind: ActionAddIssue, ParentID: id},
		},
		Batch: batch,
	}, nil
}

// validateInitiative: an initiative needs at least one milestone, and every
// milestone under it needs at least one issue. When several milestones are
// incomplete the first in child-listing order is the single required target.
func (e *Engine) validateInitiative(ctx context.Context, created *types.Artifact, path string, batch *BatchContext) (*ValidationResult, error) {
	id := created.ID()
	if batch == nil {
		batch = NewBatchContext(id, types.TypeInitiative)
	}
	batch.Record(id, path)

	milestones, err := e.store.Children(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing milestones under %s: %w", id, err)
	}

	if len(milestones) == 0 {
		return &ValidationResult{
			Valid:   false,
			Message: fmt.Sprintf("Initiative %s created. It needs its first milestone.", id),
			Actions: []NextStepAction{
				{Kind: ActionAddMilestone, ParentID: id, Required: true},
			},
			Batch: batch,
		}, nil
	}

	for _, m := range milestones {
		issues, err := e.store.Children(ctx, m.ID())
		if err != nil {
			return nil, fmt.Errorf("listing issues under %s: %w", m.ID(), err)
		}
		if len(issues) == 0 {
			batch.AddIncompleteMilestone(m.ID())
		} else {
			batch.SatisfyMilestone(m.ID())
		}
	}

	if len(batch.IncompleteMilestones) > 0 {
		next := batch.IncompleteMilestones[0]
		return &ValidationResult{
			Valid:   false,
			Message: fmt.Sprintf("Initiative %s has milestones without issues. %s needs its first issue.", id, next),
			Actions: []NextStepAction{
				{Kind: ActionAddIssue, ParentID: next, Required: true},
				{Kind: ActionAddMilestone, ParentID: id},
			},
			Batch: batch,
		}, nil
	}

	return &ValidationResult{
		Valid:   true,
		Message: fmt.Sprintf("Initiative %s is structurally complete.", id),
		Actions: []NextStepAction{
			{Kind: ActionFinish},
			{Kind: ActionAddMilestone, ParentID: id},
		},
		Batch: batch,
	}, nil
}
