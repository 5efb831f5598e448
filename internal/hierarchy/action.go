package hierarchy

import "fmt"

// ActionKind tags a NextStepAction.
type ActionKind string

const (
	ActionFinish       ActionKind = "finish"
	ActionAddMilestone ActionKind = "add_milestone"
	ActionAddIssue     ActionKind = "add_issue"
)

// NextStepAction is one thing the user can (or must) do after a creation.
// Required actions always precede finish; optional actions may sit alongside
// it.
type NextStepAction struct {
	Kind     ActionKind
	ParentID string // target parent for add_milestone / add_issue
	Required bool
}

// Label returns the menu text for the action.
func (a NextStepAction) Label() string {
	switch a.Kind {
	case ActionFinish:
		return "Finish"
	case ActionAddMilestone:
		if a.Required {
			return fmt.Sprintf("Add first milestone to %s (required)", a.ParentID)
		}
		return fmt.Sprintf("Add another milestone to %s", a.ParentID)
	case ActionAddIssue:
		if a.Required {
			return fmt.Sprintf("Add first issue to %s (required)", a.ParentID)
		}
		return fmt.Sprintf("Add another issue to %s", a.ParentID)
	}
	return string(a.Kind)
}

// ValidationResult is the outcome of one hierarchy validation pass.
type ValidationResult struct {
	// Valid is true when the tree around the created artifact satisfies
	// hierarchy completeness: every initiative has a milestone, every
	// milestone an issue. Valid=false is a normal state, not an error.
	Valid   bool
	Message string

	// Actions is ordered: the single required action (if any) first.
	Actions []NextStepAction

	// Batch is the updated batch context.
	Batch *BatchContext
}

// RequiredAction returns the required action, or nil when the tree is
// complete.
func (r *ValidationResult) RequiredAction() *NextStepAction {
	for i := range r.Actions {
		if r.Actions[i].Required {
			return &r.Actions[i]
		}
	}
	return nil
}
