package wizard

import "github.com/kodebase-io/kodebase/internal/aienv"

// StepID identifies one wizard step.
type StepID string

const (
	StepTypeParent  StepID = "type-parent-selection"
	StepObjective   StepID = "objective-input"
	StepPrompt      StepID = "ai-prompt-generation"
	StepWatch       StepID = "ai-completion-wait"  // IDE path
	StepManualInput StepID = "ai-response-input"   // web path
	StepPreview     StepID = "preview-confirmation"
)

// The two step orderings are fixed at session start by the detected AI
// environment and never change mid-session. The only difference is whether
// completion is detected by watching the scaffold file or confirmed
// manually after a paste.
var (
	ideSteps = []StepID{
		StepTypeParent,
		StepObjective,
		StepPrompt,
		StepWatch,
		StepPreview,
	}
	webSteps = []StepID{
		StepTypeParent,
		StepObjective,
		StepPrompt,
		StepManualInput,
		StepPreview,
	}
)

// StepsFor returns the immutable step list for an environment.
func StepsFor(env aienv.Environment) []StepID {
	if env == aienv.IDE {
		return ideSteps
	}
	return webSteps
}

// title returns the heading shown for a step.
func (s StepID) title() string {
	switch s {
	case StepTypeParent:
		return "Artifact type & parent"
	case StepObjective:
		return "Objective"
	case StepPrompt:
		return "AI prompt"
	case StepWatch:
		return "Waiting for AI completion"
	case StepManualInput:
		return "Paste AI response"
	case StepPreview:
		return "Preview & confirm"
	}
	return string(s)
}

// ownsFreeText reports whether the step captures free-form typing. The
// global "b" back shortcut is suppressed on these steps so literal b
// keystrokes reach the input.
func (s StepID) ownsFreeText() bool {
	return s == StepObjective
}
