package wizard

import (
	"fmt"
	"strings"

	"github.com/kodebase-io/kodebase/internal/aienv"
	"github.com/kodebase-io/kodebase/internal/types"
	"github.com/kodebase-io/kodebase/internal/ui"
)

// View renders the current step.
func (m *Model) View() string {
	if m.state.IsComplete || m.state.IsCancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")

	switch m.state.Current() {
	case StepTypeParent:
		b.WriteString(m.viewTypeParent())
	case StepObjective:
		b.WriteString(m.viewObjective())
	case StepPrompt:
		b.WriteString(m.viewPrompt())
	case StepWatch:
		b.WriteString(m.viewWatch())
	case StepManualInput:
		b.WriteString(m.viewManualInput())
	case StepPreview:
		b.WriteString(m.viewPreview())
	}

	if m.err != "" {
		b.WriteString("\n" + errorStyle.Render(m.err) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *Model) header() string {
	step := m.state.StepIndex + 1
	total := len(m.state.Steps)
	count := stepCountStyle.Render(fmt.Sprintf("step %d/%d", step, total))
	return titleStyle.Render(m.state.Current().title()) + " " + count + "\n"
}

func (m *Model) viewTypeParent() string {
	var b strings.Builder
	switch m.phase {
	case phaseType:
		b.WriteString(labelStyle.Render("What are you creating?") + "\n\n")
		for i, t := range typeChoices {
			line := "  " + t.Label()
			if i == m.typeCursor {
				line = selectedItemStyle.Render("> " + t.Label())
			} else {
				line = normalItemStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
	case phaseLoadingParents:
		b.WriteString(m.spinner.View() + " loading eligible parents...\n")
	case phaseParent:
		b.WriteString(labelStyle.Render("Select the parent "+string(parentTypeOf(m.state.ArtifactType))) + "\n\n")
		for i, p := range m.parents {
			line := fmt.Sprintf("  %s  %s", p.ID(), p.Metadata.Title)
			if i == m.parentCursor {
				line = selectedItemStyle.Render("> " + strings.TrimLeft(line, " "))
			} else {
				line = normalItemStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
	case phaseNoParents:
		b.WriteString(errorStyle.Render("No open "+string(parentTypeOf(m.state.ArtifactType))+" artifacts exist to attach this to.") + "\n")
		b.WriteString(mutedStyle.Render("Create one first, then come back. Press esc to exit.") + "\n")
	}
	return b.String()
}

func parentTypeOf(t types.ArtifactType) types.ArtifactType {
	switch t {
	case types.TypeIssue:
		return types.TypeMilestone
	case types.TypeMilestone:
		return types.TypeInitiative
	}
	return ""
}

func (m *Model) viewObjective() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Describe the objective") + "\n")
	if m.state.ParentID != "" {
		b.WriteString(mutedStyle.Render("parent: "+m.state.ParentID) + "\n")
	}
	b.WriteString("\n" + m.objective.View() + "\n")
	if errMsg, ok := m.state.Errors["objective"]; ok {
		b.WriteString(errorStyle.Render(errMsg) + "\n")
	}
	b.WriteString(mutedStyle.Render("enter to continue") + "\n")
	return b.String()
}

func (m *Model) viewPrompt() string {
	if m.generating {
		return m.spinner.View() + " generating prompt...\n"
	}
	if !m.promptReady {
		return mutedStyle.Render("prompt generation failed, press b to go back") + "\n"
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render("Prompt for "+m.state.AllocatedID) + "\n\n")
	b.WriteString(promptBoxStyle.Render(ui.TruncateLines(m.state.Prompt, ui.DefaultMaxLines)) + "\n\n")
	if m.clipboardNote != "" {
		b.WriteString(mutedStyle.Render(m.clipboardNote) + "\n")
	}
	if m.state.Environment == aienv.IDE {
		b.WriteString(mutedStyle.Render("Paste the prompt into your IDE assistant, then press enter to start watching for the completed file.") + "\n")
	} else {
		b.WriteString(mutedStyle.Render("Paste the prompt into your web assistant, save its YAML answer into the artifact tree, then press enter.") + "\n")
	}
	return b.String()
}

func (m *Model) viewWatch() string {
	if m.failure == nil {
		var b strings.Builder
		b.WriteString(m.spinner.View() + " waiting for " + m.state.AllocatedID + " to be completed...\n")
		b.WriteString(mutedStyle.Render("watching "+m.state.Path) + "\n")
		return b.String()
	}
	var b strings.Builder
	if m.failure.timedOut {
		b.WriteString(errorStyle.Render("Timed out waiting for the file to be completed.") + "\n")
		b.WriteString(mutedStyle.Render("r to keep waiting, m to confirm manually, esc to cancel") + "\n")
		return b.String()
	}
	b.WriteString(errorStyle.Render("The completed file failed validation:") + "\n")
	for _, p := range m.failure.problems {
		b.WriteString("  " + errorStyle.Render("x") + " " + p + "\n")
	}
	b.WriteString(mutedStyle.Render("r to regenerate the prompt, esc to cancel") + "\n")
	return b.String()
}

func (m *Model) viewManualInput() string {
	if m.scanning {
		return m.spinner.View() + " checking the artifact tree...\n"
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render("Manual confirmation") + "\n")
	b.WriteString(mutedStyle.Render("Save the assistant's YAML response into the artifact tree, then press enter.") + "\n")
	if m.scanErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.scanErr) + "\n")
	}
	return b.String()
}

func (m *Model) viewPreview() string {
	a := m.state.Artifact
	if a == nil {
		return errorStyle.Render("nothing to preview") + "\n"
	}
	var b strings.Builder
	b.WriteString(successStyle.Render("✓ "+a.ID()+" "+a.Metadata.Title) + "\n\n")
	b.WriteString(labelStyle.Render("type") + "      " + string(a.Type()) + "\n")
	if a.Metadata.Relationships.Parent != "" {
		b.WriteString(labelStyle.Render("parent") + "    " + a.Metadata.Relationships.Parent + "\n")
	}
	if a.Metadata.Priority != "" {
		b.WriteString(labelStyle.Render("priority") + "  " + a.Metadata.Priority + "\n")
	}
	if a.Summary != "" {
		b.WriteString("\n" + a.Summary + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render("file: "+m.state.Path) + "\n")
	b.WriteString(mutedStyle.Render("enter to accept, b to go back, esc to cancel") + "\n")
	return b.String()
}
