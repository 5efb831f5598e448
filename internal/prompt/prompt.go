// Package prompt builds the natural-language instruction payloads handed to
// an AI agent (IDE mode) or pasted into a web chat (web mode), and offers a
// best-effort clipboard write.
package prompt

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/kodebase-io/kodebase/internal/types"
)

// Request carries everything the generator needs to build a prompt.
type Request struct {
	Type      types.ArtifactType
	ID        string
	ParentID  string
	Objective string
	Path      string // scaffold file path, IDE mode only
	CreatedBy string
	Assignee  string
}

// metadataFields enumerates the required metadata fields in the order they
// appear in the prompt. Estimation is omitted for initiatives.
func metadataFields(typ types.ArtifactType) []string {
	fields := []string{
		"title",
		"artifact_type",
		"schema_version",
		"priority",
	}
	if typ != types.TypeInitiative {
		fields = append(fields, "estimation")
	}
	fields = append(fields,
		"created_by",
		"assignee",
		"relationships (parent, blocks, blocked_by)",
	)
	return fields
}

// contentFields enumerates the narrative fields per artifact type.
func contentFields(typ types.ArtifactType) []string {
	if typ == types.TypeInitiative {
		return []string{"vision", "scope", "success_criteria"}
	}
	return []string{"summary", "description"}
}

// ForIDE builds the prompt for an agent with direct file access: fill in the
// scaffold at the given path.
func ForIDE(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Complete the %s artifact scaffold at this exact path:\n\n", req.Type)
	fmt.Fprintf(&b, "    %s\n\n", req.Path)
	fmt.Fprintf(&b, "Artifact ID: %s\n", req.ID)
	if req.ParentID != "" {
		fmt.Fprintf(&b, "Parent: %s\n", req.ParentID)
	}
	fmt.Fprintf(&b, "Objective: %s\n\n", req.Objective)

	b.WriteString("Keep the existing metadata block and fill in every required field:\n")
	for _, f := range metadataFields(req.Type) {
		fmt.Fprintf(&b, "  - %s\n", f)
	}
	b.WriteString("\nReplace the TODO placeholders in these content fields with real content:\n")
	for _, f := range contentFields(req.Type) {
		fmt.Fprintf(&b, "  - %s\n", f)
	}
	b.WriteString("\nKeep the initial lifecycle event. Do not change the artifact ID,\n")
	b.WriteString("type, or file location. Write valid YAML; no surrounding prose.\n")
	return b.String()
}

// ForWeb builds the prompt for a browser chat: the user pastes the model's
// YAML back into the store by hand, so the prompt embeds a schema skeleton.
func ForWeb(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a complete %s artifact as a single YAML document.\n\n", req.Type)
	fmt.Fprintf(&b, "Artifact ID: %s\n", req.ID)
	if req.ParentID != "" {
		fmt.Fprintf(&b, "Parent: %s\n", req.ParentID)
	}
	fmt.Fprintf(&b, "Objective: %s\n\n", req.Objective)
	b.WriteString("Respond with only the YAML block, starting with `metadata:`, in this shape:\n\n")
	b.WriteString(skeleton(req))
	b.WriteString("\nFill every field; replace the angle-bracket placeholders. Include an\n")
	b.WriteString("initial lifecycle event with event: created.\n")
	return b.String()
}

// skeleton renders the YAML schema skeleton embedded in web prompts.
func skeleton(req Request) string {
	var b strings.Builder
	b.WriteString("metadata:\n")
	fmt.Fprintf(&b, "  id: %s\n", req.ID)
	b.WriteString("  title: <title>\n")
	fmt.Fprintf(&b, "  artifact_type: %s\n", req.Type)
	fmt.Fprintf(&b, "  schema_version: %q\n", types.SchemaVersion)
	b.WriteString("  priority: <P0-P4>\n")
	if req.Type != types.TypeInitiative {
		b.WriteString("  estimation: <XS|S|M|L|XL>\n")
	}
	fmt.Fprintf(&b, "  created_by: %s\n", orPlaceholder(req.CreatedBy, "<author>"))
	fmt.Fprintf(&b, "  assignee: %s\n", orPlaceholder(req.Assignee, "<assignee>"))
	b.WriteString("  relationships:\n")
	if req.ParentID != "" {
		fmt.Fprintf(&b, "    parent: %s\n", req.ParentID)
	}
	b.WriteString("    blocks: []\n")
	b.WriteString("    blocked_by: []\n")
	for _, f := range contentFields(req.Type) {
		fmt.Fprintf(&b, "%s: >\n  <%s>\n", f, strings.ReplaceAll(f, "_", " "))
	}
	b.WriteString("lifecycle:\n")
	b.WriteString("  - event: created\n")
	fmt.Fprintf(&b, "    actor: %s\n", orPlaceholder(req.CreatedBy, "<author>"))
	b.WriteString("    at: <timestamp>\n")
	return b.String()
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// CopyToClipboard writes text to the system clipboard. Failure is reported
// but never blocks the wizard; the prompt is always shown on screen too.
func CopyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	return nil
}
