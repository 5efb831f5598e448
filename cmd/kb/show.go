package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kodebase-io/kodebase/internal/types"
	"github.com/kodebase-io/kodebase/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one artifact",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runShow(args[0])
	},
}

func runShow(id string) {
	if !types.IsArtifactID(id) {
		FatalError("%q is not an artifact ID", id)
	}
	a, err := store.Get(rootCtx, id)
	if err != nil {
		FatalError("%v", err)
	}
	fmt.Print(ui.RenderMarkdown(artifactMarkdown(a)))
}

// artifactMarkdown lays the artifact out as a markdown document for
// terminal rendering.
func artifactMarkdown(a *types.Artifact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s\n\n", a.ID(), a.Metadata.Title)

	fmt.Fprintf(&b, "**Type:** %s  \n", a.Type())
	fmt.Fprintf(&b, "**State:** %s  \n", a.CurrentState())
	if a.Metadata.Priority != "" {
		fmt.Fprintf(&b, "**Priority:** %s  \n", a.Metadata.Priority)
	}
	if a.Metadata.Estimation != "" {
		fmt.Fprintf(&b, "**Estimation:** %s  \n", a.Metadata.Estimation)
	}
	if a.Metadata.Assignee != "" {
		fmt.Fprintf(&b, "**Assignee:** %s  \n", a.Metadata.Assignee)
	}
	if a.Metadata.Relationships.Parent != "" {
		fmt.Fprintf(&b, "**Parent:** %s  \n", a.Metadata.Relationships.Parent)
	}

	if a.Vision != "" {
		fmt.Fprintf(&b, "\n## Vision\n\n%s\n", a.Vision)
	}
	if a.Scope != "" {
		fmt.Fprintf(&b, "\n## Scope\n\n%s\n", a.Scope)
	}
	if a.SuccessCriteria != "" {
		fmt.Fprintf(&b, "\n## Success criteria\n\n%s\n", a.SuccessCriteria)
	}
	if a.Summary != "" {
		fmt.Fprintf(&b, "\n## Summary\n\n%s\n", a.Summary)
	}
	if a.Description != "" {
		fmt.Fprintf(&b, "\n## Description\n\n%s\n", a.Description)
	}

	if len(a.Lifecycle) > 0 {
		b.WriteString("\n## Lifecycle\n\n")
		for _, e := range a.Lifecycle {
			fmt.Fprintf(&b, "- %s by %s at %s\n", e.Event, e.Actor, e.At.Format("2006-01-02 15:04"))
		}
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(showCmd)
}
