package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kodebase-io/kodebase/internal/types"
	"github.com/kodebase-io/kodebase/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the artifact tree",
	Run: func(cmd *cobra.Command, args []string) {
		runList()
	},
}

func runList() {
	artifacts, err := store.List(rootCtx)
	if err != nil {
		FatalError("%v", err)
	}
	if len(artifacts) == 0 {
		fmt.Println(ui.RenderMuted("No artifacts yet. Run 'kb create' to start."))
		return
	}

	fmt.Println(ui.RenderCategory("artifacts"))
	fmt.Println(ui.RenderSeparator())
	for _, a := range artifacts {
		line := fmt.Sprintf("%s %s  %s", stateMarker(a), ui.RenderBold(a.ID()), a.Metadata.Title)
		if a.Metadata.Assignee != "" {
			line += "  " + ui.RenderMuted("@"+a.Metadata.Assignee)
		}
		fmt.Println(ui.Indent(line, strings.Repeat("  ", types.Depth(a.ID())-1)))
	}
}

func stateMarker(a *types.Artifact) string {
	switch a.CurrentState() {
	case types.EventCompleted:
		return ui.RenderPass(ui.IconPass)
	case types.EventCancelled:
		return ui.RenderMuted(ui.IconFail)
	case types.EventStarted:
		return ui.RenderAccent(ui.IconProgress)
	}
	return ui.RenderMuted(ui.IconPending)
}

func init() {
	rootCmd.AddCommand(listCmd)
}
