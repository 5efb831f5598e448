package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kodebase-io/kodebase/internal/config"
	"github.com/kodebase-io/kodebase/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a kodebase workspace in the current directory",
	Long: `Create the .kodebase workspace directory, the artifact tree, and a
starter config file. Safe to run in an existing workspace; nothing is
overwritten.`,
	Run: func(cmd *cobra.Command, args []string) {
		runInit()
	},
}

const starterConfig = `# kodebase workspace configuration
#
# ai:
#   environment: ide   # or "web"; leave unset to auto-detect
# actor: your-name
# assignee: default-assignee
`

func runInit() {
	wd, err := os.Getwd()
	if err != nil {
		FatalError("%v", err)
	}

	wsDir := filepath.Join(wd, config.WorkspaceDirName)
	artifactsDir := filepath.Join(wsDir, config.ArtifactsDirName)
	if err := os.MkdirAll(artifactsDir, 0o755); err != nil {
		FatalError("creating workspace: %v", err)
	}

	cfgPath := filepath.Join(wsDir, config.ConfigFileName)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := os.WriteFile(cfgPath, []byte(starterConfig), 0o644); err != nil {
			WarnError("failed to write %s: %v", config.ConfigFileName, err)
		}
	}

	color.Green("✓ Workspace initialized at %s", wsDir)
	fmt.Println(ui.RenderMuted(ui.IconInfo + " Run 'kb create' to create your first initiative."))
}

func init() {
	rootCmd.AddCommand(initCmd)
}
