package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	// Version is the current version of kb (overridden by ldflags at build time)
	Version = "0.3.0"
	// Build can be set via ldflags at compile time
	Build = "dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if commit := resolveCommit(); commit != "" {
			fmt.Printf("kb version %s (%s: %s)\n", Version, Build, commit)
			return
		}
		fmt.Printf("kb version %s (%s)\n", Version, Build)
	},
}

// resolveCommit extracts the vcs revision stamped into the binary, if any.
func resolveCommit() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 8 {
			return s.Value[:8]
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
