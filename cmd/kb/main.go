package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kodebase-io/kodebase/internal/aienv"
	"github.com/kodebase-io/kodebase/internal/artifact"
	"github.com/kodebase-io/kodebase/internal/config"
)

var (
	workspaceFlag string
	actorFlag     string
	aiEnvFlag     string

	cfg   *config.Config
	store artifact.Store
	env   aienv.Environment

	// Signal-aware context for graceful cancellation
	rootCtx    context.Context
	rootCancel context.CancelFunc
)

var rootCmd = &cobra.Command{
	Use:   "kb",
	Short: "kb - AI-assisted project artifact tracker",
	Long: `Hierarchical project tracking built for AI-assisted workflows.
Initiatives contain milestones, milestones contain issues; kb drives an AI
assistant to write each artifact and validates the tree as it grows.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("kb version %s (%s)\n", Version, Build)
			return
		}
		_ = cmd.Help() // Help() always returns nil for cobra commands
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupSignalContext()
		if !commandNeedsWorkspace(cmd) {
			return
		}
		openWorkspace()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if rootCancel != nil {
			rootCancel()
		}
	},
}

// commandNeedsWorkspace reports whether cmd requires an initialized
// .kodebase workspace. init creates one, version does not touch it.
func commandNeedsWorkspace(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "init", "help", "completion":
		return false
	}
	return true
}

func setupSignalContext() {
	rootCtx, rootCancel = context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		rootCancel()
	}()
}

// openWorkspace discovers the workspace root, loads configuration, opens
// the artifact store, and resolves the AI environment. Fatal on failure:
// every workspace command depends on all four.
func openWorkspace() {
	start := workspaceFlag
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			FatalError("%v", err)
		}
		start = wd
	}

	root, err := config.FindRoot(start)
	if err != nil {
		FatalErrorWithHint(err.Error(), "Run 'kb init' in your project root to create a workspace")
	}

	cfg, err = config.Load(root)
	if err != nil {
		FatalError("%v", err)
	}
	if actorFlag != "" {
		cfg.Actor = actorFlag
	}

	store, err = artifact.NewFileStore(cfg.ArtifactsDir())
	if err != nil {
		FatalError("%v", err)
	}

	configured := cfg.AIEnvironment
	if aiEnvFlag != "" {
		configured = aiEnvFlag
	}
	env = aienv.Detect(configured)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace directory (default: walk up from cwd)")
	rootCmd.PersistentFlags().StringVar(&actorFlag, "actor", "", "Actor recorded as created_by (default: from config or $USER)")
	rootCmd.PersistentFlags().StringVar(&aiEnvFlag, "ai-env", "", "AI environment: ide or web (default: auto-detect)")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
