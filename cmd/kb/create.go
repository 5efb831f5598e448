package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kodebase-io/kodebase/internal/artifact"
	"github.com/kodebase-io/kodebase/internal/hierarchy"
	"github.com/kodebase-io/kodebase/internal/idgen"
	"github.com/kodebase-io/kodebase/internal/types"
	"github.com/kodebase-io/kodebase/internal/ui"
	"github.com/kodebase-io/kodebase/internal/wizard"
)

var (
	createType     string
	createParent   string
	createAssignee string
)

var createCmd = &cobra.Command{
	Use:   "create [parent-id | title]",
	Short: "Create an artifact with AI assistance",
	Long: `Create an initiative, milestone, or issue.

With no arguments, an interactive wizard walks through type and parent
selection, generates a prompt for your AI assistant, and waits for the
completed artifact file.

With a single argument that parses as an artifact ID, the wizard starts
pre-filled to create a child of that artifact:

  kb create A.1        # new issue under milestone A.1

Any other arguments are treated as a title for direct creation, which
requires --type and (for milestones and issues) --parent:

  kb create --type issue --parent A.1 "Fix login timeout"

After every creation the hierarchy is validated: initiatives need at least
one milestone and milestones at least one issue, so kb keeps offering the
next required step until the tree is complete.`,
	Run: func(cmd *cobra.Command, args []string) {
		runCreate(args)
	},
}

func runCreate(args []string) {
	switch {
	case len(args) == 0:
		runWizardSession(wizard.Options{}, nil)
	case len(args) == 1 && types.IsArtifactID(args[0]):
		runChildWizard(args[0])
	default:
		runDirectCreate(strings.Join(args, " "))
	}
}

// runChildWizard starts the wizard pre-filled to create a child of the
// given artifact.
func runChildWizard(parentID string) {
	parent := mustOpenParent(parentID)
	childType := parent.Type().ChildType()
	if childType == "" {
		FatalErrorWithHint(
			fmt.Sprintf("issue %s cannot have children", parentID),
			"Issues are leaf artifacts; pass a milestone ID to add an issue or an initiative ID to add a milestone")
	}
	runWizardSession(wizard.Options{
		Type:     childType,
		ParentID: parentID,
	}, nil)
}

// runWizardSession executes one wizard pass and, on success, enters the
// hierarchy validation loop. opts is completed with the ambient workspace
// wiring before it runs.
func runWizardSession(opts wizard.Options, batch *hierarchy.BatchContext) {
	opts.Store = store
	opts.Environment = env
	opts.Actor = cfg.Actor
	opts.Assignee = firstNonEmpty(createAssignee, cfg.DefaultAssignee)
	opts.Batch = batch

	st, err := wizard.Run(opts)
	if err != nil {
		FatalError("%v", err)
	}
	if st.IsCancelled {
		abortSession(batch)
		return
	}
	if st.Artifact == nil {
		FatalError("wizard finished without an artifact")
	}
	runValidationLoop(st.Artifact, st.Path, batch)
}

// runDirectCreate writes an artifact skeleton non-interactively from a
// title, then enters the validation loop. The content fields stay as
// placeholders for a later editing pass.
func runDirectCreate(title string) {
	if createType == "" {
		FatalErrorWithHint("--type is required for direct creation",
			"Pass --type initiative|milestone|issue, or run 'kb create' with no arguments for the wizard")
	}
	typ := types.ArtifactType(createType)
	if !typ.IsValid() {
		FatalError("unknown artifact type %q", createType)
	}
	if typ != types.TypeInitiative && createParent == "" {
		FatalErrorWithHint(fmt.Sprintf("--parent is required when creating a %s", typ),
			"Pass the parent artifact ID, e.g. --parent A.1")
	}
	if typ != types.TypeInitiative {
		mustOpenParent(createParent)
	}

	ids, err := store.ListIDs(rootCtx)
	if err != nil {
		FatalError("%v", err)
	}
	var id string
	if typ == types.TypeInitiative {
		id = idgen.NextRootID(ids)
	} else {
		id = idgen.NextChildID(createParent, ids)
	}

	assignee := firstNonEmpty(createAssignee, cfg.DefaultAssignee)
	a := artifact.NewScaffold(id, typ, title, createParent, cfg.Actor, assignee)

	confirmed := true
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Create %s %s?", typ, id)).
			Description(title).
			Affirmative("Create").
			Negative("Cancel").
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		FatalError("%v", err)
	}
	if !confirmed {
		fmt.Println("Cancelled.")
		return
	}

	path, err := store.WriteScaffold(rootCtx, a)
	if err != nil {
		FatalError("%v", err)
	}
	color.Green("✓ Created %s at %s", id, path)
	runValidationLoop(a, path, nil)
}

// runValidationLoop drives the hierarchy toward completeness after a
// creation. A required action re-enters the wizard automatically; optional
// actions go through a selection menu; finishing or an empty menu ends the
// session.
func runValidationLoop(created *types.Artifact, path string, batch *hierarchy.BatchContext) {
	engine := hierarchy.NewEngine(store)

	for {
		res, err := engine.Validate(rootCtx, created, path, batch)
		if err != nil {
			FatalError("%v", err)
		}
		batch = res.Batch
		fmt.Println(res.Message)

		var action *hierarchy.NextStepAction
		if req := res.RequiredAction(); req != nil {
			fmt.Println(ui.RenderWarn(ui.IconWarn + " " + req.Label()))
			action = req
		} else {
			action = chooseAction(res.Actions, batch)
		}
		if action == nil || action.Kind == hierarchy.ActionFinish {
			return
		}

		st, err := wizard.Run(wizard.Options{
			Store:       store,
			Environment: env,
			Actor:       cfg.Actor,
			Assignee:    firstNonEmpty(createAssignee, cfg.DefaultAssignee),
			Type:        typeForAction(action),
			ParentID:    action.ParentID,
			Batch:       batch,
		})
		if err != nil {
			FatalError("%v", err)
		}
		if st.IsCancelled {
			abortSession(batch)
			return
		}
		if st.Artifact == nil {
			FatalError("wizard finished without an artifact")
		}
		created, path = st.Artifact, st.Path
	}
}

// chooseAction presents the optional next steps. Returns nil when the user
// bails out of the menu.
func chooseAction(actions []hierarchy.NextStepAction, batch *hierarchy.BatchContext) *hierarchy.NextStepAction {
	if len(actions) == 0 {
		return nil
	}
	options := make([]huh.Option[int], len(actions))
	for i, a := range actions {
		options[i] = huh.NewOption(a.Label(), i)
	}

	choice := 0
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("What next?").
			Options(options...).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		// Treat an aborted menu the same as choosing to stop, but offer
		// rollback if the batch created anything.
		abortSession(batch)
		return nil
	}
	return &actions[choice]
}

func typeForAction(a *hierarchy.NextStepAction) types.ArtifactType {
	if a.Kind == hierarchy.ActionAddMilestone {
		return types.TypeMilestone
	}
	return types.TypeIssue
}

// abortSession handles a cancelled wizard or menu mid-batch: the artifacts
// created so far are either kept as-is or rolled back.
func abortSession(batch *hierarchy.BatchContext) {
	if batch == nil || len(batch.CreatedPaths) == 0 {
		fmt.Println("Cancelled.")
		return
	}

	rollback := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Discard the %d artifact(s) created in this session?", len(batch.CreatedPaths))).
			Description("The hierarchy is incomplete: " + strings.Join(batch.IncompleteMilestones, ", ")).
			Affirmative("Discard").
			Negative("Keep").
			Value(&rollback),
	))
	if err := form.Run(); err != nil || !rollback {
		fmt.Println("Keeping created artifacts. Run 'kb create <id>' later to complete the hierarchy.")
		batch.Clear()
		return
	}
	hierarchy.Rollback(batch, WarnError)
	fmt.Println("Rolled back.")
}

// mustOpenParent loads a parent artifact and verifies it can accept new
// children, exiting with the blocking reason otherwise.
func mustOpenParent(id string) *types.Artifact {
	parent, err := store.Get(rootCtx, id)
	if err != nil {
		FatalErrorWithHint(fmt.Sprintf("parent artifact %s not found", id),
			"Run 'kb create' with no arguments to pick a parent interactively")
	}
	if parent.IsClosed() {
		FatalError("parent artifact %s is %s and cannot accept new children", id, parent.CurrentState())
	}
	return parent
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	createCmd.Flags().StringVarP(&createType, "type", "t", "", "Artifact type for direct creation: initiative, milestone, or issue")
	createCmd.Flags().StringVarP(&createParent, "parent", "p", "", "Parent artifact ID for direct creation")
	createCmd.Flags().StringVarP(&createAssignee, "assignee", "a", "", "Assignee recorded on new artifacts")
	rootCmd.AddCommand(createCmd)
}
