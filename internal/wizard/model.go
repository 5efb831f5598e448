// Package wizard implements the interactive multi-step artifact creation
// flow as a Bubbletea model.
//
// The step order is fixed at session start from the detected AI environment:
// IDE sessions route through the file-watching completion step, web sessions
// through manual paste confirmation. Escape cancels at any point; b goes
// back except on steps that own free-text input.
package wizard

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kodebase-io/kodebase/internal/aienv"
	"github.com/kodebase-io/kodebase/internal/artifact"
	"github.com/kodebase-io/kodebase/internal/hierarchy"
	"github.com/kodebase-io/kodebase/internal/types"
	"github.com/kodebase-io/kodebase/internal/watcher"
)

// Options configures one wizard invocation.
type Options struct {
	Store       artifact.Store
	Environment aienv.Environment
	Actor       string
	Assignee    string

	// Type pre-fills the artifact type (direct or batch mode); the wizard
	// then starts at the objective step. ParentID accompanies it for
	// milestones and issues.
	Type     types.ArtifactType
	ParentID string

	// PreallocatedID is an ID reserved by the authoritative allocator. The
	// wizard's own next-ID computation is only a fallback.
	PreallocatedID string

	// Batch is the active batch creation context, nil for a fresh session.
	Batch *hierarchy.BatchContext

	// WatchTimeout and WatchDebounce override the completion watcher
	// durations; zero means the watcher defaults.
	WatchTimeout  time.Duration
	WatchDebounce time.Duration

	// OnComplete is invoked once when the wizard finishes successfully.
	OnComplete func(Completion)
}

// selection phase within the type-parent step.
type parentPhase int

const (
	phaseType parentPhase = iota
	phaseLoadingParents
	phaseParent
	phaseNoParents
)

// watchFailure describes why the completion wait stopped without a result.
type watchFailure struct {
	timedOut bool
	problems []string
}

// Model is the Bubbletea model for the creation wizard.
type Model struct {
	state State
	opts  Options

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	// Type & parent selection
	phase        parentPhase
	typeCursor   int
	parents      []*types.Artifact
	parentCursor int

	// Objective input
	objective textarea.Model

	// Prompt generation
	generating    bool
	promptReady   bool
	clipboardNote string

	// Completion wait
	watching    bool
	failure     *watchFailure
	watchCancel context.CancelFunc

	// Manual confirmation
	scanning bool
	scanErr  string

	// seq invalidates in-flight async work on every transition.
	seq int

	width  int
	height int
	err    string
}

var typeChoices = []types.ArtifactType{
	types.TypeInitiative,
	types.TypeMilestone,
	types.TypeIssue,
}

// New creates a wizard model. When opts.Type is set the type/parent step is
// skipped and the session starts at the objective step.
func New(opts Options) *Model {
	ta := textarea.New()
	ta.Placeholder = "What should this artifact achieve?"
	ta.SetHeight(3)
	ta.SetWidth(70)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		opts:      opts,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		objective: ta,
		state: State{
			Steps:        StepsFor(opts.Environment),
			Environment:  opts.Environment,
			ArtifactType: opts.Type,
			ParentID:     opts.ParentID,
			Errors:       make(map[string]string),
			Batch:        opts.Batch,
		},
	}
	if opts.Type != "" {
		m.state.StepIndex = m.indexOf(StepObjective)
	}
	return m
}

// State exposes the final session state after the program exits.
func (m *Model) State() *State {
	return &m.state
}

func (m *Model) indexOf(step StepID) int {
	for i, s := range m.state.Steps {
		if s == step {
			return i
		}
	}
	return 0
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.enterStep())
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.watching || m.scanning || m.generating || m.phase == phaseLoadingParents {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case parentsLoadedMsg:
		return m.onParentsLoaded(msg)

	case promptReadyMsg:
		return m.onPromptReady(msg)

	case watchDoneMsg:
		return m.onWatchDone(msg)

	case scanDoneMsg:
		return m.onScanDone(msg)

	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Escape always cancels, tearing down any in-flight watch first.
	if key == "esc" || key == "ctrl+c" {
		return m.cancel()
	}

	// Global back, suppressed while a step owns free-text input.
	if (key == "b" || key == "B") && !m.state.Current().ownsFreeText() {
		return m.goBack()
	}

	switch m.state.Current() {
	case StepTypeParent:
		return m.keyTypeParent(key)
	case StepObjective:
		return m.keyObjective(msg)
	case StepPrompt:
		if key == "enter" && m.promptReady {
			return m.advance()
		}
	case StepWatch:
		return m.keyWatch(key)
	case StepManualInput:
		if key == "enter" && !m.scanning {
			m.scanning = true
			m.scanErr = ""
			return m, tea.Batch(m.spinner.Tick, m.scanCmd(m.seq))
		}
	case StepPreview:
		if key == "enter" || key == "y" {
			return m.advance()
		}
	}
	return m, nil
}

func (m *Model) keyTypeParent(key string) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseType:
		switch key {
		case "up", "k":
			if m.typeCursor > 0 {
				m.typeCursor--
			}
		case "down", "j":
			if m.typeCursor < len(typeChoices)-1 {
				m.typeCursor++
			}
		case "enter":
			m.state.ArtifactType = typeChoices[m.typeCursor]
			if m.state.ArtifactType == types.TypeInitiative {
				// Initiatives have no parent: advance immediately.
				return m.advance()
			}
			m.phase = phaseLoadingParents
			return m, tea.Batch(m.spinner.Tick, m.loadParentsCmd(m.seq))
		}
	case phaseParent:
		switch key {
		case "up", "k":
			if m.parentCursor > 0 {
				m.parentCursor--
			}
		case "down", "j":
			if m.parentCursor < len(m.parents)-1 {
				m.parentCursor++
			}
		case "enter":
			m.state.ParentID = m.parents[m.parentCursor].ID()
			return m.advance()
		}
	case phaseNoParents:
		// Terminal state: only Escape (cancel) applies.
	}
	return m, nil
}

func (m *Model) keyObjective(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		text := strings.TrimSpace(m.objective.Value())
		if text == "" {
			m.state.Errors["objective"] = "objective must not be empty"
			return m, nil
		}
		delete(m.state.Errors, "objective")
		if text != m.state.Objective && m.promptReady {
			// A changed objective invalidates the generated prompt and any
			// scaffold written for it.
			m.promptReady = false
			if m.state.Path != "" {
				_ = os.Remove(m.state.Path)
			}
			m.state.Path = ""
			m.state.AllocatedID = ""
		}
		m.state.Objective = text
		return m.advance()
	}
	var cmd tea.Cmd
	m.objective, cmd = m.objective.Update(msg)
	return m, cmd
}

func (m *Model) keyWatch(key string) (tea.Model, tea.Cmd) {
	if m.failure == nil {
		return m, nil // wait is in flight; only esc/b apply
	}
	switch {
	case key == "r" && m.failure.timedOut:
		// Retry the wait.
		return m, m.startWatch()
	case key == "r" && !m.failure.timedOut:
		// Regenerate: drop the invalid file and redo prompt generation.
		m.failure = nil
		m.promptReady = false
		m.seq++
		m.state.StepIndex = m.indexOf(StepPrompt)
		return m, m.regenerateCmd(m.seq)
	case key == "m" && m.failure.timedOut:
		// Fall back to manual confirmation for this artifact.
		m.failure = nil
		steps := make([]StepID, len(m.state.Steps))
		copy(steps, m.state.Steps)
		steps[m.state.StepIndex] = StepManualInput
		m.state.Steps = steps
		m.seq++
		return m, nil
	}
	return m, nil
}

// advance moves to the next step; past the last step the wizard completes.
func (m *Model) advance() (tea.Model, tea.Cmd) {
	m.teardownWatch()
	m.seq++
	m.state.StepIndex++
	if m.state.StepIndex >= len(m.state.Steps) {
		m.state.IsComplete = true
		if m.opts.OnComplete != nil {
			m.opts.OnComplete(Completion{
				Artifact: m.state.Artifact,
				Type:     m.state.ArtifactType,
				ParentID: m.state.ParentID,
				Slug:     m.state.Slug,
				ID:       m.state.AllocatedID,
				Path:     m.state.Path,
			})
		}
		return m, tea.Quit
	}
	return m, m.enterStep()
}

// goBack moves to the previous step; no-op at the first step.
func (m *Model) goBack() (tea.Model, tea.Cmd) {
	if m.state.StepIndex == 0 {
		return m, nil
	}
	m.teardownWatch()
	m.seq++
	m.failure = nil
	m.scanErr = ""
	m.state.StepIndex--
	return m, m.enterStep()
}

// cancel terminates the session immediately after watcher teardown.
func (m *Model) cancel() (tea.Model, tea.Cmd) {
	m.teardownWatch()
	m.state.IsCancelled = true
	return m, tea.Quit
}

// enterStep runs a step's entry action after a transition.
func (m *Model) enterStep() tea.Cmd {
	switch m.state.Current() {
	case StepTypeParent:
		m.phase = phaseType
	case StepObjective:
		m.objective.Focus()
		return textarea.Blink
	case StepPrompt:
		if m.promptReady {
			return nil // re-entry via back keeps the generated prompt
		}
		m.generating = true
		return tea.Batch(m.spinner.Tick, m.generateCmd(m.seq))
	case StepWatch:
		return m.startWatch()
	}
	return nil
}

// startWatch arms the completion watcher with a fresh cancellation token.
func (m *Model) startWatch() tea.Cmd {
	m.teardownWatch()
	m.failure = nil
	m.watching = true
	ctx, cancel := context.WithCancel(context.Background())
	m.watchCancel = cancel
	return tea.Batch(m.spinner.Tick, m.watchCmd(ctx, m.seq))
}

// teardownWatch cancels any in-flight completion watch. The watcher closes
// its fsnotify handle and timers before returning; the stale watchDoneMsg
// is discarded by its seq check.
func (m *Model) teardownWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watching = false
}

func (m *Model) onParentsLoaded(msg parentsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq || m.state.Current() != StepTypeParent {
		return m, nil
	}
	if msg.err != nil {
		m.phase = phaseType
		m.err = msg.err.Error()
		return m, nil
	}
	if len(msg.parents) == 0 {
		m.phase = phaseNoParents
		return m, nil
	}
	m.parents = msg.parents
	m.parentCursor = 0
	m.phase = phaseParent
	return m, nil
}

func (m *Model) onPromptReady(msg promptReadyMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq || m.state.Current() != StepPrompt {
		return m, nil
	}
	m.generating = false
	if msg.err != nil {
		m.err = msg.err.Error()
		return m, nil
	}
	m.err = ""
	m.state.AllocatedID = msg.id
	m.state.Slug = msg.slug
	m.state.Path = msg.path
	m.state.Prompt = msg.prompt
	m.promptReady = true
	if msg.clipboardErr != nil {
		// Best-effort: note it and move on.
		m.clipboardNote = "clipboard unavailable, copy the prompt manually"
	} else {
		m.clipboardNote = "prompt copied to clipboard"
	}
	return m, nil
}

func (m *Model) onWatchDone(msg watchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq || m.state.Current() != StepWatch {
		return m, nil // stale completion from an abandoned step
	}
	m.watching = false
	m.watchCancel = nil

	switch {
	case msg.err == nil:
		m.state.Artifact = msg.res.Artifact
		m.state.Path = msg.res.Path
		m.state.AllocatedID = msg.res.ID
		return m.advance()
	case isTimeout(msg.err):
		m.failure = &watchFailure{timedOut: true}
	case isValidationFailure(msg.err):
		m.failure = &watchFailure{problems: validationProblems(msg.err)}
	case isCancellation(msg.err):
		// Teardown already handled; nothing to apply.
	default:
		m.failure = &watchFailure{timedOut: true}
		m.err = msg.err.Error()
	}
	return m, nil
}

func (m *Model) onScanDone(msg scanDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq || m.state.Current() != StepManualInput {
		return m, nil
	}
	m.scanning = false
	if msg.err != nil {
		m.scanErr = msg.err.Error()
		return m, nil
	}
	m.state.Artifact = msg.artifact
	m.state.Path = msg.path
	m.state.AllocatedID = msg.artifact.ID()
	return m.advance()
}

func isTimeout(err error) bool {
	return errors.Is(err, watcher.ErrTimeout)
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}

func isValidationFailure(err error) bool {
	var verr *watcher.ValidationError
	return errors.As(err, &verr)
}

func validationProblems(err error) []string {
	var verr *watcher.ValidationError
	if errors.As(err, &verr) {
		return verr.Problems
	}
	return []string{err.Error()}
}
