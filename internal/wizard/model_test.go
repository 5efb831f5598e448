package wizard

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodebase-io/kodebase/internal/aienv"
	"github.com/kodebase-io/kodebase/internal/artifact"
	"github.com/kodebase-io/kodebase/internal/types"
)

func newTestStore(t *testing.T) *artifact.FileStore {
	t.Helper()
	store, err := artifact.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Store == nil {
		opts.Store = newTestStore(t)
	}
	if opts.Environment == "" {
		opts.Environment = aienv.IDE
	}
	return New(opts)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStepsForEnvironment(t *testing.T) {
	ide := StepsFor(aienv.IDE)
	web := StepsFor(aienv.Web)

	assert.Contains(t, ide, StepWatch)
	assert.NotContains(t, ide, StepManualInput)
	assert.Contains(t, web, StepManualInput)
	assert.NotContains(t, web, StepWatch)

	// Everything around the completion step is shared.
	assert.Equal(t, ide[0], web[0])
	assert.Equal(t, ide[len(ide)-1], web[len(web)-1])
}

func TestPrefilledTypeStartsAtObjective(t *testing.T) {
	m := newTestModel(t, Options{
		Type:     types.TypeIssue,
		ParentID: "A.1",
	})
	assert.Equal(t, StepObjective, m.State().Current())
}

func TestBackIsNoOpAtFirstStep(t *testing.T) {
	m := newTestModel(t, Options{})
	require.Equal(t, 0, m.State().StepIndex)

	updated, _ := m.Update(keyMsg("b"))
	assert.Equal(t, 0, updated.(*Model).State().StepIndex)
	assert.False(t, updated.(*Model).State().IsCancelled)
}

func TestBackSuppressedDuringObjectiveInput(t *testing.T) {
	m := newTestModel(t, Options{Type: types.TypeInitiative})
	require.Equal(t, StepObjective, m.State().Current())

	// b must go to the textarea, not navigate.
	updated, _ := m.Update(keyMsg("b"))
	got := updated.(*Model)
	assert.Equal(t, StepObjective, got.State().Current())
	assert.Contains(t, got.objective.Value(), "b")
}

func TestEmptyObjectiveRejected(t *testing.T) {
	m := newTestModel(t, Options{Type: types.TypeInitiative})

	updated, _ := m.Update(keyMsg("enter"))
	got := updated.(*Model)
	assert.Equal(t, StepObjective, got.State().Current())
	assert.NotEmpty(t, got.State().Errors["objective"])
}

func TestEscapeCancelsAnywhere(t *testing.T) {
	m := newTestModel(t, Options{})

	updated, cmd := m.Update(keyMsg("esc"))
	assert.True(t, updated.(*Model).State().IsCancelled)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestStaleWatchResultDiscarded(t *testing.T) {
	m := newTestModel(t, Options{Type: types.TypeIssue, ParentID: "A.1"})
	m.state.StepIndex = m.indexOf(StepWatch)
	m.seq = 5

	updated, _ := m.Update(watchDoneMsg{seq: 4})
	got := updated.(*Model)
	assert.Nil(t, got.State().Artifact)
	assert.Equal(t, StepWatch, got.State().Current())
}

func TestStaleScanResultDiscarded(t *testing.T) {
	m := newTestModel(t, Options{
		Environment: aienv.Web,
		Type:        types.TypeIssue,
		ParentID:    "A.1",
	})
	m.state.StepIndex = m.indexOf(StepManualInput)
	m.seq = 3
	m.scanning = true

	a := &types.Artifact{}
	a.Metadata.ID = "A.1.1"
	updated, _ := m.Update(scanDoneMsg{seq: 2, artifact: a, path: "x"})
	got := updated.(*Model)
	assert.Nil(t, got.State().Artifact)
	assert.True(t, got.scanning, "a stale scan must not clear the in-flight flag")
}

func TestNoEligibleParentsIsTerminal(t *testing.T) {
	m := newTestModel(t, Options{})
	m.state.ArtifactType = types.TypeIssue
	m.phase = phaseLoadingParents

	updated, _ := m.Update(parentsLoadedMsg{seq: m.seq, parents: nil})
	got := updated.(*Model)
	assert.Equal(t, phaseNoParents, got.phase)

	// Navigation keys do nothing; only escape applies.
	updated, _ = got.Update(keyMsg("enter"))
	assert.Equal(t, phaseNoParents, updated.(*Model).phase)
	updated, _ = updated.(*Model).Update(keyMsg("esc"))
	assert.True(t, updated.(*Model).State().IsCancelled)
}

func TestInitiativeSkipsParentSelection(t *testing.T) {
	m := newTestModel(t, Options{})
	require.Equal(t, StepTypeParent, m.State().Current())

	// Cursor starts on initiative.
	updated, _ := m.Update(keyMsg("enter"))
	got := updated.(*Model)
	assert.Equal(t, StepObjective, got.State().Current())
	assert.Equal(t, types.TypeInitiative, got.State().ArtifactType)
	assert.Empty(t, got.State().ParentID)
}

func TestTimeoutOffersRetryAndManual(t *testing.T) {
	m := newTestModel(t, Options{Type: types.TypeIssue, ParentID: "A.1"})
	m.state.StepIndex = m.indexOf(StepWatch)
	m.failure = &watchFailure{timedOut: true}

	updated, _ := m.Update(keyMsg("m"))
	got := updated.(*Model)
	assert.Equal(t, StepManualInput, got.State().Current())
	// The shared step lists must never be mutated.
	assert.Equal(t, StepWatch, ideSteps[3])
}

func TestValidationFailureRoutesBackToPrompt(t *testing.T) {
	m := newTestModel(t, Options{Type: types.TypeIssue, ParentID: "A.1"})
	m.state.StepIndex = m.indexOf(StepWatch)
	m.state.AllocatedID = "A.1.1"
	m.promptReady = true
	m.failure = &watchFailure{problems: []string{"title is required"}}

	updated, cmd := m.Update(keyMsg("r"))
	got := updated.(*Model)
	assert.Equal(t, StepPrompt, got.State().Current())
	assert.False(t, got.promptReady)
	assert.NotNil(t, cmd)
}

func TestPromptReadyRecordsAllocation(t *testing.T) {
	m := newTestModel(t, Options{Type: types.TypeIssue, ParentID: "A.1"})
	m.state.StepIndex = m.indexOf(StepPrompt)
	m.generating = true

	updated, _ := m.Update(promptReadyMsg{
		seq:    m.seq,
		id:     "A.1.2",
		slug:   "fix-the-thing",
		path:   "/tmp/A.1.2.fix-the-thing.yml",
		prompt: "do the thing",
	})
	got := updated.(*Model)
	assert.True(t, got.promptReady)
	assert.Equal(t, "A.1.2", got.State().AllocatedID)
	assert.Equal(t, "fix-the-thing", got.State().Slug)
	assert.Equal(t, "do the thing", got.State().Prompt)
}

func TestCompletionInvokesCallback(t *testing.T) {
	var completed *Completion
	m := newTestModel(t, Options{
		Type:     types.TypeIssue,
		ParentID: "A.1",
		OnComplete: func(c Completion) {
			completed = &c
		},
	})
	a := &types.Artifact{}
	a.Metadata.ID = "A.1.1"
	a.Metadata.Title = "Done"
	m.state.Artifact = a
	m.state.AllocatedID = "A.1.1"
	m.state.StepIndex = len(m.state.Steps) - 1 // preview

	updated, cmd := m.Update(keyMsg("enter"))
	got := updated.(*Model)
	assert.True(t, got.State().IsComplete)
	require.NotNil(t, completed)
	assert.Equal(t, "A.1.1", completed.ID)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPreviewRendersArtifactDetails(t *testing.T) {
	m := newTestModel(t, Options{Type: types.TypeIssue, ParentID: "A.1"})
	a := &types.Artifact{}
	a.Metadata.ID = "A.1.1"
	a.Metadata.Title = "Close the watcher handle"
	a.Metadata.ArtifactType = types.TypeIssue
	a.Metadata.Priority = "P2"
	a.Metadata.Relationships.Parent = "A.1"
	a.Summary = "The fsnotify handle outlives the step."
	m.state.Artifact = a
	m.state.Path = "/tmp/A.1.1.yml"
	m.state.StepIndex = len(m.state.Steps) - 1

	out := m.View()
	assert.Contains(t, out, "Close the watcher handle")
	assert.Contains(t, out, "parent")
	assert.Contains(t, out, "The fsnotify handle outlives the step.")
}

func TestPromptViewTruncatesLongPrompts(t *testing.T) {
	m := newTestModel(t, Options{Type: types.TypeIssue, ParentID: "A.1"})
	m.state.StepIndex = m.indexOf(StepPrompt)
	m.state.AllocatedID = "A.1.1"
	m.state.Prompt = strings.Repeat("fill in the summary field\n", 40)
	m.promptReady = true

	out := m.View()
	assert.Contains(t, out, "more lines")
}

func TestPickCandidatePrefersExpectedID(t *testing.T) {
	ids := []string{"A.1.1", "A.1.2", "A.1.3", "A.2.1", "B"}
	got := pickCandidate(ids, "A.1.2", "A.1", types.TypeIssue)
	assert.Equal(t, "A.1.2", got)
}

func TestPickCandidateFallsBackToLast(t *testing.T) {
	ids := []string{"A.1.1", "A.1.3", "A.1.2"}
	got := pickCandidate(ids, "A.1.9", "A.1", types.TypeIssue)
	assert.Equal(t, "A.1.3", got)
}

func TestPickCandidateScopesToParent(t *testing.T) {
	ids := []string{"A.2.1", "B.1.1"}
	got := pickCandidate(ids, "", "A.1", types.TypeIssue)
	assert.Empty(t, got)
}

func TestPickCandidateRootInitiatives(t *testing.T) {
	ids := []string{"A", "A.1", "B"}
	got := pickCandidate(ids, "", "", types.TypeInitiative)
	assert.Equal(t, "B", got)
}
