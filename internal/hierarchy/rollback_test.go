package hierarchy

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodebase-io/kodebase/internal/types"
)

func TestRollbackDeletesAllRecordedFiles(t *testing.T) {
	dir := t.TempDir()
	batch := NewBatchContext("A", types.TypeInitiative)

	for _, name := range []string{"A.one/A.yml", "A.1.two/A.1.yml", "A.1.two/A.1.1.three.yml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("metadata:\n"), 0o644))
		batch.Record(filepath.Base(name), path)
	}

	Rollback(batch, t.Logf)

	for _, name := range []string{"A.one/A.yml", "A.1.two/A.1.yml", "A.1.two/A.1.1.three.yml"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.True(t, os.IsNotExist(err), "%s should have been deleted", name)
	}
	// Emptied artifact directories are pruned too.
	_, err := os.Stat(filepath.Join(dir, "A.1.two"))
	assert.True(t, os.IsNotExist(err))

	assert.Empty(t, batch.CreatedPaths)
	assert.Empty(t, batch.CreatedArtifacts)
	assert.Empty(t, batch.IncompleteMilestones)
}

func TestRollbackContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	batch := NewBatchContext("A", types.TypeInitiative)

	good1 := filepath.Join(dir, "A.one", "A.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(good1), 0o755))
	require.NoError(t, os.WriteFile(good1, []byte("metadata:\n"), 0o644))

	// A non-empty directory cannot be os.Remove'd: a guaranteed failure.
	bad := filepath.Join(dir, "stuck")
	require.NoError(t, os.MkdirAll(bad, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bad, "keep.yml"), []byte("x"), 0o644))

	good2 := filepath.Join(dir, "A.two", "A.2.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(good2), 0o755))
	require.NoError(t, os.WriteFile(good2, []byte("metadata:\n"), 0o644))

	batch.Record("A", good1)
	batch.Record("X", bad)
	batch.Record("A.2", good2)
	batch.IncompleteMilestones = []string{"A.1"}

	var warnings []string
	Rollback(batch, func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	})

	_, err := os.Stat(good1)
	assert.True(t, os.IsNotExist(err), "first file should be deleted despite the failure")
	_, err = os.Stat(good2)
	assert.True(t, os.IsNotExist(err), "last file should be deleted despite the failure")
	_, err = os.Stat(bad)
	assert.NoError(t, err, "the undeletable path remains")

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "stuck")

	assert.Empty(t, batch.CreatedPaths, "context is cleared even after partial rollback")
	assert.Empty(t, batch.IncompleteMilestones)
}

func TestRollbackNilBatchIsNoOp(t *testing.T) {
	// Must not panic.
	Rollback(nil, nil)
}

func TestSatisfyMilestonePreservesOrder(t *testing.T) {
	batch := NewBatchContext("A", types.TypeInitiative)
	batch.AddIncompleteMilestone("A.1")
	batch.AddIncompleteMilestone("A.2")
	batch.AddIncompleteMilestone("A.3")
	batch.AddIncompleteMilestone("A.2") // duplicate ignored

	batch.SatisfyMilestone("A.2")
	assert.Equal(t, []string{"A.1", "A.3"}, batch.IncompleteMilestones)

	batch.SatisfyMilestone("A.9") // absent id is a no-op
	assert.Equal(t, []string{"A.1", "A.3"}, batch.IncompleteMilestones)
}
