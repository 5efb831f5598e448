package hierarchy

import (
	"os"
	"path/filepath"
)

// Rollback deletes every file recorded in the batch, in reverse creation
// order, then clears the context. Individual delete failures are reported
// through warnf and skipped; a partially rolled-back batch is preferable to
// a hung abort. Directories left empty by the deletes are pruned.
func Rollback(batch *BatchContext, warnf func(format string, args ...interface{})) {
	if batch == nil {
		return
	}
	if warnf == nil {
		warnf = func(string, ...interface{}) {}
	}

	for i := len(batch.CreatedPaths) - 1; i >= 0; i-- {
		path := batch.CreatedPaths[i]
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			warnf("failed to remove %s: %v", path, err)
			continue
		}
		pruneEmptyDir(filepath.Dir(path))
	}
	batch.Clear()
}

// pruneEmptyDir removes an artifact directory left empty by a rollback.
// Non-empty or already-gone directories are left alone.
func pruneEmptyDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}
	_ = os.Remove(dir)
}
