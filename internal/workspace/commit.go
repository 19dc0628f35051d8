package workspace

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"

	"trimmux/internal/fileutil"
)

// Commit replaces source with produced, preserving the old source as a
// numbered backup. A file lock on the source serializes concurrent trimmux
// invocations against the same file; losing the race is an error rather than
// a silent double-replace.
func Commit(source, produced string) (string, error) {
	if _, err := os.Stat(produced); err != nil {
		return "", fmt.Errorf("produced file: %w", err)
	}

	lock := flock.New(source + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return "", fmt.Errorf("lock %s: %w", source, err)
	}
	if !locked {
		return "", fmt.Errorf("file %s is being replaced by another trimmux run", source)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	backup := UniqueBackupName(source)
	if err := fileutil.MoveFile(source, backup); err != nil {
		return "", fmt.Errorf("back up original: %w", err)
	}
	if err := fileutil.MoveFile(produced, source); err != nil {
		// Put the original back so the source slot never stays empty.
		if restoreErr := fileutil.MoveFile(backup, source); restoreErr != nil {
			return "", fmt.Errorf("replace original: %w (restore also failed: %v)", err, restoreErr)
		}
		return "", fmt.Errorf("replace original: %w", err)
	}
	return backup, nil
}
