package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"trimmux/internal/fileutil"
)

// Backup pairs an original file with one of its .bakN siblings.
type Backup struct {
	Original     string
	Path         string
	ModTime      time.Time
	Size         int64
	OriginalSize int64
}

var bakSuffixRe = regexp.MustCompile(`\.bak\d+$`)

// UniqueBackupName returns the first free "<file>.bakN" sibling.
func UniqueBackupName(file string) string {
	for i := 0; ; i++ {
		candidate := fmt.Sprintf("%s.bak%d", file, i)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// originalFor strips the .bakN suffix, or returns false when the path is not
// a backup.
func originalFor(path string) (string, bool) {
	match := bakSuffixRe.FindStringIndex(path)
	if match == nil {
		return "", false
	}
	return path[:match[0]], true
}

// Find builds the Backup record for an explicit .bakN path.
func Find(path string) (Backup, error) {
	original, ok := originalFor(path)
	if !ok {
		return Backup{}, fmt.Errorf("%s is not a backup file", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return Backup{}, fmt.Errorf("stat backup: %w", err)
	}
	backup := Backup{
		Original: original,
		Path:     path,
		ModTime:  info.ModTime(),
		Size:     info.Size(),
	}
	if originalInfo, err := os.Stat(original); err == nil {
		backup.OriginalSize = originalInfo.Size()
	}
	return backup, nil
}

// List scans a directory for .bakN files whose original still exists.
// Backups without an original are ignored; restoring them has no target slot.
func List(dir string, recursive bool) ([]Backup, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var backups []Backup
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if recursive {
				nested, err := List(path, true)
				if err != nil {
					return nil, err
				}
				backups = append(backups, nested...)
			}
			continue
		}

		original, ok := originalFor(path)
		if !ok {
			continue
		}
		origInfo, err := os.Stat(original)
		if err != nil {
			continue
		}
		bakInfo, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Backup{
			Original:     original,
			Path:         path,
			ModTime:      bakInfo.ModTime(),
			Size:         bakInfo.Size(),
			OriginalSize: origInfo.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool { return backups[i].Path < backups[j].Path })
	return backups, nil
}

// Restore copies the backup payload back over the original and removes the
// backup file. The copy is integrity-verified before the backup disappears.
func Restore(b Backup) error {
	if err := fileutil.CopyFileVerified(b.Path, b.Original); err != nil {
		return fmt.Errorf("restore %s: %w", b.Path, err)
	}
	if err := os.Remove(b.Path); err != nil {
		return fmt.Errorf("remove backup %s: %w", b.Path, err)
	}
	return nil
}

// Remove deletes a backup file without touching the original.
func Remove(b Backup) error {
	if err := os.Remove(b.Path); err != nil {
		return fmt.Errorf("remove backup %s: %w", b.Path, err)
	}
	return nil
}
