package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const timestampLayout = "20060102_150405"

// maxSameSecond bounds the numeric suffixes tried when several backups land
// in the same second.
const maxSameSecond = 100

// Store is a file-based implementation of domain.BackupStore.
type Store struct {
	now func() time.Time
}

// New creates a backup store stamped with the wall clock.
func New() *Store {
	return &Store{now: time.Now}
}

// NewWithClock creates a backup store with a fixed clock, for tests.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

// Backup copies src into dir as <name>.backup.<timestamp>, creating dir as
// needed. Existing backups are never overwritten.
func (s *Store) Backup(dir, src string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", err
	}

	base := fmt.Sprintf("%s.backup.%s", filepath.Base(src), s.now().Format(timestampLayout))
	out, path, err := createUnique(dir, base, info.Mode().Perm())
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	return path, nil
}

// List returns the backups in dir, oldest first.
func (s *Store) List(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.backup.*"))
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func createUnique(dir, base string, perm os.FileMode) (*os.File, string, error) {
	for i := 0; i < maxSameSecond; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s.%d", base, i)
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
		if err == nil {
			return f, path, nil
		}
		if !os.IsExist(err) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("too many backups of %s in one second", base)
}
