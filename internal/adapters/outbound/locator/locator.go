package locator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xcodeaudit/xcodeaudit/internal/domain"
)

const (
	projectDirSuffix = ".xcodeproj"
	projectFileName  = "project.pbxproj"
)

// FileLocator implements domain.ProjectLocator by looking one level into each
// search directory for a *.xcodeproj bundle.
type FileLocator struct{}

func New() *FileLocator {
	return &FileLocator{}
}

// Locate returns the first project.pbxproj found. Search directories are
// relative to root and tried in order; bundles within a directory are tried
// in name order.
func (l *FileLocator) Locate(root string, searchDirs []string) (domain.ProjectFile, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return domain.ProjectFile{}, fmt.Errorf("resolving root: %w", err)
	}

	if len(searchDirs) == 0 {
		searchDirs = domain.DefaultProjectDirs
	}

	var searched []string
	for _, dir := range searchDirs {
		base := filepath.Join(absRoot, dir)
		searched = append(searched, base)

		entries, err := os.ReadDir(base)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return domain.ProjectFile{}, fmt.Errorf("reading %s: %w", base, err)
		}

		for _, e := range entries {
			if !e.IsDir() || !strings.HasSuffix(e.Name(), projectDirSuffix) {
				continue
			}
			candidate := filepath.Join(base, e.Name(), projectFileName)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return domain.ProjectFile{Root: absRoot, Path: candidate}, nil
			}
		}
	}

	return domain.ProjectFile{}, fmt.Errorf("%w (searched %s)", domain.ErrProjectNotFound, strings.Join(searched, ", "))
}
