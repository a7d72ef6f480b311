package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xcodeaudit/xcodeaudit/internal/domain"
)

// JSONStore implements domain.ReportStore with indented JSON files.
type JSONStore struct{}

func New() *JSONStore {
	return &JSONStore{}
}

func (s *JSONStore) Save(path string, r *domain.AuditReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Load reads a report written by Save. A missing file is returned as an
// error wrapping os.ErrNotExist.
func (s *JSONStore) Load(path string) (*domain.AuditReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r domain.AuditReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return &r, nil
}
