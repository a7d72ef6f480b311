package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xcodeaudit/xcodeaudit/internal/domain"
)

const historyFile = ".xcodeaudit/history/audits.json"

// DefaultMaxEntries bounds the history file; the oldest runs are dropped first.
const DefaultMaxEntries = 200

// FileHistory implements domain.AuditHistory as a JSON array of run
// summaries, oldest first.
type FileHistory struct {
	max int
}

func New() *FileHistory {
	return &FileHistory{max: DefaultMaxEntries}
}

// NewWithLimit keeps at most max entries. A max below 1 means unbounded.
func NewWithLimit(max int) *FileHistory {
	return &FileHistory{max: max}
}

// Save records entry. An entry with a run ID already on file replaces the
// earlier one in place, so re-saving a run never duplicates it.
func (h *FileHistory) Save(root string, entry domain.HistoryEntry) error {
	entries, err := h.Load(root)
	if err != nil {
		return err
	}

	entries = upsert(entries, entry)
	if h.max > 0 && len(entries) > h.max {
		entries = entries[len(entries)-h.max:]
	}

	fp := filepath.Join(root, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	return os.WriteFile(fp, append(data, '\n'), 0644)
}

func (h *FileHistory) Load(root string) ([]domain.HistoryEntry, error) {
	fp := filepath.Join(root, historyFile)
	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}

	return entries, nil
}

func upsert(entries []domain.HistoryEntry, entry domain.HistoryEntry) []domain.HistoryEntry {
	if entry.RunID != "" {
		for i := range entries {
			if entries[i].RunID == entry.RunID {
				entries[i] = entry
				return entries
			}
		}
	}
	return append(entries, entry)
}
