package domain

// ProjectLocator finds the project description file under a root directory.
type ProjectLocator interface {
	Locate(root string, searchDirs []string) (ProjectFile, error)
}

// ConfigLoader loads the project-level .xcodeaudit.yaml.
type ConfigLoader interface {
	Load(root string) (ProjectConfig, error)
}

// BackupStore copies a file into a backup directory and returns the copy's path.
type BackupStore interface {
	Backup(dir, src string) (string, error)
}

// HookWriter renders the Podfile post_install hook for a rule table.
type HookWriter interface {
	Write(path string, keywords []string, rules RuleSet) error
}

// ReportStore persists audit reports.
type ReportStore interface {
	Save(path string, report *AuditReport) error
	Load(path string) (*AuditReport, error)
}

// AuditHistory keeps a summary per full run.
type AuditHistory interface {
	Save(root string, entry HistoryEntry) error
	Load(root string) ([]HistoryEntry, error)
}

// GitInfo describes the repository the project lives in.
type GitInfo interface {
	IsGitRepo(root string) bool
	CommitHash(root string) (string, error)
	IsDirty(root string) (bool, error)
}
