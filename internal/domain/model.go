package domain

import "time"

// IssueMissingOutputPaths is the only issue type the scanner reports today.
const IssueMissingOutputPaths = "missing_output_paths"

// Verification outcomes.
const (
	VerificationPassed  = "passed"
	VerificationFailed  = "failed"
	VerificationSkipped = "skipped"
)

// Overall report statuses.
const (
	StatusInitialized        = "initialized"
	StatusCompleted          = "completed"
	StatusVerificationFailed = "verification_failed"
	StatusFailed             = "failed"
)

// ProjectFile is the located project description file for a run.
type ProjectFile struct {
	Root string `json:"root"`
	Path string `json:"path"`
}

// Issue is a risky shell-script build phase without declared outputs.
// Start and End are byte offsets into the text that was scanned.
type Issue struct {
	Type      string `json:"type"`
	PhaseName string `json:"phase_name"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	RawBlock  string `json:"-"`
}

// FixRecord describes one patched build phase.
type FixRecord struct {
	PhaseName  string `json:"phase_name"`
	OutputPath string `json:"output_path"`
}

// SkippedFix is an issue the fixer could not patch.
type SkippedFix struct {
	PhaseName string `json:"phase_name"`
	Reason    string `json:"reason"`
}

type Verification struct {
	Status          string `json:"status"`
	RemainingIssues int    `json:"remaining_issues"`
}

// ScanResult is the outcome of the scan stage.
type ScanResult struct {
	File   ProjectFile `json:"file"`
	Issues []Issue     `json:"issues"`
}

// FixResult is the outcome of the fix stage. Before and After hold the full
// file text so callers can render a diff; they are never serialized.
type FixResult struct {
	File       ProjectFile  `json:"file"`
	IssuesSeen int          `json:"issues_seen"`
	BackupPath string       `json:"backup_path,omitempty"`
	HookPath   string       `json:"hook_path,omitempty"`
	Fixes      []FixRecord  `json:"fixes"`
	Skipped    []SkippedFix `json:"skipped,omitempty"`
	Written    bool         `json:"written"`
	Before     string       `json:"-"`
	After      string       `json:"-"`
}

// VerifyResult is the outcome of the verify stage.
type VerifyResult struct {
	File         ProjectFile  `json:"file"`
	Remaining    []Issue      `json:"remaining"`
	Verification Verification `json:"verification"`
}

// Passed reports whether no issues remain.
func (v *VerifyResult) Passed() bool {
	return v.Verification.Status == VerificationPassed
}

// AuditReport is the persisted record of a full run.
type AuditReport struct {
	RunID        string       `json:"run_id"`
	Timestamp    time.Time    `json:"timestamp"`
	ProjectFile  string       `json:"project_file,omitempty"`
	Commit       string       `json:"commit,omitempty"`
	IssuesFound  []Issue      `json:"issues_found"`
	FixesApplied []string     `json:"fixes_applied"`
	Skipped      []SkippedFix `json:"skipped,omitempty"`
	Verification Verification `json:"verification"`
	Status       string       `json:"status"`
}

// NewAuditReport starts an empty report for a run.
func NewAuditReport(runID string, ts time.Time) *AuditReport {
	return &AuditReport{
		RunID:        runID,
		Timestamp:    ts,
		IssuesFound:  []Issue{},
		FixesApplied: []string{},
		Verification: Verification{Status: VerificationSkipped},
		Status:       StatusInitialized,
	}
}

// ApplyScan merges the scan stage into the report.
func (r *AuditReport) ApplyScan(s *ScanResult) {
	r.ProjectFile = s.File.Path
	r.IssuesFound = append([]Issue{}, s.Issues...)
}

// ApplyFix merges the fix stage into the report.
func (r *AuditReport) ApplyFix(f *FixResult) {
	for _, fix := range f.Fixes {
		r.FixesApplied = append(r.FixesApplied, fix.PhaseName)
	}
	r.Skipped = append(r.Skipped, f.Skipped...)
}

// ApplyVerify merges the verify stage into the report.
func (r *AuditReport) ApplyVerify(v *VerifyResult) {
	r.Verification = v.Verification
}

// Finish derives the overall status from the merged stages.
func (r *AuditReport) Finish() {
	if r.Verification.Status == VerificationFailed {
		r.Status = StatusVerificationFailed
		return
	}
	r.Status = StatusCompleted
}

// HistoryEntry is a compact summary of one full run.
type HistoryEntry struct {
	RunID     string `json:"run_id"`
	Timestamp string `json:"timestamp"`
	Commit    string `json:"commit,omitempty"`
	Issues    int    `json:"issues"`
	Fixes     int    `json:"fixes"`
	Status    string `json:"status"`
}

// HistoryEntryFor summarizes a finished report.
func HistoryEntryFor(r *AuditReport) HistoryEntry {
	return HistoryEntry{
		RunID:     r.RunID,
		Timestamp: r.Timestamp.Format(time.RFC3339),
		Commit:    r.Commit,
		Issues:    len(r.IssuesFound),
		Fixes:     len(r.FixesApplied),
		Status:    r.Status,
	}
}
