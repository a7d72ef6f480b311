package domain_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xcodeaudit/xcodeaudit/internal/domain"
)

var runTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestNewAuditReport(t *testing.T) {
	r := domain.NewAuditReport("run-1", runTime)

	assert.Equal(t, "run-1", r.RunID)
	assert.NotNil(t, r.IssuesFound)
	assert.NotNil(t, r.FixesApplied)
	assert.Equal(t, domain.VerificationSkipped, r.Verification.Status)
	assert.Equal(t, domain.StatusInitialized, r.Status)
}

func TestAuditReport_MergesStages(t *testing.T) {
	file := domain.ProjectFile{Root: "/app", Path: "/app/ios/App.xcodeproj/project.pbxproj"}
	r := domain.NewAuditReport("run-1", runTime)

	r.ApplyScan(&domain.ScanResult{File: file, Issues: []domain.Issue{{PhaseName: "A"}, {PhaseName: "B"}}})
	r.ApplyFix(&domain.FixResult{
		Fixes:   []domain.FixRecord{{PhaseName: "A", OutputPath: "x"}},
		Skipped: []domain.SkippedFix{{PhaseName: "B", Reason: "malformed"}},
	})
	r.ApplyVerify(&domain.VerifyResult{Verification: domain.Verification{Status: domain.VerificationFailed, RemainingIssues: 1}})
	r.Finish()

	assert.Equal(t, file.Path, r.ProjectFile)
	assert.Len(t, r.IssuesFound, 2)
	assert.Equal(t, []string{"A"}, r.FixesApplied)
	assert.Len(t, r.Skipped, 1)
	assert.Equal(t, domain.StatusVerificationFailed, r.Status)
}

func TestAuditReport_FinishWithoutVerify(t *testing.T) {
	r := domain.NewAuditReport("run-1", runTime)
	r.Finish()
	assert.Equal(t, domain.StatusCompleted, r.Status)
	assert.Equal(t, domain.VerificationSkipped, r.Verification.Status)
}

func TestHistoryEntryFor(t *testing.T) {
	r := domain.NewAuditReport("run-1", runTime)
	r.Commit = "abc"
	r.IssuesFound = []domain.Issue{{PhaseName: "A"}}
	r.FixesApplied = []string{"A"}
	r.Finish()

	e := domain.HistoryEntryFor(r)
	assert.Equal(t, domain.HistoryEntry{
		RunID:     "run-1",
		Timestamp: "2026-03-14T09:26:53Z",
		Commit:    "abc",
		Issues:    1,
		Fixes:     1,
		Status:    domain.StatusCompleted,
	}, e)
}

func TestWriteError(t *testing.T) {
	err := &domain.WriteError{Step: domain.StepProject, Path: "/app/project.pbxproj", Err: os.ErrPermission}
	assert.Equal(t, "writing project file /app/project.pbxproj: permission denied", err.Error())
	assert.True(t, errors.Is(err, os.ErrPermission))
}
