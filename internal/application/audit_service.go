package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/xcodeaudit/xcodeaudit/internal/domain"
	"github.com/xcodeaudit/xcodeaudit/internal/domain/audit"
)

// AuditService runs the individual stages against a project on disk:
// locate -> read -> scan, optionally followed by backup -> fix -> write,
// and verify (re-scan of the written file).
type AuditService struct {
	locator domain.ProjectLocator
	config  domain.ConfigLoader
	backups domain.BackupStore
	hooks   domain.HookWriter
}

func NewAuditService(
	locator domain.ProjectLocator,
	config domain.ConfigLoader,
	backups domain.BackupStore,
	hooks domain.HookWriter,
) *AuditService {
	return &AuditService{
		locator: locator,
		config:  config,
		backups: backups,
		hooks:   hooks,
	}
}

// loaded is the state every stage starts from.
type loaded struct {
	cfg  domain.ProjectConfig
	file domain.ProjectFile
	text string
}

func (s *AuditService) load(root string) (*loaded, error) {
	cfg, err := s.config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	file, err := s.locator.Locate(root, cfg.ProjectDirs)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}

	return &loaded{cfg: cfg, file: file, text: string(data)}, nil
}

// Scan reports risky shell-script phases without declared outputs.
// It never writes.
func (s *AuditService) Scan(ctx context.Context, root string) (*domain.ScanResult, error) {
	logger := zerolog.Ctx(ctx)

	st, err := s.load(root)
	if err != nil {
		return nil, err
	}

	issues := audit.Scan(st.text, st.cfg.RiskKeywords)
	for _, is := range issues {
		logger.Debug().Str("phase", is.PhaseName).Int("start", is.Start).Int("end", is.End).Msg("missing output paths")
	}

	return &domain.ScanResult{File: st.file, Issues: nonNilIssues(issues)}, nil
}

// Fix patches every issue it can, backs up the original and writes the
// patched file in place, then writes the Podfile hook. Nothing is written
// when there is nothing to patch.
func (s *AuditService) Fix(ctx context.Context, root string) (*domain.FixResult, error) {
	logger := zerolog.Ctx(ctx)

	st, err := s.load(root)
	if err != nil {
		return nil, err
	}

	// 1. Compute every fix in memory before touching the disk
	rules := st.cfg.RuleSet()
	out := audit.Patch(st.text, st.cfg.RiskKeywords, rules)
	result := &domain.FixResult{
		File:       st.file,
		IssuesSeen: len(out.Issues),
		Fixes:      []domain.FixRecord{},
		Before:     st.text,
		After:      st.text,
	}
	if len(out.Issues) == 0 {
		return result, nil
	}

	result.Fixes = append(result.Fixes, out.Fixes...)
	result.Skipped = out.Skipped
	result.After = out.Text
	for _, sk := range out.Skipped {
		logger.Warn().Str("phase", sk.PhaseName).Str("reason", sk.Reason).Msg("skipped build phase")
	}
	if !out.Changed() {
		return result, nil
	}

	// 2. Back up the original
	backupDir := filepath.Join(st.file.Root, st.cfg.BackupDir)
	backupPath, err := s.backups.Backup(backupDir, st.file.Path)
	if err != nil {
		return nil, &domain.WriteError{Step: domain.StepBackup, Path: backupDir, Err: err}
	}
	result.BackupPath = backupPath
	logger.Debug().Str("path", backupPath).Msg("backup created")

	// 3. Write the patched file with its original permissions
	perm := os.FileMode(0644)
	if info, err := os.Stat(st.file.Path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(st.file.Path, []byte(out.Text), perm); err != nil {
		return nil, &domain.WriteError{Step: domain.StepProject, Path: st.file.Path, Err: err}
	}
	result.Written = true

	// 4. Companion hook so the fix survives pod install
	if st.cfg.HookEnabled() {
		hookPath := filepath.Join(st.file.Root, st.cfg.Hook.File)
		if err := s.hooks.Write(hookPath, st.cfg.RiskKeywords, rules); err != nil {
			return result, &domain.WriteError{Step: domain.StepHook, Path: hookPath, Err: err}
		}
		result.HookPath = hookPath
	}

	return result, nil
}

// Verify re-scans the project file on disk. Remaining issues are reported,
// not rolled back.
func (s *AuditService) Verify(ctx context.Context, root string) (*domain.VerifyResult, error) {
	st, err := s.load(root)
	if err != nil {
		return nil, err
	}

	remaining := nonNilIssues(audit.Scan(st.text, st.cfg.RiskKeywords))
	v := domain.Verification{Status: domain.VerificationPassed}
	if len(remaining) > 0 {
		v = domain.Verification{Status: domain.VerificationFailed, RemainingIssues: len(remaining)}
		zerolog.Ctx(ctx).Warn().Int("remaining", len(remaining)).Msg("verification failed")
	}

	return &domain.VerifyResult{File: st.file, Remaining: remaining, Verification: v}, nil
}

// Config returns the effective configuration for root.
func (s *AuditService) Config(root string) (domain.ProjectConfig, error) {
	return s.config.Load(root)
}

func nonNilIssues(issues []domain.Issue) []domain.Issue {
	if issues == nil {
		return []domain.Issue{}
	}
	return issues
}
