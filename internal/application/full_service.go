package application

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xcodeaudit/xcodeaudit/internal/domain"
)

// FullService orchestrates a complete run:
// scan -> (fix -> verify when issues exist) -> report -> history.
// Each stage returns its own result and the report is assembled here.
type FullService struct {
	audit   *AuditService
	reports domain.ReportStore
	history domain.AuditHistory
	git     domain.GitInfo
	now     func() time.Time
}

func NewFullService(
	audit *AuditService,
	reports domain.ReportStore,
	history domain.AuditHistory,
	git domain.GitInfo,
) *FullService {
	return &FullService{
		audit:   audit,
		reports: reports,
		history: history,
		git:     git,
		now:     time.Now,
	}
}

// WithClock overrides the report timestamp source.
func (s *FullService) WithClock(now func() time.Time) *FullService {
	s.now = now
	return s
}

// FullResult carries each stage's result alongside the persisted report.
// Fix and Verify are nil when the scan found nothing.
type FullResult struct {
	Scan       *domain.ScanResult
	Fix        *domain.FixResult
	Verify     *domain.VerifyResult
	Report     *domain.AuditReport
	ReportPath string
}

// Run performs the full cycle. A missing project aborts before anything is
// written. A failed fix still persists the report with status "failed".
func (s *FullService) Run(ctx context.Context, root string) (*FullResult, error) {
	logger := zerolog.Ctx(ctx)

	cfg, err := s.audit.Config(root)
	if err != nil {
		return nil, err
	}

	scan, err := s.audit.Scan(ctx, root)
	if err != nil {
		return nil, err
	}

	res := &FullResult{
		Scan:       scan,
		Report:     domain.NewAuditReport(uuid.NewString(), s.now()),
		ReportPath: filepath.Join(scan.File.Root, cfg.ReportFile),
	}
	res.Report.ApplyScan(scan)

	inRepo := s.git.IsGitRepo(scan.File.Root)
	if inRepo {
		if hash, err := s.git.CommitHash(scan.File.Root); err == nil {
			res.Report.Commit = hash
		} else {
			logger.Debug().Err(err).Msg("no git commit for report")
		}
	} else {
		logger.Debug().Str("root", scan.File.Root).Msg("not a git repository")
	}

	if len(scan.Issues) > 0 {
		if inRepo {
			if dirty, err := s.git.IsDirty(scan.File.Root); err == nil && dirty {
				logger.Warn().Msg("worktree has uncommitted changes; rely on the backup to revert")
			}
		}

		fix, err := s.audit.Fix(ctx, root)
		if fix != nil {
			res.Fix = fix
			res.Report.ApplyFix(fix)
		}
		if err != nil {
			res.Report.Status = domain.StatusFailed
			if saveErr := s.save(ctx, res); saveErr != nil {
				logger.Error().Err(saveErr).Msg("saving report after failed fix")
			}
			return res, err
		}

		verify, err := s.audit.Verify(ctx, root)
		if err != nil {
			return res, err
		}
		res.Verify = verify
		res.Report.ApplyVerify(verify)
	}

	res.Report.Finish()
	if err := s.save(ctx, res); err != nil {
		return res, err
	}

	return res, nil
}

func (s *FullService) save(ctx context.Context, res *FullResult) error {
	if err := s.reports.Save(res.ReportPath, res.Report); err != nil {
		return &domain.WriteError{Step: domain.StepReport, Path: res.ReportPath, Err: err}
	}

	// History is best-effort.
	if err := s.history.Save(res.Scan.File.Root, domain.HistoryEntryFor(res.Report)); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("saving audit history")
	}
	return nil
}
