package cli

import (
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/backup"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/config"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/gitinfo"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/history"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/hook"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/locator"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/report"
	"github.com/xcodeaudit/xcodeaudit/internal/application"
)

func newAuditService() *application.AuditService {
	return application.NewAuditService(
		locator.New(),
		config.New(),
		backup.New(),
		hook.New(),
	)
}

func newFullService() *application.FullService {
	return application.NewFullService(
		newAuditService(),
		report.New(),
		history.New(),
		gitinfo.New(),
	)
}
