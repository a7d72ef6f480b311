package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/backup"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/config"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/history"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/hook"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/report"
)

// registerResources registers all xcodeaudit MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. xcodeaudit://report - last persisted audit report
	s.AddResource(
		mcplib.NewResource(
			"xcodeaudit://report",
			"Audit Report",
			mcplib.WithResourceDescription("The last xcode-audit-report.json written by a full run"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath),
	)

	// 2. xcodeaudit://history - one summary per full run
	s.AddResource(
		mcplib.NewResource(
			"xcodeaudit://history",
			"Audit History",
			mcplib.WithResourceDescription("Summaries of previous full runs"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath),
	)

	// 3. xcodeaudit://backups - backup copies of project.pbxproj
	s.AddResource(
		mcplib.NewResource(
			"xcodeaudit://backups",
			"Backups",
			mcplib.WithResourceDescription("Paths of timestamped project.pbxproj backups"),
			mcplib.WithMIMEType("application/json"),
		),
		handleBackupsResource(projectPath),
	)

	// 4. xcodeaudit://podfile-hook - hook rendered from the active rules
	s.AddResource(
		mcplib.NewResource(
			"xcodeaudit://podfile-hook",
			"Podfile Hook",
			mcplib.WithResourceDescription("Podfile post_install hook that keeps output paths after pod install"),
			mcplib.WithMIMEType("text/x-ruby"),
		),
		handleHookResource(projectPath),
	)
}

func handleReportResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		r, err := report.New().Load(filepath.Join(projectPath, cfg.ReportFile))
		if err != nil {
			return nil, fmt.Errorf("loading report: %w", err)
		}

		return jsonContents("xcodeaudit://report", r)
	}
}

func handleHistoryResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := history.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		return jsonContents("xcodeaudit://history", entries)
	}
}

func handleBackupsResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		paths, err := backup.New().List(filepath.Join(projectPath, cfg.BackupDir))
		if err != nil {
			return nil, fmt.Errorf("listing backups: %w", err)
		}
		if paths == nil {
			paths = []string{}
		}
		return jsonContents("xcodeaudit://backups", paths)
	}
}

func handleHookResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		text, err := hook.New().Render(cfg.RiskKeywords, cfg.RuleSet())
		if err != nil {
			return nil, err
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "xcodeaudit://podfile-hook",
				MIMEType: "text/x-ruby",
				Text:     text,
			},
		}, nil
	}
}

func jsonContents(uri string, v interface{}) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
