package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/backup"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/config"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/gitinfo"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/history"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/hook"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/locator"
	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/report"
	"github.com/xcodeaudit/xcodeaudit/internal/application"
)

// registerTools registers all xcodeaudit MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	s.AddTool(
		mcplib.NewTool("xcodeaudit_scan",
			mcplib.WithDescription("List risky shell-script build phases that declare no output paths. Read-only."),
		),
		handleScan(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("xcodeaudit_fix",
			mcplib.WithDescription("Back up project.pbxproj, insert outputPaths into every risky phase missing them, and write the Podfile hook"),
		),
		handleFix(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("xcodeaudit_verify",
			mcplib.WithDescription("Re-scan project.pbxproj and report how many issues remain"),
		),
		handleVerify(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("xcodeaudit_full",
			mcplib.WithDescription("Run scan, fix and verify, then write xcode-audit-report.json and return the report"),
		),
		handleFull(projectPath),
	)
}

// newServices creates the standard set of outbound adapters and services.
func newServices() (*application.AuditService, *application.FullService) {
	auditSvc := application.NewAuditService(locator.New(), config.New(), backup.New(), hook.New())
	return auditSvc, application.NewFullService(auditSvc, report.New(), history.New(), gitinfo.New())
}

func handleScan(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		auditSvc, _ := newServices()
		res, err := auditSvc.Scan(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		return jsonResult(res)
	}
}

func handleFix(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		auditSvc, _ := newServices()
		res, err := auditSvc.Fix(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
		}
		return jsonResult(res)
	}
}

func handleVerify(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		auditSvc, _ := newServices()
		res, err := auditSvc.Verify(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("verify failed: %v", err)), nil
		}
		return jsonResult(res)
	}
}

func handleFull(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		_, fullSvc := newServices()
		res, err := fullSvc.Run(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("audit failed: %v", err)), nil
		}
		return jsonResult(res.Report)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
