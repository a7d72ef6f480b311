package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewXcodeAuditMCPServer creates a new MCP server with all xcodeaudit tools
// and resources registered. projectPath is the app root that contains the
// ios/ directory.
func NewXcodeAuditMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"xcodeaudit",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
