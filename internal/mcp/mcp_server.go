// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/techdebtgpt/maintsight/internal/contract"
)

// NewMCPServer initializes and configures the maintsight MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient) *server.MCPServer {
	s := server.NewMCPServer(
		"Maintsight Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
	}

	// --- 1. Tool: predict_maintainability ---
	s.AddTool(mcp.NewTool("predict_maintainability",
		mcp.WithDescription("Analyze git commit history to predict per-file maintainability degradation, ranked worst-first."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
		mcp.WithString("branch", mcp.Description("Branch or ref whose history is analyzed. Defaults to HEAD.")),
		mcp.WithNumber("days", mcp.Description("Trailing time window in days.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handlePredictMaintainability)

	return s
}

// StartMCPServer starts the maintsight MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitClient) error {
	s := NewMCPServer(baseCfg, client)
	return server.ServeStdio(s)
}
