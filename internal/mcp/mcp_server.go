// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/repopulse/repopulse/internal/contract"
)

// NewMCPServer initializes and configures the RepoPulse MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, source contract.RepoSource, store contract.ReportStore) *server.MCPServer {
	s := server.NewMCPServer(
		"RepoPulse Health Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		source:  source,
		store:   store,
	}

	// --- 1. Tool: analyze_repository ---
	s.AddTool(mcp.NewTool("analyze_repository",
		mcp.WithDescription("Compute a 0-100 health score for a GitHub repository from its activity, issues, churn and contributors."),
		mcp.WithString("repository", mcp.Description("Repository in owner/name form."), mcp.Required()),
		mcp.WithNumber("activity_period_days", mcp.Description("Trailing window for activity metrics in days.")),
		mcp.WithNumber("churn_period_days", mcp.Description("Trailing window for churn metrics in days.")),
		mcp.WithNumber("stagnation_threshold_days", mcp.Description("Age in days past which an open issue counts as stagnant.")),
	), h.handleAnalyzeRepository)

	// --- 2. Tool: get_scoring_model ---
	s.AddTool(mcp.NewTool("get_scoring_model",
		mcp.WithDescription("Describe the scoring model: sub-score components, factors and active weights."),
	), h.handleGetScoringModel)

	// --- 3. Tool: list_report_runs ---
	s.AddTool(mcp.NewTool("list_report_runs",
		mcp.WithDescription("List stored health report runs, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs to return.")),
	), h.handleListReportRuns)

	return s
}

// StartMCPServer starts the RepoPulse MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, source contract.RepoSource, store contract.ReportStore) error {
	s := NewMCPServer(baseCfg, source, store)
	return server.ServeStdio(s)
}
