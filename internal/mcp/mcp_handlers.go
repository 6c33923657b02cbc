package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/repopulse/repopulse/core"
	"github.com/repopulse/repopulse/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	source  contract.RepoSource
	store   contract.ReportStore
}

func (h *toolHandler) handleAnalyzeRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	repository := request.GetString("repository", "")
	parts := strings.Split(strings.TrimSpace(repository), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return mcp.NewToolResultError(fmt.Sprintf("repository must be in owner/name form, got %q", repository)), nil
	}
	cfg.Owner = parts[0]
	cfg.Name = parts[1]

	if d := request.GetInt("activity_period_days", 0); d > 0 {
		cfg.ActivityPeriodDays = d
	}
	if d := request.GetInt("churn_period_days", 0); d > 0 {
		cfg.ChurnPeriodDays = d
	}
	if d := request.GetInt("stagnation_threshold_days", 0); d > 0 {
		cfg.StagnationThresholdDays = d
	}

	set, err := h.source.FetchRecordSet(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}

	report, err := core.NewHealthAnalyzer(cfg).Analyze(set)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetScoringModel(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model := map[string]any{
		"weights": h.baseCfg.Weights,
		"components": map[string]string{
			"activity":           "Development pace over the trailing activity window",
			"issue_health":       "Backlog responsiveness, penalties for stagnation and slow closes",
			"code_quality":       "Change concentration and churn volume over the churn window",
			"contributor_health": "Contributor base breadth and knowledge distribution",
		},
		"range": "Each sub-score and the weighted overall are clamped to 0-100",
	}

	jsonData, _ := json.MarshalIndent(model, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListReportRuns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("no report store configured: start the server with --store-backend"), nil
	}

	limit := request.GetInt("limit", contract.DefaultHistoryLimit)
	runs, err := h.store.ListRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing runs failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
