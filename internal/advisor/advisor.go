// Package advisor turns an analysis report into a short remediation
// plan using an OpenAI-compatible chat model.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/repopulse/repopulse/schema"
	"github.com/sashabaranov/go-openai"
)

const (
	defaultModel   = openai.GPT4oMini
	requestTimeout = 30 * time.Second

	systemPrompt = "You are an experienced open source maintainer. Given repository " +
		"health metrics, suggest at most five concrete, prioritized actions to improve " +
		"the weakest scores. Be specific and terse; no generic advice."
)

// Advisor generates recommendations from analysis reports.
type Advisor struct {
	client *openai.Client
	model  string
}

// NewAdvisor builds an advisor from environment configuration.
// OPENAI_API_KEY is required; OPENAI_API_BASE and REPOPULSE_ADVISOR_MODEL
// are optional overrides.
func NewAdvisor() (*Advisor, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY not set, required for --advise")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if base := os.Getenv("OPENAI_API_BASE"); base != "" {
		clientConfig.BaseURL = base
	}

	model := os.Getenv("REPOPULSE_ADVISOR_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &Advisor{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Advise returns a remediation plan for the report.
func (a *Advisor) Advise(ctx context.Context, report *schema.AnalysisReport) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(report),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call advisor model: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("advisor model returned empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// BuildPrompt renders the report into a compact prompt. Only the fields
// that drive the scores are included to keep token usage down.
func BuildPrompt(report *schema.AnalysisReport) string {
	var b strings.Builder
	hs := report.HealthScore

	fmt.Fprintf(&b, "Repository: %s\n", report.Repository)
	fmt.Fprintf(&b, "Overall health: %.1f/100\n", hs.Overall)
	fmt.Fprintf(&b, "Sub-scores: activity %.1f, issue health %.1f, code quality %.1f, contributor health %.1f\n",
		hs.Activity, hs.IssueHealth, hs.CodeQuality, hs.ContributorHealth)

	if am := report.ActivityMetrics; am != nil {
		fmt.Fprintf(&b, "Activity (%dd): %d commits, %d PRs opened, merge rate %.0f%%, %d active contributors\n",
			am.WindowDays, am.Commits, am.PRsOpened, am.MergeRate*100, am.ActiveContributors)
	}
	if im := report.IssueMetrics; im != nil {
		fmt.Fprintf(&b, "Issues: %d open, %d stagnant past 90d, %d past 180d, avg close time %.0fh\n",
			im.TotalOpenIssues, im.Stagnant90Days, im.Stagnant180Days, im.AvgCloseTimeHours)
	}
	if cm := report.ChurnMetrics; cm != nil {
		fmt.Fprintf(&b, "Churn (%dd): avg %.0f lines/commit, %d high-churn files\n",
			cm.WindowDays, cm.AvgChurnPerCommit, cm.HighChurnFileCount)
		for i, f := range cm.HotspotFiles {
			if i >= 3 {
				break
			}
			fmt.Fprintf(&b, "  hotspot: %s (%d lines, %d commits)\n", f.Path, f.ChangedLines, f.Commits)
		}
	}
	if com := report.ContributorMetrics; com != nil {
		fmt.Fprintf(&b, "Contributors: %d total, bus factor %d, %d core, %d new\n",
			com.TotalContributors, com.BusFactor, com.CoreContributors, com.NewContributors)
	}

	return b.String()
}
