package core

import (
	"errors"
	"sync"
	"time"

	"github.com/repopulse/repopulse/core/algo"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// HealthAnalyzer is the orchestrator: it validates the configured weights,
// dispatches the four analyzers over a shared read-only record set, and
// combines their sub-scores into a weighted overall score.
type HealthAnalyzer struct {
	cfg *contract.Config

	// Now is the time source for window calculations. Tests override it
	// to pin analysis windows.
	Now func() time.Time
}

// NewHealthAnalyzer creates an orchestrator for the given config.
func NewHealthAnalyzer(cfg *contract.Config) *HealthAnalyzer {
	return &HealthAnalyzer{cfg: cfg, Now: time.Now}
}

// Analyze runs the complete health analysis over one record set and
// returns the assembled report. Configuration is validated before any
// analyzer touches record data; the input is never mutated.
func (h *HealthAnalyzer) Analyze(set *schema.RawRecordSet) (*schema.AnalysisReport, error) {
	if set == nil {
		return nil, contract.NewConfigError("record set must not be nil")
	}
	if err := h.cfg.Weights.Validate(); err != nil {
		return nil, err
	}

	now := h.Now().UTC()

	analyzers := []Analyzer{
		NewRepoActivityAnalyzer(h.cfg),
		NewIssueStagnationAnalyzer(h.cfg),
		NewCodeChurnAnalyzer(h.cfg),
		NewContributorPatternsAnalyzer(h.cfg),
	}

	// The analyzers are pure over the shared read-only record set, so they
	// run concurrently without synchronization. Each goroutine writes to a
	// unique index, which is safe.
	results := make([]schema.Metrics, len(analyzers))
	errs := make([]error, len(analyzers))
	var wg sync.WaitGroup
	for i, a := range analyzers {
		wg.Go(func() {
			results[i], errs[i] = a.Analyze(set, now)
		})
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	report := &schema.AnalysisReport{
		Repository: set.Repository,
		AnalyzedAt: now,
	}
	for _, m := range results {
		switch v := m.(type) {
		case *schema.ActivityMetrics:
			report.ActivityMetrics = v
		case *schema.IssueMetrics:
			report.IssueMetrics = v
		case *schema.ChurnMetrics:
			report.ChurnMetrics = v
		case *schema.ContributorMetrics:
			report.ContributorMetrics = v
		}
	}

	w := h.cfg.Weights
	hs := schema.HealthScore{
		Activity:          report.ActivityMetrics.Score,
		IssueHealth:       report.IssueMetrics.Score,
		CodeQuality:       report.ChurnMetrics.Score,
		ContributorHealth: report.ContributorMetrics.Score,
	}
	hs.Overall = algo.Round2(
		hs.Activity*w.Activity +
			hs.IssueHealth*w.IssueHealth +
			hs.CodeQuality*w.CodeQuality +
			hs.ContributorHealth*w.ContributorHealth)
	report.HealthScore = hs

	return report, nil
}
