package core

import (
	"math"
	"time"

	"github.com/repopulse/repopulse/core/algo"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// highChurnCommitShare is the share of window commits a file must appear in
// to be considered a high-churn file for penalty purposes.
const highChurnCommitShare = 0.2

// CodeChurnAnalyzer aggregates per-file line deltas across commits, ranks
// hotspot files, and computes the code-quality sub-score.
type CodeChurnAnalyzer struct {
	cfg *contract.Config
}

// NewCodeChurnAnalyzer creates a churn analyzer for the given config.
func NewCodeChurnAnalyzer(cfg *contract.Config) *CodeChurnAnalyzer {
	return &CodeChurnAnalyzer{cfg: cfg}
}

// Name implements Analyzer.
func (a *CodeChurnAnalyzer) Name() string { return schema.ChurnComponent }

// fileChurn accumulates per-file activity while walking the commit window.
type fileChurn struct {
	changedLines int
	commits      int
}

// Analyze implements Analyzer.
func (a *CodeChurnAnalyzer) Analyze(set *schema.RawRecordSet, now time.Time) (schema.Metrics, error) {
	if err := validateCommits(a.Name(), set.Commits); err != nil {
		return nil, err
	}

	start := windowStart(now, a.cfg.ChurnPeriodDays)
	m := &schema.ChurnMetrics{WindowDays: a.cfg.ChurnPeriodDays}

	perFile := make(map[string]*fileChurn)
	var windowCommits int

	for i := range set.Commits {
		c := &set.Commits[i]
		if !inWindow(c.AuthoredAt, start, now) {
			continue
		}
		windowCommits++

		additions, deletions := c.Additions, c.Deletions
		if additions == 0 && deletions == 0 {
			// Fall back to per-file deltas when commit totals are absent.
			for _, f := range c.Files {
				additions += f.Additions
				deletions += f.Deletions
			}
		}
		m.TotalAdditions += additions
		m.TotalDeletions += deletions

		for _, f := range c.Files {
			fc := perFile[f.Path]
			if fc == nil {
				fc = &fileChurn{}
				perFile[f.Path] = fc
			}
			fc.changedLines += f.Additions + f.Deletions
			fc.commits++
		}
	}

	m.TotalFilesChanged = len(perFile)

	hotspots := make([]schema.HotspotFile, 0, len(perFile))
	highChurnFloor := float64(windowCommits) * highChurnCommitShare
	for path, fc := range perFile {
		hotspots = append(hotspots, schema.HotspotFile{
			Path:         path,
			ChangedLines: fc.changedLines,
			Commits:      fc.commits,
		})
		if float64(fc.commits) > highChurnFloor {
			m.HighChurnFileCount++
		}
	}
	m.HotspotFiles = algo.RankHotspots(hotspots, a.cfg.HotspotLimit)

	totalChanged := float64(m.TotalAdditions + m.TotalDeletions)
	deletionRatio := algo.SafeRatio(float64(m.TotalDeletions), float64(m.TotalAdditions))
	avgChurn := algo.SafeRatio(totalChanged, float64(windowCommits))
	m.DeletionRatio = algo.Round2(deletionRatio)
	m.AvgChurnPerCommit = algo.Round2(avgChurn)
	m.Score = a.churnScore(m, avgChurn, deletionRatio)

	return m, nil
}

// churnScore starts from 100 and deducts capped penalties for oversized
// commits, high-churn file concentration, and net-deletion instability.
func (a *CodeChurnAnalyzer) churnScore(m *schema.ChurnMetrics, avgChurn, deletionRatio float64) float64 {
	score := 100.0

	// Proportional to overshoot past the configured per-commit threshold.
	if threshold := a.cfg.ChurnPerCommitThreshold; avgChurn > threshold {
		score -= math.Min(40, 40*(avgChurn-threshold)/threshold)
	}

	if excess := m.HighChurnFileCount - a.cfg.MaxHighChurnFiles; excess > 0 {
		score -= math.Min(30, 5*float64(excess))
	}

	// More deletions than additions suggests instability.
	if deletionRatio > 1 {
		score -= math.Min(30, 30*(deletionRatio-1))
	}

	return algo.Round2(algo.Clamp(score))
}
