package core

import (
	"math"
	"time"

	"github.com/repopulse/repopulse/core/algo"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// Stagnation age thresholds in days. Buckets are cumulative: an issue past
// 180 days also counts in the 90 and 30 day buckets, which keeps the
// counts monotonically non-increasing with the threshold.
const (
	stagnant30Threshold  = 30
	stagnant90Threshold  = 90
	stagnant180Threshold = 180
)

// closeTimePenaltySpanDays is the overage span across which the close-time
// penalty grows linearly to its cap: the full 30 points are deducted once
// the average close time reaches target + 90 days.
const closeTimePenaltySpanDays = 90.0

// IssueStagnationAnalyzer classifies open issues by age bucket, computes
// close-time statistics, and produces the issue-health sub-score.
type IssueStagnationAnalyzer struct {
	cfg *contract.Config
}

// NewIssueStagnationAnalyzer creates an issue analyzer for the given config.
func NewIssueStagnationAnalyzer(cfg *contract.Config) *IssueStagnationAnalyzer {
	return &IssueStagnationAnalyzer{cfg: cfg}
}

// Name implements Analyzer.
func (a *IssueStagnationAnalyzer) Name() string { return schema.IssueComponent }

// Analyze implements Analyzer.
func (a *IssueStagnationAnalyzer) Analyze(set *schema.RawRecordSet, now time.Time) (schema.Metrics, error) {
	if err := validateIssues(a.Name(), set.Issues); err != nil {
		return nil, err
	}

	m := &schema.IssueMetrics{}
	var openAges []float64
	var closeHoursSum float64
	var closedCount int

	for i := range set.Issues {
		is := &set.Issues[i]
		if is.IsOpen() {
			ageDays := now.Sub(is.CreatedAt).Hours() / 24
			m.TotalOpenIssues++
			openAges = append(openAges, ageDays)

			if ageDays >= stagnant30Threshold {
				m.Stagnant30Days++
			}
			if ageDays >= stagnant90Threshold {
				m.Stagnant90Days++
			}
			if ageDays >= stagnant180Threshold {
				m.Stagnant180Days++
			}
			if ageDays >= float64(a.cfg.StagnationThresholdDays) {
				m.StagnantIssueNumbers = append(m.StagnantIssueNumbers, is.Number)
			}
			continue
		}

		// Closed issues without a close timestamp carry no close-time signal.
		if is.ClosedAt != nil {
			closeHoursSum += is.ClosedAt.Sub(is.CreatedAt).Hours()
			closedCount++
		}
	}

	avgCloseHours := algo.SafeRatio(closeHoursSum, float64(closedCount))
	m.AvgCloseTimeHours = algo.Round2(avgCloseHours)
	m.MedianOpenAgeDays = algo.Round2(algo.Median(openAges))
	m.Score = a.issueScore(m, avgCloseHours)

	return m, nil
}

// issueScore starts from 100 and deducts proportional stagnation penalties
// plus a close-time penalty that grows linearly past the configured target.
func (a *IssueStagnationAnalyzer) issueScore(m *schema.IssueMetrics, avgCloseHours float64) float64 {
	score := 100.0

	if m.TotalOpenIssues > 0 {
		open := float64(m.TotalOpenIssues)
		score -= float64(m.Stagnant90Days) / open * 30
		score -= float64(m.Stagnant180Days) / open * 20
	}

	avgCloseDays := avgCloseHours / 24
	if target := a.cfg.CloseTimeTargetDays; avgCloseDays > target {
		score -= 30 * math.Min(1, (avgCloseDays-target)/closeTimePenaltySpanDays)
	}

	return algo.Round2(algo.Clamp(score))
}
