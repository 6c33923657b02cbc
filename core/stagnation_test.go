package core

import (
	"testing"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzeIssues(t *testing.T, issues []schema.Issue) *schema.IssueMetrics {
	t.Helper()
	a := NewIssueStagnationAnalyzer(contract.DefaultConfig())
	metrics, err := a.Analyze(&schema.RawRecordSet{Issues: issues}, testNow)
	require.NoError(t, err)
	return metrics.(*schema.IssueMetrics)
}

func TestStagnationEmptyIssueSet(t *testing.T) {
	m := analyzeIssues(t, nil)

	assert.Zero(t, m.TotalOpenIssues)
	assert.Zero(t, m.Stagnant30Days)
	assert.Zero(t, m.AvgCloseTimeHours)
	assert.Zero(t, m.MedianOpenAgeDays)
	// No penalties apply, so issue health is perfect.
	assert.Equal(t, 100.0, m.Score)
}

func TestStagnationBuckets(t *testing.T) {
	issues := []schema.Issue{
		{Number: 1, State: schema.IssueOpen, CreatedAt: daysAgo(10)},
		{Number: 2, State: schema.IssueOpen, CreatedAt: daysAgo(45)},
		{Number: 3, State: schema.IssueOpen, CreatedAt: daysAgo(120)},
		{Number: 4, State: schema.IssueOpen, CreatedAt: daysAgo(400)},
	}

	m := analyzeIssues(t, issues)

	assert.Equal(t, 4, m.TotalOpenIssues)
	assert.Equal(t, 3, m.Stagnant30Days)
	assert.Equal(t, 2, m.Stagnant90Days)
	assert.Equal(t, 1, m.Stagnant180Days)

	// Buckets are cumulative, so counts shrink as the threshold grows.
	assert.LessOrEqual(t, m.Stagnant180Days, m.Stagnant90Days)
	assert.LessOrEqual(t, m.Stagnant90Days, m.Stagnant30Days)

	// The stagnant list keys off the configured 90-day threshold.
	assert.Equal(t, []int{3, 4}, m.StagnantIssueNumbers)
}

func TestStagnationPenalties(t *testing.T) {
	// Two open issues, one past 90d and 180d; rates are 0.5 each.
	issues := []schema.Issue{
		{Number: 1, State: schema.IssueOpen, CreatedAt: daysAgo(5)},
		{Number: 2, State: schema.IssueOpen, CreatedAt: daysAgo(365)},
	}

	m := analyzeIssues(t, issues)

	// 100 - 0.5*30 - 0.5*20 = 75
	assert.InDelta(t, 75.0, m.Score, 0.01)
}

func TestStagnationCloseTimePenalty(t *testing.T) {
	tests := []struct {
		name           string
		closeAfterDays int
		expectedScore  float64
	}{
		{name: "fast close no penalty", closeAfterDays: 10, expectedScore: 100},
		{name: "at target no penalty", closeAfterDays: 30, expectedScore: 100},
		{name: "60 day average", closeAfterDays: 60, expectedScore: 90},
		{name: "saturated penalty", closeAfterDays: 400, expectedScore: 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := daysAgo(500)
			closed := created.AddDate(0, 0, tt.closeAfterDays)
			issues := []schema.Issue{
				{Number: 1, State: schema.IssueClosed, CreatedAt: created, ClosedAt: &closed},
			}

			m := analyzeIssues(t, issues)
			assert.InDelta(t, tt.expectedScore, m.Score, 0.01)
			assert.InDelta(t, float64(tt.closeAfterDays)*24, m.AvgCloseTimeHours, 0.01)
		})
	}
}

func TestStagnationMedianOpenAge(t *testing.T) {
	issues := []schema.Issue{
		{Number: 1, State: schema.IssueOpen, CreatedAt: daysAgo(10)},
		{Number: 2, State: schema.IssueOpen, CreatedAt: daysAgo(20)},
		{Number: 3, State: schema.IssueOpen, CreatedAt: daysAgo(200)},
	}

	m := analyzeIssues(t, issues)
	assert.InDelta(t, 20.0, m.MedianOpenAgeDays, 0.01)
}

func TestStagnationClosedWithoutTimestampIsSkipped(t *testing.T) {
	issues := []schema.Issue{
		{Number: 1, State: schema.IssueClosed, CreatedAt: daysAgo(50)},
	}

	m := analyzeIssues(t, issues)
	assert.Zero(t, m.AvgCloseTimeHours)
	assert.Equal(t, 100.0, m.Score)
}

func TestStagnationRejectsMalformedIssue(t *testing.T) {
	a := NewIssueStagnationAnalyzer(contract.DefaultConfig())
	_, err := a.Analyze(&schema.RawRecordSet{
		Issues: []schema.Issue{{Number: 7, State: schema.IssueOpen}},
	}, testNow)

	var shapeErr *contract.DataShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, schema.IssueComponent, shapeErr.Component)
}
