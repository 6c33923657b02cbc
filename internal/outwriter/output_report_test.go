package outwriter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *schema.AnalysisReport {
	return &schema.AnalysisReport{
		Repository: "acme/widgets",
		AnalyzedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		HealthScore: schema.HealthScore{
			Overall:           71.26,
			Activity:          93.83,
			IssueHealth:       75,
			CodeQuality:       60,
			ContributorHealth: 41,
		},
		ActivityMetrics: &schema.ActivityMetrics{
			WindowDays: 30, Commits: 12, PRsOpened: 5, MergeRate: 0.8,
			ActiveContributors: 6, Score: 93.83,
		},
		IssueMetrics: &schema.IssueMetrics{
			TotalOpenIssues: 6, Stagnant90Days: 2, MedianOpenAgeDays: 45, Score: 75,
		},
		ChurnMetrics: &schema.ChurnMetrics{
			WindowDays: 90,
			HotspotFiles: []schema.HotspotFile{
				{Path: "core/engine.go", ChangedLines: 240, Commits: 2},
				{Path: "docs/readme.md", ChangedLines: 60, Commits: 1},
			},
			Score: 60,
		},
		ContributorMetrics: &schema.ContributorMetrics{
			TotalContributors: 3, BusFactor: 2, CoreContributors: 3, Score: 41,
		},
	}
}

func plainConfig() *contract.Config {
	cfg := contract.DefaultConfig()
	cfg.UseColors = false
	return cfg
}

func TestWriteReportText(t *testing.T) {
	var buf bytes.Buffer
	err := writeReportText(&buf, sampleReport(), plainConfig(), 1200*time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "acme/widgets")
	assert.Contains(t, out, "Overall")
	assert.Contains(t, out, "71.26")
	assert.Contains(t, out, "Good")
	assert.Contains(t, out, "core/engine.go")
	assert.Contains(t, out, "bus factor 2")
	assert.Contains(t, out, "Completed in 1.20s")
}

func TestWriteReportTextSkipsEmptySections(t *testing.T) {
	report := sampleReport()
	report.IssueMetrics.TotalOpenIssues = 0
	report.ChurnMetrics.HotspotFiles = nil

	var buf bytes.Buffer
	err := writeReportText(&buf, report, plainConfig(), time.Second)
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "stagnant")
	assert.NotContains(t, out, "hotspots")
}

func TestWriteReportCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeReportCSV(&buf, sampleReport())
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	// Header plus overall and four components.
	require.Len(t, records, 6)
	assert.Equal(t, "component", records[0][2])
	assert.Equal(t, "overall", records[1][2])
	assert.Equal(t, "71.26", records[1][3])
	assert.Equal(t, "Good", records[1][4])
	assert.Equal(t, schema.ContributorComponent, records[5][2])
}

func TestReportYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeYAML(&buf, sampleReport()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "acme/widgets", decoded["repository"])
}

func TestPrintReportToFile(t *testing.T) {
	cfg := plainConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, PrintReport(sampleReport(), cfg, time.Second))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"repository": "acme/widgets"`)
	assert.Contains(t, string(data), `"overall": 71.26`)
}

func TestWriteRunsCSV(t *testing.T) {
	runs := []schema.ReportRun{
		{
			ID: 1, Repository: "acme/widgets",
			AnalyzedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			Overall:    71.26, Activity: 93.83, IssueHealth: 75,
			CodeQuality: 60, ContributorHealth: 41, DurationMs: 1200,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeRunsCSV(&buf, runs))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "71.26", records[1][3])
	assert.Equal(t, "1200", records[1][8])
}

func TestWriteRunsTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRunsTable(&buf, nil, plainConfig()))
	assert.Contains(t, buf.String(), "No stored runs yet")
}

func TestWriteScoringModelText(t *testing.T) {
	var buf bytes.Buffer
	model := buildScoringModel(plainConfig())
	require.NoError(t, writeScoringModelText(&buf, model))

	out := buf.String()
	for _, component := range []string{"ACTIVITY", "ISSUE_HEALTH", "CODE_QUALITY", "CONTRIBUTOR_HEALTH"} {
		assert.Contains(t, out, component)
	}
	assert.Contains(t, out, "0.30")
}

func TestBuildScoringModelUsesActiveWeights(t *testing.T) {
	cfg := plainConfig()
	cfg.Weights = contract.Weights{Activity: 1.0}

	model := buildScoringModel(cfg)
	assert.Equal(t, 1.0, model.Components[0].Weight)
	assert.Zero(t, model.Components[1].Weight)
}

func TestScoreLabelRespectsColorSetting(t *testing.T) {
	cfg := plainConfig()
	assert.Equal(t, "Excellent", scoreLabel(95, cfg))
	assert.Equal(t, "Fair", scoreLabel(45, cfg))
	assert.Equal(t, "Poor", scoreLabel(10, cfg))
}
