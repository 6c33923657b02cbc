package core

import (
	"testing"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzeChurn(t *testing.T, cfg *contract.Config, commits []schema.Commit) *schema.ChurnMetrics {
	t.Helper()
	a := NewCodeChurnAnalyzer(cfg)
	metrics, err := a.Analyze(&schema.RawRecordSet{Commits: commits}, testNow)
	require.NoError(t, err)
	return metrics.(*schema.ChurnMetrics)
}

func TestChurnNoCommits(t *testing.T) {
	m := analyzeChurn(t, contract.DefaultConfig(), nil)

	assert.Zero(t, m.TotalAdditions)
	assert.Zero(t, m.DeletionRatio)
	assert.Zero(t, m.AvgChurnPerCommit)
	assert.Empty(t, m.HotspotFiles)
	// No penalties without commits.
	assert.Equal(t, 100.0, m.Score)
}

func TestChurnAggregationAndHotspots(t *testing.T) {
	commits := []schema.Commit{
		{
			SHA: "c1", AuthorLogin: "dev0", AuthoredAt: daysAgo(5),
			Additions: 150, Deletions: 50,
			Files: []schema.CommitFile{
				{Path: "core/engine.go", Additions: 100, Deletions: 40},
				{Path: "docs/readme.md", Additions: 50, Deletions: 10},
			},
		},
		{
			SHA: "c2", AuthorLogin: "dev1", AuthoredAt: daysAgo(3),
			Additions: 80, Deletions: 20,
			Files: []schema.CommitFile{
				{Path: "core/engine.go", Additions: 80, Deletions: 20},
			},
		},
	}

	m := analyzeChurn(t, contract.DefaultConfig(), commits)

	assert.Equal(t, 2, m.TotalFilesChanged)
	assert.Equal(t, 230, m.TotalAdditions)
	assert.Equal(t, 70, m.TotalDeletions)
	assert.InDelta(t, 150.0, m.AvgChurnPerCommit, 0.01)

	require.NotEmpty(t, m.HotspotFiles)
	top := m.HotspotFiles[0]
	assert.Equal(t, "core/engine.go", top.Path)
	assert.Equal(t, 240, top.ChangedLines)
	assert.Equal(t, 2, top.Commits)
}

func TestChurnHotspotLimit(t *testing.T) {
	cfg := contract.DefaultConfig()
	cfg.HotspotLimit = 3

	var files []schema.CommitFile
	for i := range 8 {
		files = append(files, schema.CommitFile{
			Path:      string(rune('a'+i)) + ".go",
			Additions: (i + 1) * 10,
		})
	}
	commits := []schema.Commit{
		{SHA: "c1", AuthorLogin: "dev0", AuthoredAt: daysAgo(2), Files: files},
	}

	m := analyzeChurn(t, cfg, commits)
	assert.Len(t, m.HotspotFiles, 3)
	assert.Equal(t, "h.go", m.HotspotFiles[0].Path)
}

func TestChurnDeletionRatioZeroWhenNoAdditions(t *testing.T) {
	commits := []schema.Commit{
		{SHA: "c1", AuthorLogin: "dev0", AuthoredAt: daysAgo(2), Deletions: 500},
	}

	m := analyzeChurn(t, contract.DefaultConfig(), commits)
	// Defined policy: the ratio evaluates to 0 on an empty denominator.
	assert.Equal(t, 0.0, m.DeletionRatio)
}

func TestChurnScorePenalties(t *testing.T) {
	tests := []struct {
		name          string
		additions     int
		deletions     int
		expectedScore float64
	}{
		{
			name:      "moderate churn no penalty",
			additions: 200, deletions: 100,
			expectedScore: 100,
		},
		{
			name:      "double threshold caps commit size penalty",
			additions: 900, deletions: 100,
			expectedScore: 60, // overshoot 500/500 -> full 40 points
		},
		{
			name:      "net deletion penalty",
			additions: 100, deletions: 150,
			expectedScore: 85, // ratio 1.5 -> 30*0.5 deducted
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commits := []schema.Commit{
				{
					SHA: "c1", AuthorLogin: "dev0", AuthoredAt: daysAgo(4),
					Additions: tt.additions, Deletions: tt.deletions,
				},
			}

			m := analyzeChurn(t, contract.DefaultConfig(), commits)
			assert.InDelta(t, tt.expectedScore, m.Score, 0.01)
		})
	}
}

func TestChurnHighChurnConcentrationPenalty(t *testing.T) {
	cfg := contract.DefaultConfig()
	cfg.MaxHighChurnFiles = 2

	// Three commits all touching the same four files: every file appears
	// in 100% of commits, well past the 20% share floor.
	var commits []schema.Commit
	for i := range 3 {
		commits = append(commits, schema.Commit{
			SHA:         string(rune('a' + i)),
			AuthorLogin: "dev0",
			AuthoredAt:  daysAgo(i + 1),
			Files: []schema.CommitFile{
				{Path: "w.go", Additions: 10},
				{Path: "x.go", Additions: 10},
				{Path: "y.go", Additions: 10},
				{Path: "z.go", Additions: 10},
			},
		})
	}

	m := analyzeChurn(t, cfg, commits)
	assert.Equal(t, 4, m.HighChurnFileCount)
	// Two files over the max at 5 points each.
	assert.InDelta(t, 90.0, m.Score, 0.01)
}

func TestChurnWindowFiltering(t *testing.T) {
	commits := []schema.Commit{
		{SHA: "recent", AuthorLogin: "dev0", AuthoredAt: daysAgo(10), Additions: 100},
		{SHA: "stale", AuthorLogin: "dev0", AuthoredAt: daysAgo(365), Additions: 9999},
	}

	m := analyzeChurn(t, contract.DefaultConfig(), commits)
	assert.Equal(t, 100, m.TotalAdditions)
}

func TestChurnRejectsMalformedCommit(t *testing.T) {
	a := NewCodeChurnAnalyzer(contract.DefaultConfig())
	_, err := a.Analyze(&schema.RawRecordSet{
		Commits: []schema.Commit{{AuthoredAt: daysAgo(1)}}, // missing sha
	}, testNow)

	var shapeErr *contract.DataShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, schema.ChurnComponent, shapeErr.Component)
	assert.Equal(t, "sha", shapeErr.Field)
}
