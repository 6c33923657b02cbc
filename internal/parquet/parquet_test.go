package parquet

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/repopulse/repopulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRuns() []schema.ReportRun {
	return []schema.ReportRun{
		{
			ID: 1, Repository: "acme/widgets",
			AnalyzedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			Overall:    71.26, Activity: 93.83, IssueHealth: 75,
			CodeQuality: 60, ContributorHealth: 41, DurationMs: 1200,
		},
		{
			ID: 2, Repository: "acme/gadgets",
			AnalyzedAt: time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
			Overall:    55.5, Activity: 40, IssueHealth: 80,
			CodeQuality: 50, ContributorHealth: 52, DurationMs: 900,
		},
	}
}

func TestFromSchemaRuns(t *testing.T) {
	rows := FromSchemaRuns(sampleRuns())

	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].RunID)
	assert.Equal(t, "acme/widgets", rows[0].Repository)
	assert.InDelta(t, 71.26, rows[0].Overall, 0.001)
	assert.Equal(t, int64(900), rows[1].DurationMs)
}

func TestWriteAndReadReportRunsParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.parquet")
	rows := FromSchemaRuns(sampleRuns())

	require.NoError(t, WriteReportRunsParquet(rows, path))

	decoded, err := ReadReportRunsParquet(path)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, rows[0].Repository, decoded[0].Repository)
	assert.InDelta(t, rows[0].Overall, decoded[0].Overall, 0.001)
	assert.Equal(t, rows[1].RunID, decoded[1].RunID)
}

func TestWriteReportRunsParquetEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteReportRunsParquet(nil, path))

	decoded, err := ReadReportRunsParquet(path)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestWriteReportRunsParquetBadPath(t *testing.T) {
	err := WriteReportRunsParquet(FromSchemaRuns(sampleRuns()), "/nonexistent/dir/runs.parquet")
	assert.Error(t, err)
}
