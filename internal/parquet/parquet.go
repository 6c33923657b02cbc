// Package parquet exports stored report runs to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/repopulse/repopulse/schema"
)

// ReportRun represents a single stored health report run. This struct
// maps to the repopulse_runs database table.
type ReportRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// Repository is the "owner/name" identifier of the analyzed repo
	Repository string `parquet:"repository,snappy"`

	// AnalyzedAt is when the analysis ran (stored as TIMESTAMP with nanosecond precision)
	AnalyzedAt time.Time `parquet:"analyzed_at,snappy"`

	// Overall is the weighted 0-100 health score
	Overall float64 `parquet:"overall,snappy"`

	// Activity is the activity sub-score
	Activity float64 `parquet:"activity,snappy"`

	// IssueHealth is the issue stagnation sub-score
	IssueHealth float64 `parquet:"issue_health,snappy"`

	// CodeQuality is the code churn sub-score
	CodeQuality float64 `parquet:"code_quality,snappy"`

	// ContributorHealth is the contributor patterns sub-score
	ContributorHealth float64 `parquet:"contributor_health,snappy"`

	// DurationMs is the wall-clock duration of the run in milliseconds
	DurationMs int64 `parquet:"duration_ms,snappy"`
}

// FromSchemaRuns converts stored runs into their Parquet row form.
func FromSchemaRuns(runs []schema.ReportRun) []ReportRun {
	rows := make([]ReportRun, len(runs))
	for i, run := range runs {
		rows[i] = ReportRun{
			RunID:             run.ID,
			Repository:        run.Repository,
			AnalyzedAt:        run.AnalyzedAt,
			Overall:           run.Overall,
			Activity:          run.Activity,
			IssueHealth:       run.IssueHealth,
			CodeQuality:       run.CodeQuality,
			ContributorHealth: run.ContributorHealth,
			DurationMs:        run.DurationMs,
		}
	}
	return rows
}

// WriteReportRunsParquet writes a slice of ReportRun structs to a Parquet file.
func WriteReportRunsParquet(data []ReportRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the ReportRun struct tags
	writer := parquet.NewGenericWriter[ReportRun](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ReadReportRunsParquet reads ReportRun rows back from a Parquet file.
func ReadReportRunsParquet(inputPath string) ([]ReportRun, error) {
	rows, err := parquet.ReadFile[ReportRun](inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	return rows, nil
}
