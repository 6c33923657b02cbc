package contract

import (
	"context"
	"time"

	"github.com/repopulse/repopulse/schema"
)

// RepoSource is the data-fetch collaborator. It returns decoded,
// page-flattened records for one repository; pagination termination and
// rate-limit handling live behind this interface, not in the engine.
type RepoSource interface {
	FetchRecordSet(ctx context.Context, cfg *Config) (*schema.RawRecordSet, error)
}

// ReportStore persists analysis reports for later inspection and export.
// Implementations must be safe to call with a nil receiver check via
// NoneBackend no-op stores.
type ReportStore interface {
	// RecordReport stores one report and returns the new run ID.
	RecordReport(report *schema.AnalysisReport, duration time.Duration) (int64, error)

	// ListRuns returns up to limit stored runs, newest first.
	ListRuns(limit int) ([]schema.ReportRun, error)

	// Close releases the underlying database handle.
	Close() error
}
