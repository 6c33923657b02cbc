package schema

import "time"

// ReportRun represents one stored analysis run row.
type ReportRun struct {
	ID                int64     `json:"id"`
	Repository        string    `json:"repository"`
	AnalyzedAt        time.Time `json:"analyzed_at"`
	Overall           float64   `json:"overall"`
	Activity          float64   `json:"activity"`
	IssueHealth       float64   `json:"issue_health"`
	CodeQuality       float64   `json:"code_quality"`
	ContributorHealth float64   `json:"contributor_health"`
	DurationMs        int64     `json:"duration_ms"`
}
