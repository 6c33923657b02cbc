// Package core implements the health scoring engine: four analyzers that
// turn raw repository records into normalized metrics, and the weighted
// aggregation that combines them into a single 0-100 score.
package core

import (
	"time"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// Analyzer is the shared contract implemented by the four analyzers.
// Each one is a pure function of its slice of the record set plus "now";
// they share no mutable state and have no ordering dependency, so the
// orchestrator may run them sequentially or in parallel.
type Analyzer interface {
	// Name returns the sub-score name this analyzer produces.
	Name() string

	// Analyze computes the analyzer's metrics and sub-score. It never
	// mutates the record set.
	Analyze(set *schema.RawRecordSet, now time.Time) (schema.Metrics, error)
}

// windowStart returns the start of a trailing window of the given day count.
func windowStart(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

// inWindow reports whether ts falls within [start, now].
func inWindow(ts, start, now time.Time) bool {
	return !ts.Before(start) && !ts.After(now)
}

// validateCommits rejects commit records with missing required fields,
// attributing the failure to the calling analyzer.
func validateCommits(component string, commits []schema.Commit) error {
	for i := range commits {
		c := &commits[i]
		if c.SHA == "" {
			return contract.NewDataShapeError(component, "sha", i)
		}
		if c.AuthoredAt.IsZero() {
			return contract.NewDataShapeError(component, "authored_at", i)
		}
	}
	return nil
}

// validateIssues rejects issue records with missing required fields.
func validateIssues(component string, issues []schema.Issue) error {
	for i := range issues {
		if issues[i].CreatedAt.IsZero() {
			return contract.NewDataShapeError(component, "created_at", i)
		}
		if issues[i].State == "" {
			return contract.NewDataShapeError(component, "state", i)
		}
	}
	return nil
}

// validatePullRequests rejects pull request records with missing required fields.
func validatePullRequests(component string, prs []schema.PullRequest) error {
	for i := range prs {
		if prs[i].CreatedAt.IsZero() {
			return contract.NewDataShapeError(component, "created_at", i)
		}
	}
	return nil
}

// validateContributors rejects contributor records with missing required fields.
func validateContributors(component string, contributors []schema.Contributor) error {
	for i := range contributors {
		if contributors[i].Login == "" {
			return contract.NewDataShapeError(component, "login", i)
		}
	}
	return nil
}
