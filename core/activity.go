package core

import (
	"math"
	"time"

	"github.com/repopulse/repopulse/core/algo"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// RepoActivityAnalyzer counts and classifies commits, pull requests and
// issues within a rolling window and computes the activity sub-score.
//
// Scoring factors:
// - Commit frequency (40 points, saturates at 10 commits/window)
// - PR activity (25 points, merge rate gated by a minimum of 5 opened PRs)
// - Issue management (20 points, close rate)
// - Active contributors (15 points, saturates at 5)
type RepoActivityAnalyzer struct {
	cfg *contract.Config
}

// NewRepoActivityAnalyzer creates an activity analyzer for the given config.
func NewRepoActivityAnalyzer(cfg *contract.Config) *RepoActivityAnalyzer {
	return &RepoActivityAnalyzer{cfg: cfg}
}

// Name implements Analyzer.
func (a *RepoActivityAnalyzer) Name() string { return schema.ActivityComponent }

// Analyze implements Analyzer.
func (a *RepoActivityAnalyzer) Analyze(set *schema.RawRecordSet, now time.Time) (schema.Metrics, error) {
	if err := validateCommits(a.Name(), set.Commits); err != nil {
		return nil, err
	}
	if err := validatePullRequests(a.Name(), set.PullRequests); err != nil {
		return nil, err
	}
	if err := validateIssues(a.Name(), set.Issues); err != nil {
		return nil, err
	}

	start := windowStart(now, a.cfg.ActivityPeriodDays)
	start90 := windowStart(now, 90)

	m := &schema.ActivityMetrics{WindowDays: a.cfg.ActivityPeriodDays}

	authors := make(map[string]struct{})
	for i := range set.Commits {
		c := &set.Commits[i]
		if inWindow(c.AuthoredAt, start90, now) {
			m.Commits90Days++
		}
		if !inWindow(c.AuthoredAt, start, now) {
			continue
		}
		m.Commits++
		if key := c.AuthorKey(); key != "" {
			authors[key] = struct{}{}
		}
	}
	m.ActiveContributors = len(authors)

	for i := range set.PullRequests {
		pr := &set.PullRequests[i]
		if inWindow(pr.CreatedAt, start, now) {
			m.PRsOpened++
		}
		if pr.MergedAt != nil && inWindow(*pr.MergedAt, start, now) {
			m.PRsMerged++
		}
	}

	for i := range set.Issues {
		is := &set.Issues[i]
		if inWindow(is.CreatedAt, start, now) {
			m.IssuesOpened++
		}
		if is.ClosedAt != nil && inWindow(*is.ClosedAt, start, now) {
			m.IssuesClosed++
		}
	}

	mergeRate := algo.SafeRatio(float64(m.PRsMerged), float64(m.PRsOpened))
	closeRate := algo.SafeRatio(float64(m.IssuesClosed), float64(m.IssuesOpened))
	m.MergeRate = algo.Round2(mergeRate)
	m.IssueCloseRate = algo.Round2(closeRate)
	m.Score = activityScore(m, mergeRate, closeRate)

	return m, nil
}

// activityScore computes the 0-100 activity sub-score. Components are
// capped individually, then the sum is clamped.
func activityScore(m *schema.ActivityMetrics, mergeRate, closeRate float64) float64 {
	commitComp := math.Min(40, float64(m.Commits)/10*40)

	// PR activity must meet a minimum volume before the merge rate counts fully.
	prComp := mergeRate * 25
	if m.PRsOpened < 5 {
		prComp *= float64(m.PRsOpened) / 5
	}
	prComp = math.Min(25, prComp)

	issueComp := math.Min(20, closeRate*20)
	contribComp := math.Min(15, float64(m.ActiveContributors)/5*15)

	return algo.Round2(algo.Clamp(commitComp + prComp + issueComp + contribComp))
}
