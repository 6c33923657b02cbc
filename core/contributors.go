package core

import (
	"math"
	"sort"
	"time"

	"github.com/repopulse/repopulse/core/algo"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// topContributorCount bounds the size of the contribution distribution map.
const topContributorCount = 10

// ContributorPatternsAnalyzer computes contributor concentration (bus
// factor), growth, and the contributor-health sub-score.
type ContributorPatternsAnalyzer struct {
	cfg *contract.Config
}

// NewContributorPatternsAnalyzer creates a contributor analyzer for the
// given config.
func NewContributorPatternsAnalyzer(cfg *contract.Config) *ContributorPatternsAnalyzer {
	return &ContributorPatternsAnalyzer{cfg: cfg}
}

// Name implements Analyzer.
func (a *ContributorPatternsAnalyzer) Name() string { return schema.ContributorComponent }

// Analyze implements Analyzer.
func (a *ContributorPatternsAnalyzer) Analyze(set *schema.RawRecordSet, now time.Time) (schema.Metrics, error) {
	if err := validateContributors(a.Name(), set.Contributors); err != nil {
		return nil, err
	}
	if err := validateCommits(a.Name(), set.Commits); err != nil {
		return nil, err
	}

	m := &schema.ContributorMetrics{TotalContributors: len(set.Contributors)}

	counts := make([]int, 0, len(set.Contributors))
	var total int
	for i := range set.Contributors {
		counts = append(counts, set.Contributors[i].Contributions)
		total += set.Contributors[i].Contributions
	}

	m.BusFactor = algo.BusFactor(counts)

	if total > 0 {
		for i := range set.Contributors {
			share := float64(set.Contributors[i].Contributions) / float64(total)
			if share >= a.cfg.CoreShare {
				m.CoreContributors++
			}
		}
	}

	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = float64(c)
	}
	m.ContributionGini = algo.Round2(algo.Gini(values))
	m.TopContributors = topContributors(set.Contributors)

	// Activity and growth come from the commit history, not the lifetime
	// contributor list: a new contributor is one whose first-ever commit
	// falls inside the window.
	start := windowStart(now, a.cfg.ActivityPeriodDays)
	firstSeen := make(map[string]time.Time)
	activeSet := make(map[string]struct{})
	for i := range set.Commits {
		c := &set.Commits[i]
		key := c.AuthorKey()
		if key == "" {
			continue
		}
		if seen, ok := firstSeen[key]; !ok || c.AuthoredAt.Before(seen) {
			firstSeen[key] = c.AuthoredAt
		}
		if inWindow(c.AuthoredAt, start, now) {
			activeSet[key] = struct{}{}
		}
	}
	m.ActiveContributors = len(activeSet)
	for _, first := range firstSeen {
		if inWindow(first, start, now) {
			m.NewContributors++
		}
	}

	m.Score = contributorScore(m)
	return m, nil
}

// topContributors builds the contribution distribution map of the highest
// lifetime contributors.
func topContributors(contributors []schema.Contributor) map[string]int {
	if len(contributors) == 0 {
		return nil
	}
	sorted := make([]schema.Contributor, len(contributors))
	copy(sorted, contributors)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Contributions != sorted[j].Contributions {
			return sorted[i].Contributions > sorted[j].Contributions
		}
		return sorted[i].Login < sorted[j].Login
	})

	n := min(topContributorCount, len(sorted))
	dist := make(map[string]int, n)
	for _, c := range sorted[:n] {
		dist[c.Login] = c.Contributions
	}
	return dist
}

// contributorScore computes the 0-100 contributor-health sub-score from
// capped additive components.
func contributorScore(m *schema.ContributorMetrics) float64 {
	activeComp := math.Min(40, float64(m.ActiveContributors)/10*40)
	busComp := math.Min(30, float64(m.BusFactor)/5*30)
	coreComp := math.Min(15, float64(m.CoreContributors)/5*15)
	newComp := math.Min(15, float64(m.NewContributors)/3*15)

	return algo.Round2(algo.Clamp(activeComp + busComp + coreComp + newComp))
}
