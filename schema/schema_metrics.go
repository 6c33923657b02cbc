package schema

// Metrics is the shared contract implemented by every analyzer output.
// The four analyzers are interchangeable from the orchestrator's point of
// view: plain data in, one metric object plus a sub-score out.
type Metrics interface {
	// Component returns the sub-score name this metric object belongs to.
	Component() string

	// SubScore returns the analyzer's sub-score, clamped to [0,100].
	SubScore() float64
}

// ActivityMetrics captures commit, pull request, issue and contributor
// activity within the configured trailing window.
type ActivityMetrics struct {
	WindowDays         int     `json:"window_days"`
	Commits            int     `json:"commits"`
	Commits90Days      int     `json:"commits_90_days"`
	PRsOpened          int     `json:"prs_opened"`
	PRsMerged          int     `json:"prs_merged"`
	MergeRate          float64 `json:"merge_rate"`
	IssuesOpened       int     `json:"issues_opened"`
	IssuesClosed       int     `json:"issues_closed"`
	IssueCloseRate     float64 `json:"issue_close_rate"`
	ActiveContributors int     `json:"active_contributors"`
	Score              float64 `json:"score"`
}

// Component implements Metrics.
func (m *ActivityMetrics) Component() string { return ActivityComponent }

// SubScore implements Metrics.
func (m *ActivityMetrics) SubScore() float64 { return m.Score }

// IssueMetrics captures open-issue stagnation and close-time behavior.
// Stagnant counts are cumulative: an issue older than 180 days also counts
// in the 90 and 30 day buckets.
type IssueMetrics struct {
	TotalOpenIssues      int     `json:"total_open_issues"`
	Stagnant30Days       int     `json:"stagnant_30_days"`
	Stagnant90Days       int     `json:"stagnant_90_days"`
	Stagnant180Days      int     `json:"stagnant_180_days"`
	AvgCloseTimeHours    float64 `json:"avg_close_time_hours"`
	MedianOpenAgeDays    float64 `json:"median_open_age_days"`
	StagnantIssueNumbers []int   `json:"stagnant_issue_numbers,omitempty"`
	Score                float64 `json:"score"`
}

// Component implements Metrics.
func (m *IssueMetrics) Component() string { return IssueComponent }

// SubScore implements Metrics.
func (m *IssueMetrics) SubScore() float64 { return m.Score }

// HotspotFile is one entry of the churn-ranked hotspot list.
type HotspotFile struct {
	Path         string `json:"path"`
	ChangedLines int    `json:"changed_lines"`
	Commits      int    `json:"commits"`
}

// ChurnMetrics captures line-delta aggregates and hotspot ranking across
// the churn window.
type ChurnMetrics struct {
	WindowDays         int           `json:"window_days"`
	TotalFilesChanged  int           `json:"total_files_changed"`
	TotalAdditions     int           `json:"total_additions"`
	TotalDeletions     int           `json:"total_deletions"`
	DeletionRatio      float64       `json:"deletion_ratio"`
	AvgChurnPerCommit  float64       `json:"avg_churn_per_commit"`
	HighChurnFileCount int           `json:"high_churn_file_count"`
	HotspotFiles       []HotspotFile `json:"hotspot_files,omitempty"`
	Score              float64       `json:"score"`
}

// Component implements Metrics.
func (m *ChurnMetrics) Component() string { return ChurnComponent }

// SubScore implements Metrics.
func (m *ChurnMetrics) SubScore() float64 { return m.Score }

// ContributorMetrics captures contributor concentration and growth.
type ContributorMetrics struct {
	TotalContributors  int            `json:"total_contributors"`
	ActiveContributors int            `json:"active_contributors"`
	NewContributors    int            `json:"new_contributors"`
	CoreContributors   int            `json:"core_contributors"`
	BusFactor          int            `json:"bus_factor"`
	ContributionGini   float64        `json:"contribution_gini"`
	TopContributors    map[string]int `json:"top_contributors,omitempty"`
	Score              float64        `json:"score"`
}

// Component implements Metrics.
func (m *ContributorMetrics) Component() string { return ContributorComponent }

// SubScore implements Metrics.
func (m *ContributorMetrics) SubScore() float64 { return m.Score }
