package schema

import (
	"encoding/json"
	"time"
)

// HealthScore holds the four sub-scores and the weighted overall score.
// Every value is clamped to [0,100].
type HealthScore struct {
	Overall           float64 `json:"overall"`
	Activity          float64 `json:"activity"`
	IssueHealth       float64 `json:"issue_health"`
	CodeQuality       float64 `json:"code_quality"`
	ContributorHealth float64 `json:"contributor_health"`
}

// AnalysisReport is the complete output of one analysis call. It is
// immutable once constructed and serializable to a plain key-value tree.
type AnalysisReport struct {
	Repository         string              `json:"repository"`
	AnalyzedAt         time.Time           `json:"analyzed_at"`
	HealthScore        HealthScore         `json:"health_score"`
	ActivityMetrics    *ActivityMetrics    `json:"activity_metrics"`
	IssueMetrics       *IssueMetrics       `json:"issue_metrics"`
	ChurnMetrics       *ChurnMetrics       `json:"churn_metrics"`
	ContributorMetrics *ContributorMetrics `json:"contributor_metrics"`
}

// Tree converts the report to a plain nested key-value tree suitable for
// JSON-style serialization or line-oriented text rendering.
func (r *AnalysisReport) Tree() (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	tree := make(map[string]any)
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}
