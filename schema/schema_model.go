package schema

// ScoringComponent describes one sub-score of the scoring model for
// display purposes.
type ScoringComponent struct {
	Name    string   `json:"name" yaml:"name"`
	Weight  float64  `json:"weight" yaml:"weight"`
	Purpose string   `json:"purpose" yaml:"purpose"`
	Factors []string `json:"factors" yaml:"factors"`
}

// ScoringModel is the render model for the scoring definition output.
type ScoringModel struct {
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description" yaml:"description"`
	Components  []ScoringComponent `json:"components" yaml:"components"`
}
