package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// PrintScoringModel displays the formal definition of the scoring model.
// This is a static display that does not require any API access.
func PrintScoringModel(cfg *contract.Config) error {
	model := buildScoringModel(cfg)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, model)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoringModelCSV(w, model)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoringModelText(w, model)
		}, "Wrote text")
	}
}

func writeScoringModelText(w io.Writer, model *schema.ScoringModel) error {
	if _, err := fmt.Fprintf(w, "🩺 %s\n", model.Title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n%s\n\n", strings.Repeat("=", len(model.Title)+3), model.Description); err != nil {
		return err
	}

	for _, c := range model.Components {
		if _, err := fmt.Fprintf(w, "%s (weight %.2f): %s\n", strings.ToUpper(c.Name), c.Weight, c.Purpose); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Factors: %s\n\n", strings.Join(c.Factors, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func writeScoringModelCSV(w io.Writer, model *schema.ScoringModel) error {
	header := []string{"Component", "Weight", "Purpose", "Factors"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, c := range model.Components {
			record := []string{
				c.Name,
				fmt.Sprintf("%.2f", c.Weight),
				c.Purpose,
				strings.Join(c.Factors, "|"),
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// buildScoringModel constructs the render model from the active weights.
func buildScoringModel(cfg *contract.Config) *schema.ScoringModel {
	w := cfg.Weights
	return &schema.ScoringModel{
		Title:       "Repository Health Scoring Model",
		Description: "Overall = weighted sum of four sub-scores, each clamped to 0-100",
		Components: []schema.ScoringComponent{
			{
				Name:    schema.ActivityComponent,
				Weight:  w.Activity,
				Purpose: "Development pace over the trailing activity window",
				Factors: []string{"Commit volume", "PR merge rate", "Issue close rate", "Active contributors"},
			},
			{
				Name:    schema.IssueComponent,
				Weight:  w.IssueHealth,
				Purpose: "Backlog responsiveness, penalties for stagnation and slow closes",
				Factors: []string{"Stagnant 90d share", "Stagnant 180d share", "Average close time"},
			},
			{
				Name:    schema.ChurnComponent,
				Weight:  w.CodeQuality,
				Purpose: "Change concentration and churn volume over the churn window",
				Factors: []string{"Average churn per commit", "High-churn file count", "Deletion ratio"},
			},
			{
				Name:    schema.ContributorComponent,
				Weight:  w.ContributorHealth,
				Purpose: "Contributor base breadth and knowledge distribution",
				Factors: []string{"Active contributors", "Bus factor", "Core contributors", "New contributors"},
			},
		},
	}
}
