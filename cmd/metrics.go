package cmd

import (
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/internal/outwriter"
	"github.com/spf13/cobra"
)

// metricsCmd displays the scoring model definition.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show the scoring model definition.",
	Long: `Display the components, factors and active weights of the health
scoring model. This is a static display that does not hit the GitHub API.

Examples:
  repopulse metrics
  repopulse metrics --output json`,
	PreRunE: lightSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.NewOutWriter().WriteScoringModel(cfg); err != nil {
			contract.LogFatal("Cannot print scoring model", err)
		}
	},
}
