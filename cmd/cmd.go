// Package cmd defines the command-line interface for repopulse.
package cmd

import (
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the report subcommands to the parent report command
	reportCmd.AddCommand(reportHistoryCmd)
	reportCmd.AddCommand(reportExportCmd)
	reportCmd.AddCommand(reportMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json or yaml or csv")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/auto)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.NoneBackend), "Report store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("token", "", "GitHub API token (or REPOPULSE_GITHUB_TOKEN)")
	rootCmd.PersistentFlags().String("api-url", "", "GitHub Enterprise base URL override")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
	// The token flags live under the nested github section
	if err := viper.BindPFlag("github.token", rootCmd.PersistentFlags().Lookup("token")); err != nil {
		contract.LogFatal("Error binding token flag", err)
	}
	if err := viper.BindPFlag("github.api-url", rootCmd.PersistentFlags().Lookup("api-url")); err != nil {
		contract.LogFatal("Error binding api-url flag", err)
	}

	// Bind all flags of analyzeCmd to Viper under the analysis section
	analyzeCmd.Flags().Int("activity-period-days", contract.DefaultActivityPeriodDays, "Trailing window for activity metrics in days")
	analyzeCmd.Flags().Int("stagnation-threshold-days", contract.DefaultStagnationThresholdDays, "Age in days past which an open issue counts as stagnant")
	analyzeCmd.Flags().Int("churn-period-days", contract.DefaultChurnPeriodDays, "Trailing window for churn metrics in days")
	analyzeCmd.Flags().Int("hotspot-limit", contract.DefaultHotspotLimit, "Number of churn hotspot files to report")
	analyzeCmd.Flags().Int("max-high-churn-files", contract.DefaultMaxHighChurnFiles, "High-churn file count before score penalties apply")
	analyzeCmd.Flags().Float64("churn-per-commit-threshold", contract.DefaultChurnPerCommitThreshold, "Average churn per commit before score penalties apply")
	analyzeCmd.Flags().Float64("core-share", contract.DefaultCoreShare, "Contribution share that makes a contributor core")
	analyzeCmd.Flags().Float64("close-time-target-days", contract.DefaultCloseTimeTargetDays, "Reference average issue close time before penalties apply")
	analyzeCmd.Flags().Bool("advise", false, "Generate model-backed recommendations after the report")
	for flagName, key := range map[string]string{
		"activity-period-days":       "analysis.activity-period-days",
		"stagnation-threshold-days":  "analysis.stagnation-threshold-days",
		"churn-period-days":          "analysis.churn-period-days",
		"hotspot-limit":              "analysis.hotspot-limit",
		"max-high-churn-files":       "analysis.max-high-churn-files",
		"churn-per-commit-threshold": "analysis.churn-per-commit-threshold",
		"core-share":                 "analysis.core-share",
		"close-time-target-days":     "analysis.close-time-target-days",
		"advise":                     "advise",
	} {
		if err := viper.BindPFlag(key, analyzeCmd.Flags().Lookup(flagName)); err != nil {
			contract.LogFatal("Error binding analyze flags", err)
		}
	}

	// Bind the shared history limit for the report subcommands
	reportCmd.PersistentFlags().Int("limit", contract.DefaultHistoryLimit, "Maximum number of stored runs to read")
	if err := viper.BindPFlags(reportCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of reportExportCmd to Viper
	reportExportCmd.Flags().String("export-file", "repopulse_runs.parquet", "Destination Parquet file for the export")
	if err := viper.BindPFlags(reportExportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report export flags", err)
	}

	// Bind all flags of reportMigrateCmd to Viper
	reportMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(reportMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report migrate flags", err)
	}
}
