package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "repopulse",
	Short:              "Score the health of GitHub repositories.",
	Long:               `RepoPulse distills a repository's activity, issue backlog, code churn and contributor base into a single 0-100 health score.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".repopulse") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")     // Look in the current directory
		viper.AddConfigPath("$HOME") // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("REPOPULSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("output-file", "")
	viper.SetDefault("color", "yes")
	viper.SetDefault("store-backend", schema.NoneBackend)
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("advise", false)
	viper.SetDefault("github.token", "")
	viper.SetDefault("github.api-url", "")
	viper.SetDefault("analysis.activity-period-days", contract.DefaultActivityPeriodDays)
	viper.SetDefault("analysis.stagnation-threshold-days", contract.DefaultStagnationThresholdDays)
	viper.SetDefault("analysis.churn-period-days", contract.DefaultChurnPeriodDays)
	viper.SetDefault("analysis.hotspot-limit", contract.DefaultHotspotLimit)
	viper.SetDefault("analysis.max-high-churn-files", contract.DefaultMaxHighChurnFiles)
	viper.SetDefault("analysis.churn-per-commit-threshold", contract.DefaultChurnPerCommitThreshold)
	viper.SetDefault("analysis.core-share", contract.DefaultCoreShare)
	viper.SetDefault("analysis.close-time-target-days", contract.DefaultCloseTimeTargetDays)

	weights := contract.DefaultWeights()
	viper.SetDefault("scoring.weights.activity", weights.Activity)
	viper.SetDefault("scoring.weights.issue-health", weights.IssueHealth)
	viper.SetDefault("scoring.weights.code-quality", weights.CodeQuality)
	viper.SetDefault("scoring.weights.contributor-health", weights.ContributorHealth)
}

// loadAndUnmarshal merges defaults, file, env and flags into the raw input.
func loadAndUnmarshal() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return nil
}

// sharedSetup unmarshals config and runs validation for repo-targeting commands.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	if err := loadAndUnmarshal(); err != nil {
		return err
	}

	// Handle the positional repository argument (which Viper doesn't do).
	if len(args) == 1 {
		input.RepositoryStr = args[0]
	}

	// Run all validation and complex parsing. This populates the global
	// 'cfg' from 'input'.
	return cfg.ProcessAndValidate(input)
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// lightSetup prepares config for commands that do not target a repository.
func lightSetup(_ *cobra.Command, _ []string) error {
	if err := loadAndUnmarshal(); err != nil {
		return err
	}
	return cfg.ProcessCommonOptions(input)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
