package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/repopulse/repopulse/core"
	"github.com/repopulse/repopulse/internal/advisor"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/internal/githubfetch"
	"github.com/repopulse/repopulse/internal/outwriter"
	"github.com/repopulse/repopulse/internal/reportstore"
	"github.com/repopulse/repopulse/schema"
	"github.com/spf13/cobra"
)

// analyzeCmd computes a health report for one repository.
var analyzeCmd = &cobra.Command{
	Use:   "analyze owner/name",
	Short: "Analyze a repository and print its health report.",
	Long: `Fetch a repository's recent commits, issues, pull requests and
contributors from the GitHub API and score its health from 0 to 100.

The overall score is the weighted sum of four sub-scores:
- Activity: development pace over the trailing window
- Issue health: backlog stagnation and close times
- Code quality: churn volume and change concentration
- Contributor health: breadth and distribution of the contributor base

Examples:
  # Score a public repository
  repopulse analyze golang/go

  # Use a token for private repos and higher rate limits
  repopulse analyze acme/widgets --token ghp_xxx

  # Persist the run for trend tracking
  repopulse analyze acme/widgets --store-backend sqlite

  # Machine-readable output
  repopulse analyze acme/widgets --output json --output-file report.json

  # Ask a model for remediation steps
  repopulse analyze acme/widgets --advise`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runAnalyze(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}

func runAnalyze(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()

	source, err := githubfetch.NewSource(ctx, cfg)
	if err != nil {
		return err
	}
	set, err := source.FetchRecordSet(ctx, cfg)
	if err != nil {
		return err
	}

	report, err := core.NewHealthAnalyzer(cfg).Analyze(set)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	if err := outwriter.NewOutWriter().WriteReport(report, cfg, duration); err != nil {
		return err
	}

	if cfg.StoreBackend != schema.NoneBackend {
		store, err := reportstore.NewStore(cfg.StoreBackend, cfg.StoreDBConnect)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		if _, err := store.RecordReport(report, duration); err != nil {
			// Storage is best-effort; the report already printed.
			contract.LogWarn("Cannot record report run", err)
		}
	}

	if cfg.Advise {
		adv, err := advisor.NewAdvisor()
		if err != nil {
			return err
		}
		plan, err := adv.Advise(ctx, report)
		if err != nil {
			return err
		}
		fmt.Printf("\n💡 Recommendations:\n%s\n", plan)
	}
	return nil
}
