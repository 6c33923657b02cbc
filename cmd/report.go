package cmd

import (
	"fmt"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/internal/outwriter"
	"github.com/repopulse/repopulse/internal/parquet"
	"github.com/repopulse/repopulse/internal/reportstore"
	"github.com/repopulse/repopulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// reportCmd groups operations on the stored run history.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect stored health report runs.",
	Long:  `Read, export and migrate the report run history written by analyze --store-backend.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// reportHistoryCmd lists stored runs, newest first.
var reportHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored report runs.",
	Long: `List stored report runs, newest first.

Examples:
  # Show the last 20 runs from the local SQLite store
  repopulse report history

  # Read from a shared PostgreSQL store
  repopulse report history --store-backend postgresql --store-db-connect "host=db dbname=pulse"`,
	PreRunE: lightSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runReportHistory(); err != nil {
			contract.LogFatal("Cannot list report runs", err)
		}
	},
}

// reportExportCmd exports stored runs to a Parquet file.
var reportExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored report runs to Parquet.",
	Long: `Export stored report runs to a Parquet file for analytics tooling.

Examples:
  repopulse report export --export-file runs.parquet --limit 500`,
	PreRunE: lightSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runReportExport(); err != nil {
			contract.LogFatal("Cannot export report runs", err)
		}
	},
}

// reportMigrateCmd migrates the report store schema.
var reportMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the report store schema.",
	Long: `Run schema migrations on the report store.

The analyze command migrates to the latest version automatically; this
command exists for explicit upgrades, downgrades and rollbacks.`,
	PreRunE: lightSetup,
	Run: func(_ *cobra.Command, _ []string) {
		backend := historyBackend()
		targetVersion := viper.GetInt("target-version")
		if err := reportstore.MigrateReports(backend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Cannot migrate report store", err)
		}
		fmt.Printf("Report store (%s) migrated to target version %d\n", backend, targetVersion)
	},
}

// historyBackend falls back to the local SQLite store when no backend
// was configured, so read commands work out of the box.
func historyBackend() schema.DatabaseBackend {
	if cfg.StoreBackend == schema.NoneBackend {
		return schema.SQLiteBackend
	}
	return cfg.StoreBackend
}

func openHistoryStore() (contract.ReportStore, error) {
	return reportstore.NewStore(historyBackend(), cfg.StoreDBConnect)
}

func runReportHistory() error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(viper.GetInt("limit"))
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteRuns(runs, cfg)
}

func runReportExport() error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(viper.GetInt("limit"))
	if err != nil {
		return err
	}

	exportFile := viper.GetString("export-file")
	if err := parquet.WriteReportRunsParquet(parquet.FromSchemaRuns(runs), exportFile); err != nil {
		return err
	}
	fmt.Printf("Exported %d runs to %s\n", len(runs), exportFile)
	return nil
}
