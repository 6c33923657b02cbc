package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRuns outputs stored report runs, dispatching based on the output
// format configured.
func PrintRuns(runs []schema.ReportRun, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, runs)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsCSV(w, runs)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(w, runs, cfg)
		}, "Wrote table")
	}
}

func writeRunsCSV(w io.Writer, runs []schema.ReportRun) error {
	header := []string{
		"id", "repository", "analyzed_at", "overall",
		"activity", "issue_health", "code_quality", "contributor_health", "duration_ms",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, run := range runs {
			record := []string{
				strconv.FormatInt(run.ID, 10),
				run.Repository,
				run.AnalyzedAt.Format(time.RFC3339),
				strconv.FormatFloat(run.Overall, 'f', 2, 64),
				strconv.FormatFloat(run.Activity, 'f', 2, 64),
				strconv.FormatFloat(run.IssueHealth, 'f', 2, 64),
				strconv.FormatFloat(run.CodeQuality, 'f', 2, 64),
				strconv.FormatFloat(run.ContributorHealth, 'f', 2, 64),
				strconv.FormatInt(run.DurationMs, 10),
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func writeRunsTable(w io.Writer, runs []schema.ReportRun, cfg *contract.Config) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No stored runs yet. Analyze with --store-backend to start a history.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Repository", "Analyzed", "Overall", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, run := range runs {
		data = append(data, []string{
			strconv.FormatInt(run.ID, 10),
			run.Repository,
			run.AnalyzedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%.2f", run.Overall),
			scoreLabel(run.Overall, cfg),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
