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

// PrintReport outputs an analysis report, dispatching based on the output
// format configured.
func PrintReport(report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, report)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report)
		}, "Wrote CSV")
	default:
		// Default to human-readable text
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, report, cfg, duration)
		}, "Wrote text")
	}
}

// writeReportCSV emits one row per score component so downstream
// spreadsheets can pivot without JSON parsing.
func writeReportCSV(w io.Writer, report *schema.AnalysisReport) error {
	header := []string{"repository", "analyzed_at", "component", "score", "label"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		rows := [][2]any{
			{"overall", report.HealthScore.Overall},
			{schema.ActivityComponent, report.HealthScore.Activity},
			{schema.IssueComponent, report.HealthScore.IssueHealth},
			{schema.ChurnComponent, report.HealthScore.CodeQuality},
			{schema.ContributorComponent, report.HealthScore.ContributorHealth},
		}
		for _, row := range rows {
			score := row[1].(float64)
			record := []string{
				report.Repository,
				report.AnalyzedAt.Format(time.RFC3339),
				row[0].(string),
				strconv.FormatFloat(score, 'f', 2, 64),
				contract.GetPlainLabel(score),
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeReportText generates and writes the human-readable report.
func writeReportText(w io.Writer, report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "🩺 Repository Health: %s\n", report.Repository); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "   Analyzed at %s\n\n", report.AnalyzedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	if err := writeScoreTable(w, report, cfg); err != nil {
		return err
	}
	if err := writeFindings(w, report, cfg); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nCompleted in %.2fs\n", duration.Seconds()); err != nil {
		return err
	}
	return nil
}

func writeScoreTable(w io.Writer, report *schema.AnalysisReport, cfg *contract.Config) error {
	weights := cfg.Weights
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Component", "Score", "Label", "Weight"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	hs := report.HealthScore
	data := [][]string{
		scoreRow("Activity", hs.Activity, weights.Activity, cfg),
		scoreRow("Issue health", hs.IssueHealth, weights.IssueHealth, cfg),
		scoreRow("Code quality", hs.CodeQuality, weights.CodeQuality, cfg),
		scoreRow("Contributors", hs.ContributorHealth, weights.ContributorHealth, cfg),
		scoreRow("Overall", hs.Overall, weights.Sum(), cfg),
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func scoreRow(name string, score, weight float64, cfg *contract.Config) []string {
	return []string{
		name,
		fmt.Sprintf("%.2f", score),
		scoreLabel(score, cfg),
		fmt.Sprintf("%.2f", weight),
	}
}

// writeFindings prints the notable per-analyzer detail below the score
// table. Sections with nothing to report are skipped.
func writeFindings(w io.Writer, report *schema.AnalysisReport, cfg *contract.Config) error {
	if am := report.ActivityMetrics; am != nil {
		if _, err := fmt.Fprintf(w,
			"\n📈 Activity (%dd): %d commits, %d PRs opened, %.0f%% merged, %d active contributors\n",
			am.WindowDays, am.Commits, am.PRsOpened, am.MergeRate*100, am.ActiveContributors); err != nil {
			return err
		}
	}

	if im := report.IssueMetrics; im != nil && im.TotalOpenIssues > 0 {
		if _, err := fmt.Fprintf(w,
			"🐛 Issues: %d open, %d stagnant past 90d, median open age %.0fd\n",
			im.TotalOpenIssues, im.Stagnant90Days, im.MedianOpenAgeDays); err != nil {
			return err
		}
	}

	if cm := report.ContributorMetrics; cm != nil && cm.TotalContributors > 0 {
		if _, err := fmt.Fprintf(w,
			"👥 Contributors: %d total, bus factor %d, %d core, %d new\n",
			cm.TotalContributors, cm.BusFactor, cm.CoreContributors, cm.NewContributors); err != nil {
			return err
		}
	}

	chm := report.ChurnMetrics
	if chm == nil || len(chm.HotspotFiles) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\n🔥 Churn hotspots (%dd window):\n", chm.WindowDays); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Path", "Lines", "Commits"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := getMaxTablePathWidth()
	var data [][]string
	for _, f := range chm.HotspotFiles {
		data = append(data, []string{
			contract.TruncatePath(f.Path, maxWidth),
			strconv.Itoa(f.ChangedLines),
			strconv.Itoa(f.Commits),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
