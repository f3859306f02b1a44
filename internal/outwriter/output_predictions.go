package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/techdebtgpt/maintsight/internal/contract"
	"github.com/techdebtgpt/maintsight/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WritePredictionResults outputs ranked predictions, dispatching based on the
// output format configured.
func WritePredictionResults(results []schema.RankedResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForPredictions(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForPredictions(w, results, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePredictionTable(results, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// writePredictionTable generates and writes the human-readable table.
func writePredictionTable(results []schema.RankedResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Module", "Score", "Category", "Commits", "Authors", "Churn", "Days"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}
	var data [][]string
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncatePath(r.Activity.Module, getMaxTablePathWidth(cfg)), // Module
			fmtFloat(r.Prediction.DegradationScore),                             // Score
			label(r.Prediction.RiskCategory),                                    // Category
			fmt.Sprintf(intFmt, r.Activity.Commits),                             // Commits
			fmt.Sprintf(intFmt, r.Activity.Authors),                             // Authors
			fmt.Sprintf(intFmt, r.Activity.Churn),                               // Churn
			fmt.Sprintf(intFmt, r.Activity.DaysActive),                          // Days
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	totalCommits := 0
	totalChurn := 0
	for _, r := range results {
		totalCommits += r.Activity.Commits
		totalChurn += r.Activity.Churn
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d files (total commits: %d, total churn: %d)\n", len(results), totalCommits, totalChurn); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForPredictions writes ranked predictions in CSV format.
func writeCSVResultsForPredictions(w io.Writer, results []schema.RankedResult, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"module",
		"degradation_score",
		"raw_prediction",
		"risk_category",
		"commits",
		"authors",
		"lines_added",
		"lines_deleted",
		"churn",
		"bug_commits",
		"feature_commits",
		"refactor_commits",
		"days_active",
		"first_commit",
		"last_commit",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, r := range results {
			rec := []string{
				strconv.Itoa(i + 1),                             // Rank
				r.Activity.Module,                               // Module
				fmtFloat(r.Prediction.DegradationScore),         // Calibrated score
				fmtFloat(r.Prediction.RawPrediction),            // Raw sigmoid output
				string(r.Prediction.RiskCategory),               // Category
				fmt.Sprintf(intFmt, r.Activity.Commits),         // Commits
				fmt.Sprintf(intFmt, r.Activity.Authors),         // Authors
				fmt.Sprintf(intFmt, r.Activity.LinesAdded),      // Lines Added
				fmt.Sprintf(intFmt, r.Activity.LinesDeleted),    // Lines Deleted
				fmt.Sprintf(intFmt, r.Activity.Churn),           // Churn
				fmt.Sprintf(intFmt, r.Activity.BugCommits),      // Bug Commits
				fmt.Sprintf(intFmt, r.Activity.FeatureCommits),  // Feature Commits
				fmt.Sprintf(intFmt, r.Activity.RefactorCommits), // Refactor Commits
				fmt.Sprintf(intFmt, r.Activity.DaysActive),      // Days Active
				r.Activity.FirstCommit.Format(time.RFC3339),     // First Commit Date
				r.Activity.LastCommit.Format(time.RFC3339),      // Last Commit Date
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForPredictions writes ranked predictions in JSON format.
func writeJSONResultsForPredictions(w io.Writer, results []schema.RankedResult) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONRankedResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.RankedResult
	}

	output := make([]JSONRankedResult, len(results))
	for i, r := range results {
		output[i] = JSONRankedResult{
			Rank:         i + 1,
			Label:        contract.GetPlainLabel(r.Prediction.RiskCategory),
			RankedResult: r,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
