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

// WriteRunStatusResults outputs run store status and recorded runs,
// dispatching based on the output format configured.
func WriteRunStatusResults(status schema.StoreStatus, runs []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForRuns(w, status, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForRuns(w, runs)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(status, runs, w)
		}, "Wrote table")
	}
}

// writeRunsTable prints status lines followed by a table of recorded runs.
func writeRunsTable(status schema.StoreStatus, runs []schema.RunRecord, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "Backend: %s (connected: %t)\n", status.Backend, status.Connected); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Total runs: %d\n", status.TotalRuns); err != nil {
		return err
	}
	if status.TotalRuns > 0 {
		if _, err := fmt.Fprintf(writer, "Last run: #%d at %s\n", status.LastRunID, status.LastRunTime.Format(time.RFC3339)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(writer, "Oldest run: %s\n", status.OldestRunTime.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	for table, size := range status.TableSizes {
		if _, err := fmt.Fprintf(writer, "Table %s: %d rows\n", table, size); err != nil {
			return err
		}
	}

	if len(runs) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Run", "Start", "End", "Duration (ms)", "Files"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range runs {
		endStr := "-"
		if r.EndTime != nil {
			endStr = r.EndTime.Format(time.RFC3339)
		}
		durStr := "-"
		if r.RunDurationMs != nil {
			durStr = strconv.FormatInt(*r.RunDurationMs, 10)
		}
		filesStr := "-"
		if r.TotalFiles != nil {
			filesStr = strconv.FormatInt(*r.TotalFiles, 10)
		}
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			r.StartTime.Format(time.RFC3339),
			endStr,
			durStr,
			filesStr,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResultsForRuns writes recorded runs in CSV format.
func writeCSVResultsForRuns(w io.Writer, runs []schema.RunRecord) error {
	header := []string{"run_id", "start_time", "end_time", "run_duration_ms", "total_files", "config_params"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range runs {
			endStr := ""
			if r.EndTime != nil {
				endStr = r.EndTime.Format(time.RFC3339)
			}
			durStr := ""
			if r.RunDurationMs != nil {
				durStr = strconv.FormatInt(*r.RunDurationMs, 10)
			}
			filesStr := ""
			if r.TotalFiles != nil {
				filesStr = strconv.FormatInt(*r.TotalFiles, 10)
			}
			configStr := ""
			if r.ConfigParams != nil {
				configStr = *r.ConfigParams
			}
			rec := []string{
				strconv.FormatInt(r.RunID, 10),
				r.StartTime.Format(time.RFC3339),
				endStr,
				durStr,
				filesStr,
				configStr,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForRuns writes the status and runs together in JSON format.
func writeJSONResultsForRuns(w io.Writer, status schema.StoreStatus, runs []schema.RunRecord) error {
	type JSONRunStatus struct {
		Status schema.StoreStatus `json:"status"`
		Runs   []schema.RunRecord `json:"runs"`
	}
	return writeJSON(w, JSONRunStatus{Status: status, Runs: runs})
}
