// Package parquet exports run history and prediction data to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/techdebtgpt/maintsight/schema"
)

// Run represents a single recorded analyze invocation.
// This struct maps to the maintsight_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalFiles is the number of files scored in this run (nullable)
	TotalFiles *int64 `parquet:"total_files,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// Prediction represents one per-file prediction row for a run.
// This struct maps to the maintsight_predictions database table.
type Prediction struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// Module is the relative path to the file in the repository
	Module string `parquet:"module,snappy"`

	// PredictedAt is when this prediction was made (stored as TIMESTAMP with nanosecond precision)
	PredictedAt time.Time `parquet:"predicted_at,snappy"`

	// Commits is the number of commits touching this file in the window
	Commits int32 `parquet:"commits,snappy"`

	// Authors is the number of distinct commit authors
	Authors int32 `parquet:"authors,snappy"`

	// Churn is the total lines added plus deleted
	Churn int32 `parquet:"churn,snappy"`

	// BugCommits is the number of bug-classified commits
	BugCommits int32 `parquet:"bug_commits,snappy"`

	// DaysActive is the activity span in whole days
	DaysActive int32 `parquet:"days_active,snappy"`

	// RawPrediction is the uncalibrated sigmoid output of the ensemble
	RawPrediction float64 `parquet:"raw_prediction,snappy"`

	// DegradationScore is the calibrated score in reference-distribution units
	DegradationScore float64 `parquet:"degradation_score,snappy"`

	// RiskCategory is the bucketed category for the calibrated score
	RiskCategory string `parquet:"risk_category,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WritePredictionsParquet writes a slice of Prediction structs to a Parquet file.
func WritePredictionsParquet(data []Prediction, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the Prediction struct tags
	writer := parquet.NewGenericWriter[Prediction](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalFiles:    record.TotalFiles,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertPredictionRecords converts schema.PredictionRecord to Prediction for Parquet export.
func ConvertPredictionRecords(records []schema.PredictionRecord) []Prediction {
	result := make([]Prediction, len(records))
	for i, record := range records {
		result[i] = Prediction{
			RunID:            record.RunID,
			Module:           record.Module,
			PredictedAt:      record.PredictedAt,
			Commits:          int32(record.Commits),
			Authors:          int32(record.Authors),
			Churn:            int32(record.Churn),
			BugCommits:       int32(record.BugCommits),
			DaysActive:       int32(record.DaysActive),
			RawPrediction:    record.RawPrediction,
			DegradationScore: record.DegradationScore,
			RiskCategory:     record.RiskCategory,
		}
	}
	return result
}
