package schema

import "time"

// RunRecord describes one recorded analyze invocation in the run store.
type RunRecord struct {
	RunID         int64      `json:"run_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	RunDurationMs *int64     `json:"run_duration_ms,omitempty"`
	TotalFiles    *int64     `json:"total_files,omitempty"`
	ConfigParams  *string    `json:"config_params,omitempty"`
}

// PredictionRecord is one stored per-file prediction row, joined to its run.
type PredictionRecord struct {
	RunID            int64
	Module           string
	PredictedAt      time.Time
	Commits          int
	Authors          int
	Churn            int
	BugCommits       int
	DaysActive       int
	RawPrediction    float64
	DegradationScore float64
	RiskCategory     string
}

// StoreStatus summarizes the state of the run store for the runs command.
type StoreStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int64            `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
