package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/techdebtgpt/maintsight/internal/contract"
	"github.com/techdebtgpt/maintsight/internal/outwriter"
	"github.com/techdebtgpt/maintsight/internal/runstore"
	"github.com/techdebtgpt/maintsight/schema"
)

// runsSetup loads minimal configuration needed for run store operations.
// This is used by commands that need store access without full shared setup,
// which avoids Git repo validation for simple store inspection.
func runsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := strings.ToLower(viper.GetString("store-backend"))
	connStr := viper.GetString("store-connect")

	backend := schema.StoreBackend(backendStr)
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}
	if err := contract.ValidateStoreConnectString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreConnect = connStr

	// Get output-related config values (used by status and export)
	cfg.Output = schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", viper.GetString("output"))
	}
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Precision = viper.GetInt("precision")
	if cfg.Precision < 1 || cfg.Precision > 4 {
		cfg.Precision = contract.DefaultPrecision
	}

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsCmd focused on run tracking data management.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect and manage recorded analysis runs",
	Long: `Manage the historical run store used for trend tracking and reporting.

When enabled, maintsight records every analyze invocation, storing:
- Run metadata (timestamp, configuration, duration)
- Per-file predictions (raw score, degradation score, category)
- The base commit counters each prediction was derived from

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  export  - Export data to Parquet for analytics
  clear   - Remove all recorded runs

Examples:
  # Show run store status and recorded runs
  maintsight runs

  # Export for analysis in pandas/DuckDB
  maintsight runs export --output-file maintsight-data`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := runstore.New(cfg.StoreBackend, cfg.StoreConnect)
		if err != nil {
			contract.LogFatal("Cannot open run store", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Cannot get run store status", err)
		}
		runs, err := store.GetAllRuns()
		if err != nil {
			contract.LogFatal("Cannot list runs", err)
		}
		if err := outwriter.NewOutWriter().WriteRunStatus(status, runs, cfg); err != nil {
			contract.LogFatal("Cannot write run status", err)
		}
	},
}

// runsExportCmd exports run data to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet for BI tools and analytics",
	Long: `Export all stored run data to Parquet format for use with analytics tools.

Exports two datasets:
- Runs - metadata about each analyze invocation
- Predictions - per-file scores and commit counters

Requires: --output-file parameter (used as the file name prefix)

Examples:
  # Export all data
  maintsight runs export --output-file maintsight-data

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('maintsight-data.predictions.parquet') LIMIT 10"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := runstore.New(cfg.StoreBackend, cfg.StoreConnect)
		if err != nil {
			contract.LogFatal("Cannot open run store", err)
		}
		defer func() { _ = store.Close() }()

		if err := runstore.ExecuteExport(store, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run data", err)
		}
	},
}

// runsClearCmd clears the run data.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs and predictions",
	Long: `Delete all stored runs and per-file prediction history.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  maintsight runs export --output-file backup
  maintsight runs clear`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.Clear(cfg.StoreBackend, cfg.StoreConnect); err != nil {
			contract.LogFatal("Failed to clear run data", err)
		}
		fmt.Println("Run data cleared successfully.")
	},
}
