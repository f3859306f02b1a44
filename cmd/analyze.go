package cmd

import (
	"github.com/spf13/cobra"
	"github.com/techdebtgpt/maintsight/core"
	"github.com/techdebtgpt/maintsight/internal/contract"
	"github.com/techdebtgpt/maintsight/internal/outwriter"
	"github.com/techdebtgpt/maintsight/internal/runstore"
)

// analyzeCmd performs the full prediction pipeline.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo-path]",
	Short: "Rank files by predicted maintainability degradation.",
	Long: `Aggregate Git commit history, engineer per-file features, and score each
file with a gradient-boosted tree ensemble.

Each qualifying source file gets a degradation score calibrated against a
reference distribution, then bucketed:
- improved            score below 0
- stable              score up to 0.1
- degraded            score up to 0.2
- severely_degraded   score above 0.2

Files are ranked worst-first so the riskiest paths surface at the top.

Examples:
  # Analyze the current repository over the default 90-day window
  maintsight analyze

  # Analyze a different repository and branch
  maintsight analyze ~/src/myrepo --branch main

  # Widen the window and show more results
  maintsight analyze --days 365 --limit 50

  # Export findings to CSV for tracking
  maintsight analyze --output csv --output-file degradation.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := contract.NewLocalGitClient()

		store, err := runstore.New(cfg.StoreBackend, cfg.StoreConnect)
		if err != nil {
			contract.LogFatal("Cannot initialize run store", err)
		}
		defer func() { _ = store.Close() }()

		result, err := core.RunAnalysis(rootCtx, cfg, client, store)
		if err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}

		ranked := core.Rank(result, cfg.ResultLimit)
		if err := outwriter.NewOutWriter().WritePredictions(ranked, cfg, result.Duration); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
	},
}
