package cmd

import (
	"github.com/spf13/cobra"
	"github.com/techdebtgpt/maintsight/core"
	"github.com/techdebtgpt/maintsight/core/feature"
	"github.com/techdebtgpt/maintsight/internal/contract"
	"github.com/techdebtgpt/maintsight/internal/outwriter"
)

// featuresCmd dumps engineered feature vectors without scoring.
var featuresCmd = &cobra.Command{
	Use:   "features [repo-path]",
	Short: "Print the engineered per-file feature vectors.",
	Long: `Run history aggregation and feature engineering, then print the resulting
vectors without scoring them.

Each file yields 26 ordered features: 13 base counters from commit history
and 13 derived ratios. Useful for debugging model inputs or feeding the
vectors into external tooling.

Examples:
  # Dump feature vectors as CSV
  maintsight features

  # Dump as JSON with feature names as keys
  maintsight features --output json

  # Write to a file for offline inspection
  maintsight features --output-file features.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := contract.NewLocalGitClient()

		modules, vectors, err := core.ComputeFeatures(rootCtx, cfg, client)
		if err != nil {
			contract.LogFatal("Cannot compute features", err)
		}

		if err := outwriter.NewOutWriter().WriteFeatures(modules, vectors, feature.FeatureNames, cfg); err != nil {
			contract.LogFatal("Cannot write features", err)
		}
	},
}
