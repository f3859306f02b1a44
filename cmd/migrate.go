package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/techdebtgpt/maintsight/internal/contract"
	"github.com/techdebtgpt/maintsight/internal/runstore"
)

// migrateCmd runs database migrations for the run store.
//
// Note: migrate uses the minimal runsSetup instead of full sharedSetup so
// migrations can run against a fresh database without a Git repository.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  maintsight migrate

  # Migrate to specific version
  maintsight migrate --target-version 1

  # Rollback to initial state
  maintsight migrate --target-version 0`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.Migrate(cfg.StoreBackend, cfg.StoreConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
