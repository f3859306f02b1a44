package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/techdebtgpt/maintsight/schema"
)

// Default values for configuration.
const (
	DefaultWindowDays  = 90
	DefaultMaxCommits  = 500
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 3
	DefaultBranch      = "HEAD"
)

// Config holds the validated runtime configuration for an analysis.
type Config struct {
	RepoPath     string // Absolute path to the repository root
	Branch       string // Branch or ref whose history is analyzed
	WindowDays   int    // Trailing time window in days
	MaxCommits   int    // Ceiling on the number of commits queried
	ExistingOnly bool   // Restrict to files currently present on disk
	ResultLimit  int    // Maximum number of files to show in results
	Precision    int    // Decimal precision for numeric columns (1-4)
	Output       schema.OutputMode
	OutputFile   string
	Excludes     []string // Path prefixes/suffixes/globs to ignore
	Width        int      // Terminal width override (0 = auto-detect)
	UseColors    bool     // Enable colored labels in table output

	StoreBackend schema.StoreBackend
	StoreConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	Branch       string `mapstructure:"branch"`
	Days         int    `mapstructure:"days"`
	MaxCommits   int    `mapstructure:"max-commits"`
	ExistingOnly bool   `mapstructure:"existing-only"`
	Limit        int    `mapstructure:"limit"`
	Precision    int    `mapstructure:"precision"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Exclude      string `mapstructure:"exclude"`
	Width        int    `mapstructure:"width"`
	Color        string `mapstructure:"color"`
	StoreBackend string `mapstructure:"store-backend"`
	StoreConnect string `mapstructure:"store-connect"`
}

// Clone returns a copy of the config safe for per-request mutation.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Excludes = append([]string(nil), c.Excludes...)
	return &clone
}

// WindowStart returns the start of the trailing analysis window relative to now.
func (c *Config) WindowStart(now time.Time) time.Time {
	return now.Add(-time.Duration(c.WindowDays) * 24 * time.Hour)
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct. Repository-level preconditions
// (path exists, valid repo, branch resolvable) are deferred to the
// aggregator constructor, which owns those checks.
func ProcessAndValidate(ctx context.Context, cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	return resolveRepoPath(ctx, cfg, input)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	cfg.Branch = strings.TrimSpace(input.Branch)
	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}

	// --- 1. Window / Commit Ceiling Validation ---
	if input.Days <= 0 {
		return fmt.Errorf("days must be greater than 0 (received %d)", input.Days)
	}
	cfg.WindowDays = input.Days

	if input.MaxCommits <= 0 {
		return fmt.Errorf("max-commits must be greater than 0 (received %d)", input.MaxCommits)
	}
	cfg.MaxCommits = input.MaxCommits
	cfg.ExistingOnly = input.ExistingOnly

	// --- 2. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 4. Store Backend Validation ---
	cfg.StoreBackend = schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreConnect = input.StoreConnect
	if err := ValidateStoreConnectString(cfg.StoreBackend, cfg.StoreConnect); err != nil {
		return err
	}

	// --- 5. Excludes Processing ---
	defaults := []string{
		"Cargo.lock", "go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "composer.lock", "uv.lock",
		".min.js", ".min.css",
		"dist/", "build/", "out/", "target/", "bin/", "vendor/", "node_modules/",
	}
	cfg.Excludes = defaults // Set defaults first

	if input.Exclude != "" {
		parts := strings.SplitSeq(input.Exclude, ",")
		for p := range parts {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// ValidateStoreConnectString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateStoreConnectString(backend schema.StoreBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter or use the postgres:// scheme")
		}
	}
	return nil
}

// resolveRepoPath normalizes the user-supplied path into an absolute
// repository location. Whether it is a valid repository is checked later by
// the aggregator.
func resolveRepoPath(_ context.Context, cfg *Config, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	cfg.RepoPath = filepath.Clean(absSearchPath)
	return nil
}

// ParseBoolString interprets yes/no style flag values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yes", "true", "on", "1":
		return true, nil
	case "no", "false", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes/no, got %q", s)
	}
}

// RepoName returns the display name of a repository: the last path segment
// of its root.
func RepoName(repoPath string) string {
	return filepath.Base(filepath.Clean(repoPath))
}

// PathExists reports whether the given path exists on disk.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
