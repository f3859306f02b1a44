// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/techdebtgpt/maintsight/schema"
)

// GitClient defines the Git operations the aggregation pipeline needs.
// This allows the core logic to be tested without a real git executable.
type GitClient interface {
	// Run executes a git command and returns its output. Output larger
	// than MaxLogOutputBytes is an error, never a silent truncation.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git
	// repository containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// ResolveRef resolves a branch or other reference to a commit hash.
	ResolveRef(ctx context.Context, repoPath string, ref string) (string, error)

	// GetHistoryLog returns the raw commit log for the branch: merge
	// commits excluded, rename detection on, at most maxCommits entries,
	// restricted to commits after since when since is non-zero.
	GetHistoryLog(ctx context.Context, repoPath string, branch string, maxCommits int, since time.Time) ([]byte, error)
}

// RunStore tracks analyze invocations and their per-file predictions.
// Implemented by the runstore package; a no-op backend disables tracking.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, totalFiles int) error

	// RecordPrediction stores one per-file prediction for a run.
	RecordPrediction(runID int64, activity schema.FileActivity, prediction schema.RiskPrediction) error

	// GetStatus returns status information about the run store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
