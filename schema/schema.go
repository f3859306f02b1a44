// Package schema has configs, models and shared types for all parts of maintsight.
package schema

import "time"

// FileChange is a single numstat entry within a commit: lines added and
// removed for one path. The path may still carry git's rename notation
// until the aggregator normalizes it.
type FileChange struct {
	Added   int    // Lines added in this commit ("-" from git becomes 0)
	Removed int    // Lines removed in this commit
	Path    string // Path as emitted by git, possibly in rename notation
}

// CommitRecord is one parsed entry of the history log. It is folded into
// FileStats during aggregation and discarded afterwards.
type CommitRecord struct {
	Hash      string       // Full commit hash
	Author    string       // Author email
	Timestamp time.Time    // Author timestamp
	Subject   string       // Commit subject line, used for classification
	Files     []FileChange // Per-file numstat triples
}

// FileStats accumulates raw counters for one canonical path while the
// aggregator walks the history. Created on first sighting, mutated by every
// later commit touching the path. FirstCommit is never after LastCommit.
type FileStats struct {
	LinesAdded      int
	LinesDeleted    int
	Commits         int
	Authors         map[string]struct{} // Unique author identifiers
	BugCommits      int
	FeatureCommits  int
	RefactorCommits int
	FirstCommit     time.Time
	LastCommit      time.Time
}

// FileActivity is the aggregate record the Commit Aggregator emits for one
// canonical file path. All ratio fields are derived once, at emission.
type FileActivity struct {
	Module          string    `json:"module"`           // Canonical path, used as the file's identity
	FileName        string    `json:"file_name"`        // Same canonical path, kept for display
	Repo            string    `json:"repo"`             // Last path segment of the repository root
	Commits         int       `json:"commits"`          // Qualifying commits touching this file
	Authors         int       `json:"authors"`          // Distinct author count
	AuthorList      []string  `json:"author_list"`      // Sorted distinct author identifiers
	LinesAdded      int       `json:"lines_added"`      // Cumulative lines added
	LinesDeleted    int       `json:"lines_deleted"`    // Cumulative lines removed
	Churn           int       `json:"churn"`            // LinesAdded + LinesDeleted
	BugCommits      int       `json:"bug_commits"`      // Commits classified as bug fixes
	FeatureCommits  int       `json:"feature_commits"`  // Commits classified as feature work
	RefactorCommits int       `json:"refactor_commits"` // Commits classified as refactoring
	LinesPerAuthor  float64   `json:"lines_per_author"` // LinesAdded / Authors (0 when Authors is 0)
	ChurnPerCommit  float64   `json:"churn_per_commit"` // Churn / Commits (0 when Commits is 0)
	BugRatio        float64   `json:"bug_ratio"`        // BugCommits / Commits (0 when Commits is 0)
	DaysActive      int       `json:"days_active"`      // Ceiling of LastCommit-FirstCommit in days, at least 1
	CommitsPerDay   float64   `json:"commits_per_day"`  // Commits / DaysActive
	FirstCommit     time.Time `json:"first_commit"`     // Oldest qualifying commit timestamp
	LastCommit      time.Time `json:"last_commit"`      // Newest qualifying commit timestamp
}

// FeatureRecord carries the 13 base counters and the 13 derived ratios for
// one file, in the exact positional order the model was trained on.
// Immutable once produced by the feature engineer.
type FeatureRecord struct {
	// Base counters, copied from FileActivity.
	Commits         float64
	Authors         float64
	LinesAdded      float64
	LinesDeleted    float64
	Churn           float64
	BugCommits      float64
	FeatureCommits  float64
	RefactorCommits float64
	LinesPerAuthor  float64
	ChurnPerCommit  float64
	BugRatio        float64
	DaysActive      float64
	CommitsPerDay   float64

	// Derived ratios. Denominators carry +1 smoothing so the derivation
	// never branches on zero.
	NetLines            float64
	CodeStability       float64
	IsHighChurnCommit   float64
	BugCommitRate       float64
	CommitsSquared      float64
	AuthorConcentration float64
	LinesPerCommit      float64
	ChurnRate           float64
	ModificationRatio   float64
	ChurnPerAuthor      float64
	DeletionRate        float64
	CommitDensity       float64
	DegradationDays     float64
}

// RiskPrediction is the final per-file output of the scoring pipeline.
type RiskPrediction struct {
	Module           string       `json:"module"`
	DegradationScore float64      `json:"degradation_score"`
	RawPrediction    float64      `json:"raw_prediction"`
	RiskCategory     RiskCategory `json:"risk_category"`
}

// RankedResult is one row of the final report: a prediction together with
// the aggregate statistics it was derived from.
type RankedResult struct {
	Activity   FileActivity   `json:"activity"`
	Prediction RiskPrediction `json:"prediction"`
}
