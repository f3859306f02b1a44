// Package feature derives model input features from per-file change statistics.
package feature

import "github.com/techdebtgpt/maintsight/schema"

// FeatureNames lists all 26 model features in the exact positional order
// the bundled model was trained on: the 13 base counters followed by the
// 13 derived ratios. ExtractVector emits values in this order.
var FeatureNames = []string{
	"commits",
	"authors",
	"lines_added",
	"lines_deleted",
	"churn",
	"bug_commits",
	"feature_commits",
	"refactor_commits",
	"lines_per_author",
	"churn_per_commit",
	"bug_ratio",
	"days_active",
	"commits_per_day",
	"net_lines",
	"code_stability",
	"is_high_churn_commit",
	"bug_commit_rate",
	"commits_squared",
	"author_concentration",
	"lines_per_commit",
	"churn_rate",
	"modification_ratio",
	"churn_per_author",
	"deletion_rate",
	"commit_density",
	"degradation_days",
}

// highChurnPerCommit marks a file whose average commit touches an outsized
// number of lines.
const highChurnPerCommit = 100.0

// Engineer derives the full feature record for one file. It is a pure
// function of its input: the base counters are copied over and the 13
// derived ratios are computed with +1 smoothing denominators, so no
// division ever branches on zero.
func Engineer(fa schema.FileActivity) schema.FeatureRecord {
	commits := float64(fa.Commits)
	authors := float64(fa.Authors)
	linesAdded := float64(fa.LinesAdded)
	linesDeleted := float64(fa.LinesDeleted)
	churn := float64(fa.Churn)
	daysActive := float64(fa.DaysActive)

	rec := schema.FeatureRecord{
		Commits:         commits,
		Authors:         authors,
		LinesAdded:      linesAdded,
		LinesDeleted:    linesDeleted,
		Churn:           churn,
		BugCommits:      float64(fa.BugCommits),
		FeatureCommits:  float64(fa.FeatureCommits),
		RefactorCommits: float64(fa.RefactorCommits),
		LinesPerAuthor:  fa.LinesPerAuthor,
		ChurnPerCommit:  fa.ChurnPerCommit,
		BugRatio:        fa.BugRatio,
		DaysActive:      daysActive,
		CommitsPerDay:   fa.CommitsPerDay,
	}

	rec.NetLines = linesAdded - linesDeleted
	rec.CodeStability = churn / (linesAdded + 1)
	if fa.ChurnPerCommit > highChurnPerCommit {
		rec.IsHighChurnCommit = 1
	}
	rec.BugCommitRate = float64(fa.BugCommits) / (commits + 1)
	rec.CommitsSquared = commits * commits
	rec.AuthorConcentration = 1 / (authors + 1)
	rec.LinesPerCommit = linesAdded / (commits + 1)
	rec.ChurnRate = churn / (daysActive + 1)
	rec.ModificationRatio = linesDeleted / (linesAdded + 1)
	rec.ChurnPerAuthor = churn / (authors + 1)
	rec.DeletionRate = linesDeleted / (linesAdded + linesDeleted + 1)
	rec.CommitDensity = commits / (daysActive + 1)

	// Kept as a distinct feature for the model's historical input contract.
	rec.DegradationDays = daysActive

	return rec
}

// ExtractVector flattens a feature record into the ordered numeric vector
// the model consumes. The order matches FeatureNames exactly.
func ExtractVector(rec schema.FeatureRecord) []float64 {
	return []float64{
		rec.Commits,
		rec.Authors,
		rec.LinesAdded,
		rec.LinesDeleted,
		rec.Churn,
		rec.BugCommits,
		rec.FeatureCommits,
		rec.RefactorCommits,
		rec.LinesPerAuthor,
		rec.ChurnPerCommit,
		rec.BugRatio,
		rec.DaysActive,
		rec.CommitsPerDay,
		rec.NetLines,
		rec.CodeStability,
		rec.IsHighChurnCommit,
		rec.BugCommitRate,
		rec.CommitsSquared,
		rec.AuthorConcentration,
		rec.LinesPerCommit,
		rec.ChurnRate,
		rec.ModificationRatio,
		rec.ChurnPerAuthor,
		rec.DeletionRate,
		rec.CommitDensity,
		rec.DegradationDays,
	}
}
