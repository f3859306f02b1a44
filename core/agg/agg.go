// Package agg aggregates Git history into per-file change statistics.
package agg

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/techdebtgpt/maintsight/internal/contract"
	"github.com/techdebtgpt/maintsight/schema"
)

// Aggregator runs the history query for one repository and folds the
// parsed commits into per-file statistics. Construction validates the
// repository preconditions; a constructed Aggregator is always usable.
type Aggregator struct {
	cfg    *contract.Config
	client contract.GitClient

	repoRoot string
	repoName string
}

// NewAggregator validates the repository preconditions and returns a ready
// aggregator. The checks run here, not at query time: a missing path, a
// non-repository, or an unresolvable branch each fail fast with a distinct
// message.
func NewAggregator(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*Aggregator, error) {
	if !contract.PathExists(cfg.RepoPath) {
		return nil, fmt.Errorf("repository path does not exist: %s", cfg.RepoPath)
	}

	repoRoot, err := client.GetRepoRoot(ctx, cfg.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("not a valid Git repository: %s: %w", cfg.RepoPath, err)
	}

	if _, err := client.ResolveRef(ctx, repoRoot, cfg.Branch); err != nil {
		return nil, fmt.Errorf("branch %q not found in %s: %w", cfg.Branch, repoRoot, err)
	}

	return &Aggregator{
		cfg:      cfg,
		client:   client,
		repoRoot: repoRoot,
		repoName: contract.RepoName(repoRoot),
	}, nil
}

// RepoRoot returns the resolved repository root.
func (a *Aggregator) RepoRoot() string {
	return a.repoRoot
}

// Aggregate runs the history query and returns one record per qualifying
// file. Zero qualifying files yields an empty slice, not an error.
func (a *Aggregator) Aggregate(ctx context.Context) ([]schema.FileActivity, error) {
	since := a.cfg.WindowStart(time.Now())
	out, err := a.client.GetHistoryLog(ctx, a.repoRoot, a.cfg.Branch, a.cfg.MaxCommits, since)
	if err != nil {
		return nil, err
	}
	return a.foldLog(out), nil
}

// foldLog parses the raw log output and folds every qualifying file-line
// into the per-path accumulator, then emits the aggregate records.
func (a *Aggregator) foldLog(out []byte) []schema.FileActivity {
	stats := make(map[string]*schema.FileStats)
	renames := newPathMapping()

	parseLog(out, func(commit *commitHeader, change schema.FileChange) {
		path, ok := normalizePath(change.Path, renames)
		if !ok {
			return
		}
		canonical := renames.resolve(path)

		if !IsSourceFile(canonical) {
			return
		}
		if a.cfg.ExistingOnly && !contract.PathExists(filepath.Join(a.repoRoot, canonical)) {
			return
		}
		if contract.ShouldIgnore(canonical, a.cfg.Excludes) {
			return
		}

		a.foldChange(stats, canonical, commit, change)
	})

	return a.emit(stats)
}

// foldChange applies one file-line to the accumulator for its canonical path.
func (a *Aggregator) foldChange(stats map[string]*schema.FileStats, canonical string, commit *commitHeader, change schema.FileChange) {
	fs, ok := stats[canonical]
	if !ok {
		fs = &schema.FileStats{
			Authors:     make(map[string]struct{}),
			FirstCommit: commit.timestamp,
			LastCommit:  commit.timestamp,
		}
		stats[canonical] = fs
	}

	fs.LinesAdded += change.Added
	fs.LinesDeleted += change.Removed
	fs.Commits++
	if commit.author != "" {
		fs.Authors[commit.author] = struct{}{}
	}
	if commit.tags.Bug {
		fs.BugCommits++
	}
	if commit.tags.Feature {
		fs.FeatureCommits++
	}
	if commit.tags.Refactor {
		fs.RefactorCommits++
	}
	if !commit.timestamp.IsZero() {
		if fs.FirstCommit.IsZero() || commit.timestamp.Before(fs.FirstCommit) {
			fs.FirstCommit = commit.timestamp
		}
		if commit.timestamp.After(fs.LastCommit) {
			fs.LastCommit = commit.timestamp
		}
	}
}

// emit converts the accumulator into the output records, computing the
// derived ratios of the aggregation contract.
func (a *Aggregator) emit(stats map[string]*schema.FileStats) []schema.FileActivity {
	results := make([]schema.FileActivity, 0, len(stats))
	for path, fs := range stats {
		authors := make([]string, 0, len(fs.Authors))
		for author := range fs.Authors {
			authors = append(authors, author)
		}
		sort.Strings(authors)

		churn := fs.LinesAdded + fs.LinesDeleted
		daysActive := DaysActive(fs.FirstCommit, fs.LastCommit)

		record := schema.FileActivity{
			Module:          path,
			FileName:        path,
			Repo:            a.repoName,
			Commits:         fs.Commits,
			Authors:         len(fs.Authors),
			AuthorList:      authors,
			LinesAdded:      fs.LinesAdded,
			LinesDeleted:    fs.LinesDeleted,
			Churn:           churn,
			BugCommits:      fs.BugCommits,
			FeatureCommits:  fs.FeatureCommits,
			RefactorCommits: fs.RefactorCommits,
			DaysActive:      daysActive,
			CommitsPerDay:   float64(fs.Commits) / float64(daysActive),
			FirstCommit:     fs.FirstCommit,
			LastCommit:      fs.LastCommit,
		}
		if len(fs.Authors) > 0 {
			record.LinesPerAuthor = float64(fs.LinesAdded) / float64(len(fs.Authors))
		}
		if fs.Commits > 0 {
			record.ChurnPerCommit = float64(churn) / float64(fs.Commits)
			record.BugRatio = float64(fs.BugCommits) / float64(fs.Commits)
		}
		results = append(results, record)
	}

	// Map iteration order is random; give callers a stable ordering.
	sort.Slice(results, func(i, j int) bool {
		return results[i].Module < results[j].Module
	})
	return results
}

// DaysActive returns the whole-day span between the first and last commit,
// rounded up and never below 1. A single-commit file is active for one day.
func DaysActive(first, last time.Time) int {
	if first.IsZero() || last.IsZero() || !last.After(first) {
		return 1
	}
	days := int(math.Ceil(last.Sub(first).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// normalizePath strips rename notation from a numstat path and records any
// rename in the mapping. It reports false for paths that must be discarded:
// /dev/null, embedded null bytes, or notation that survives normalization.
func normalizePath(path string, renames *pathMapping) (string, bool) {
	if path == "" || path == os.DevNull || path == "/dev/null" {
		return "", false
	}
	for i := 0; i < len(path); i++ {
		if path[i] == 0 {
			return "", false
		}
	}

	oldPath, newPath, isRename := parseRenamePath(path)
	if isRename {
		renames.record(oldPath, newPath)
		path = newPath
	}

	if containsRenameNotation(path) {
		return "", false
	}
	return path, true
}
