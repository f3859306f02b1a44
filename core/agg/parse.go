package agg

import (
	"strconv"
	"strings"
	"time"

	"github.com/techdebtgpt/maintsight/schema"
)

// commitHeader is the parsed state of the commit whose numstat lines are
// currently being read.
type commitHeader struct {
	hash      string
	author    string
	timestamp time.Time
	subject   string
	tags      CommitTags
}

// CommitTags classifies a commit by its subject line. Categories are not
// mutually exclusive: a "fix and clean up" commit is both a bug fix and a
// refactor.
type CommitTags struct {
	Bug      bool
	Feature  bool
	Refactor bool
}

// Keyword sets for commit classification, matched case-insensitively as
// substrings of the subject line.
var (
	bugKeywords      = []string{"fix", "bug", "patch", "hotfix", "bugfix"}
	featureKeywords  = []string{"feat", "feature", "add", "implement"}
	refactorKeywords = []string{"refactor", "clean", "improve"}
)

// ClassifyCommit derives the category tags for a commit subject line.
// Pure function: same subject, same tags.
func ClassifyCommit(subject string) CommitTags {
	lower := strings.ToLower(subject)
	return CommitTags{
		Bug:      containsAny(lower, bugKeywords),
		Feature:  containsAny(lower, featureKeywords),
		Refactor: containsAny(lower, refactorKeywords),
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// parseLog walks the raw history output line by line, calling fn once per
// parseable numstat entry with the commit it belongs to. Lines before the
// first valid header and malformed lines are skipped.
func parseLog(out []byte, fn func(commit *commitHeader, change schema.FileChange)) {
	lines := strings.Split(string(out), "\n")
	var current *commitHeader

	for _, l := range lines {
		l = strings.Trim(l, " \t\r'")

		if strings.HasPrefix(l, "--") {
			if header, ok := parseCommitHeader(l); ok {
				current = header
			} else {
				current = nil
			}
			continue
		}
		if l == "" || current == nil {
			continue
		}

		change, ok := parseNumstatLine(l)
		if !ok {
			continue
		}
		fn(current, change)
	}
}

// parseCommitHeader extracts hash, author email, epoch timestamp and
// subject from a header line of the form --hash|email|epoch|subject.
func parseCommitHeader(line string) (*commitHeader, bool) {
	if len(line) < 3 {
		return nil, false
	}
	parts := strings.SplitN(line[2:], "|", 4)
	if len(parts) != 4 {
		return nil, false
	}

	epoch, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil, false
	}

	subject := parts[3]
	return &commitHeader{
		hash:      parts[0],
		author:    parts[1],
		timestamp: time.Unix(epoch, 0).UTC(),
		subject:   subject,
		tags:      ClassifyCommit(subject),
	}, true
}

// parseNumstatLine parses an added/removed/path triple. Binary files
// report "-" for both counters; those count as zero churn.
func parseNumstatLine(line string) (schema.FileChange, bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 3 || parts[2] == "" {
		return schema.FileChange{}, false
	}

	return schema.FileChange{
		Added:   parseChurnValue(parts[0]),
		Removed: parseChurnValue(parts[1]),
		Path:    parts[2],
	}, true
}

// parseChurnValue converts a churn string to int, handling "-" as 0.
func parseChurnValue(s string) int {
	if s == "-" {
		return 0
	}
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		return val
	}
	return 0
}
