package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techdebtgpt/maintsight/schema"
)

func sampleActivity() schema.FileActivity {
	return schema.FileActivity{
		Module:          "src/parser.ts",
		Commits:         3,
		Authors:         2,
		LinesAdded:      30,
		LinesDeleted:    18,
		Churn:           48,
		BugCommits:      1,
		FeatureCommits:  1,
		RefactorCommits: 1,
		LinesPerAuthor:  15,
		ChurnPerCommit:  16,
		BugRatio:        1.0 / 3.0,
		DaysActive:      3,
		CommitsPerDay:   1,
	}
}

func TestEngineerDerivedFeatures(t *testing.T) {
	rec := Engineer(sampleActivity())

	assert.InDelta(t, 3, rec.Commits, 1e-9)
	assert.InDelta(t, 12, rec.NetLines, 1e-9)
	assert.InDelta(t, 48.0/31.0, rec.CodeStability, 1e-9)
	assert.InDelta(t, 0, rec.IsHighChurnCommit, 1e-9)
	assert.InDelta(t, 1.0/4.0, rec.BugCommitRate, 1e-9)
	assert.InDelta(t, 9, rec.CommitsSquared, 1e-9)
	assert.InDelta(t, 1.0/3.0, rec.AuthorConcentration, 1e-9)
	assert.InDelta(t, 30.0/4.0, rec.LinesPerCommit, 1e-9)
	assert.InDelta(t, 48.0/4.0, rec.ChurnRate, 1e-9)
	assert.InDelta(t, 18.0/31.0, rec.ModificationRatio, 1e-9)
	assert.InDelta(t, 48.0/3.0, rec.ChurnPerAuthor, 1e-9)
	assert.InDelta(t, 18.0/49.0, rec.DeletionRate, 1e-9)
	assert.InDelta(t, 3.0/4.0, rec.CommitDensity, 1e-9)
	assert.InDelta(t, 3, rec.DegradationDays, 1e-9)
}

func TestEngineerIsPure(t *testing.T) {
	fa := sampleActivity()
	first := Engineer(fa)
	second := Engineer(fa)
	assert.Equal(t, first, second)
}

func TestEngineerZeroActivity(t *testing.T) {
	// A zero-valued record must engineer cleanly: every denominator carries
	// a +1 smoothing term, so no feature may be NaN or Inf.
	rec := Engineer(schema.FileActivity{})
	vec := ExtractVector(rec)

	for i, v := range vec {
		assert.False(t, v != v, "feature %s is NaN", FeatureNames[i])
		assert.InDelta(t, 0, v, 1.0, "feature %s out of expected range", FeatureNames[i])
	}
	assert.InDelta(t, 1, rec.AuthorConcentration, 1e-9)
}

func TestHighChurnCommitFlag(t *testing.T) {
	tests := []struct {
		name           string
		churnPerCommit float64
		expected       float64
	}{
		{"below threshold", 99.9, 0},
		{"at threshold", 100.0, 0},
		{"above threshold", 100.1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Engineer(schema.FileActivity{ChurnPerCommit: tt.churnPerCommit})
			assert.Equal(t, tt.expected, rec.IsHighChurnCommit)
		})
	}
}

func TestExtractVectorMatchesFeatureNames(t *testing.T) {
	require.Len(t, FeatureNames, 26)

	seen := make(map[string]struct{}, len(FeatureNames))
	for _, name := range FeatureNames {
		_, dup := seen[name]
		assert.False(t, dup, "duplicate feature name %s", name)
		seen[name] = struct{}{}
	}

	vec := ExtractVector(Engineer(sampleActivity()))
	require.Len(t, vec, len(FeatureNames))

	// Spot-check positional alignment against the name list.
	byName := make(map[string]float64, len(vec))
	for i, name := range FeatureNames {
		byName[name] = vec[i]
	}
	assert.InDelta(t, 3, byName["commits"], 1e-9)
	assert.InDelta(t, 48, byName["churn"], 1e-9)
	assert.InDelta(t, 12, byName["net_lines"], 1e-9)
	assert.InDelta(t, 9, byName["commits_squared"], 1e-9)
	assert.InDelta(t, 3, byName["degradation_days"], 1e-9)
}

// Pins every slot of the vector, not just a sample: each record field set to
// its 1-based position in FeatureNames must come back in exactly that slot.
func TestExtractVectorFullOrder(t *testing.T) {
	rec := schema.FeatureRecord{
		Commits:             1,
		Authors:             2,
		LinesAdded:          3,
		LinesDeleted:        4,
		Churn:               5,
		BugCommits:          6,
		FeatureCommits:      7,
		RefactorCommits:     8,
		LinesPerAuthor:      9,
		ChurnPerCommit:      10,
		BugRatio:            11,
		DaysActive:          12,
		CommitsPerDay:       13,
		NetLines:            14,
		CodeStability:       15,
		IsHighChurnCommit:   16,
		BugCommitRate:       17,
		CommitsSquared:      18,
		AuthorConcentration: 19,
		LinesPerCommit:      20,
		ChurnRate:           21,
		ModificationRatio:   22,
		ChurnPerAuthor:      23,
		DeletionRate:        24,
		CommitDensity:       25,
		DegradationDays:     26,
	}

	vec := ExtractVector(rec)
	require.Len(t, vec, len(FeatureNames))
	for i, name := range FeatureNames {
		assert.Equal(t, float64(i+1), vec[i], "feature %s out of position", name)
	}
}
