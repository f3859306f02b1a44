package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelBundledArtifact(t *testing.T) {
	m, err := ParseModel(bundledModel)
	require.NoError(t, err)

	assert.Len(t, m.Trees, 24)
	assert.Len(t, m.ResolvedFeatureNames(), 26)
	assert.InDelta(t, -0.012, m.BaseScore(), 1e-9)
}

func TestParseModelRejectsMismatchedArrays(t *testing.T) {
	bad := `{
		"trees": [{
			"left_children": [1, -1, -1],
			"right_children": [2, -1],
			"split_indices": [0, -1, -1],
			"split_conditions": [0.5, 0, 0],
			"base_weights": [0, 0.1, -0.1]
		}]
	}`

	_, err := ParseModel([]byte(bad))
	assert.ErrorContains(t, err, "mismatched node arrays")
}

func TestParseModelRejectsInvalidJSON(t *testing.T) {
	_, err := ParseModel([]byte("{not json"))
	assert.ErrorContains(t, err, "failed to parse model artifact")
}

func TestBaseScore(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{"bracket wrapped negative", "[-0.012]", -0.012},
		{"bracket wrapped positive", "[0.25]", 0.25},
		{"bare literal", "0.3", 0.3},
		{"absent falls back", "", defaultBaseScore},
		{"garbage falls back", "[abc]", defaultBaseScore},
		{"empty brackets fall back", "[]", defaultBaseScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &TreeModel{}
			m.Learner.ModelParam.BaseScore = tt.raw
			assert.InDelta(t, tt.expected, m.BaseScore(), 1e-9)
		})
	}
}

func TestResolvedFeatureNames(t *testing.T) {
	t.Run("top level preferred", func(t *testing.T) {
		m := &TreeModel{FeatureNames: []string{"a", "b"}}
		m.Learner.FeatureNames = []string{"x"}
		assert.Equal(t, []string{"a", "b"}, m.ResolvedFeatureNames())
	})

	t.Run("learner fallback", func(t *testing.T) {
		m := &TreeModel{}
		m.Learner.FeatureNames = []string{"x", "y"}
		assert.Equal(t, []string{"x", "y"}, m.ResolvedFeatureNames())
	})

	t.Run("neither present", func(t *testing.T) {
		m := &TreeModel{}
		assert.Empty(t, m.ResolvedFeatureNames())
	})
}
