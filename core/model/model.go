// Package model loads the bundled gradient-boosted tree ensemble and
// scores feature vectors with it.
package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

//go:embed model.json
var bundledModel []byte

// leafSentinel marks a node with no left child, i.e. a leaf.
const leafSentinel = -1

// defaultBaseScore is the pre-sigmoid starting score used when the
// learner's base-score parameter is absent or unparseable.
const defaultBaseScore = 0.5

// Tree is one binary decision tree in structure-of-arrays layout: node i's
// children, split feature, split threshold and leaf weight all live at
// index i of the parallel slices. A left child of leafSentinel makes node
// i a leaf whose contribution is BaseWeights[i].
type Tree struct {
	LeftChildren    []int     `json:"left_children"`
	RightChildren   []int     `json:"right_children"`
	SplitIndices    []int     `json:"split_indices"`
	SplitConditions []float64 `json:"split_conditions"`
	BaseWeights     []float64 `json:"base_weights"`
}

// learnerModelParam mirrors the learner parameter block of the artifact.
// BaseScore is serialized as a bracket-wrapped float literal, e.g. "[-0.012]".
type learnerModelParam struct {
	BaseScore string `json:"base_score"`
}

// learnerMeta is the nested learner metadata; it carries a second copy of
// the feature-name list used when the top-level list is absent.
type learnerMeta struct {
	ModelParam   learnerModelParam `json:"learner_model_param"`
	FeatureNames []string          `json:"feature_names"`
}

// TreeModel is the immutable, pre-trained ensemble. Loaded once per
// process and never mutated afterwards.
type TreeModel struct {
	FeatureNames []string    `json:"feature_names"`
	Learner      learnerMeta `json:"learner"`
	Trees        []Tree      `json:"trees"`
}

// ParseModel deserializes a model artifact and validates tree shape.
func ParseModel(data []byte) (*TreeModel, error) {
	var m TreeModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}

	for i, t := range m.Trees {
		n := len(t.LeftChildren)
		if len(t.RightChildren) != n || len(t.SplitIndices) != n ||
			len(t.SplitConditions) != n || len(t.BaseWeights) != n {
			return nil, fmt.Errorf("model tree %d has mismatched node arrays", i)
		}
	}

	return &m, nil
}

// ResolvedFeatureNames returns the model's feature-name list, preferring
// the top-level list and falling back to the copy nested in the learner
// metadata. May be empty if the artifact carries neither.
func (m *TreeModel) ResolvedFeatureNames() []string {
	if len(m.FeatureNames) > 0 {
		return m.FeatureNames
	}
	return m.Learner.FeatureNames
}

// BaseScore parses the learner's bracket-wrapped base-score literal. An
// absent or unparseable value falls back to defaultBaseScore.
func (m *TreeModel) BaseScore() float64 {
	raw := strings.TrimSpace(m.Learner.ModelParam.BaseScore)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if raw == "" {
		return defaultBaseScore
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return defaultBaseScore
	}
	return v
}
