package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techdebtgpt/maintsight/schema"
)

func rankInput(scored map[string]float64) *AnalysisResult {
	result := &AnalysisResult{}
	for module, score := range scored {
		result.Activities = append(result.Activities, schema.FileActivity{Module: module})
		result.Predictions = append(result.Predictions, schema.RiskPrediction{
			Module:           module,
			DegradationScore: score,
			RiskCategory:     schema.CategoryForScore(score),
		})
	}
	return result
}

func TestRankWorstFirst(t *testing.T) {
	result := rankInput(map[string]float64{
		"src/stable.go":   0.05,
		"src/improved.go": -0.2,
		"src/severe.go":   0.4,
		"src/degraded.go": 0.15,
	})

	ranked := Rank(result, 0)
	require.Len(t, ranked, 4)

	modules := make([]string, len(ranked))
	for i, r := range ranked {
		modules[i] = r.Prediction.Module
	}
	assert.Equal(t, []string{"src/severe.go", "src/degraded.go", "src/stable.go", "src/improved.go"}, modules)
}

func TestRankTieBreaksOnModule(t *testing.T) {
	result := rankInput(map[string]float64{
		"src/b.go": 0.1,
		"src/a.go": 0.1,
		"src/c.go": 0.1,
	})

	ranked := Rank(result, 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, "src/a.go", ranked[0].Prediction.Module)
	assert.Equal(t, "src/b.go", ranked[1].Prediction.Module)
	assert.Equal(t, "src/c.go", ranked[2].Prediction.Module)
}

func TestRankLimit(t *testing.T) {
	result := rankInput(map[string]float64{
		"src/a.go": 0.3,
		"src/b.go": 0.2,
		"src/c.go": 0.1,
	})

	ranked := Rank(result, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "src/a.go", ranked[0].Prediction.Module)
	assert.Equal(t, "src/b.go", ranked[1].Prediction.Module)

	assert.Len(t, Rank(result, 10), 3)
	assert.Empty(t, Rank(&AnalysisResult{}, 5))
}

func TestRankPairsActivityWithPrediction(t *testing.T) {
	result := &AnalysisResult{
		Activities: []schema.FileActivity{
			{Module: "src/a.go", Commits: 7},
			{Module: "src/b.go", Commits: 3},
		},
		Predictions: []schema.RiskPrediction{
			{Module: "src/a.go", DegradationScore: 0.01},
			{Module: "src/b.go", DegradationScore: 0.3},
		},
	}

	ranked := Rank(result, 0)
	require.Len(t, ranked, 2)
	assert.Equal(t, "src/b.go", ranked[0].Activity.Module)
	assert.Equal(t, 3, ranked[0].Activity.Commits)
	assert.Equal(t, "src/a.go", ranked[1].Activity.Module)
	assert.Equal(t, 7, ranked[1].Activity.Commits)
}
