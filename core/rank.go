package core

import (
	"sort"

	"github.com/techdebtgpt/maintsight/schema"
)

// Rank orders results worst-first by degradation score and truncates to
// limit. Ties break on module path so output is deterministic.
func Rank(result *AnalysisResult, limit int) []schema.RankedResult {
	entries := make([]schema.RankedResult, len(result.Predictions))
	for i := range result.Predictions {
		entries[i] = schema.RankedResult{
			Activity:   result.Activities[i],
			Prediction: result.Predictions[i],
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		si, sj := entries[i].Prediction.DegradationScore, entries[j].Prediction.DegradationScore
		if si != sj {
			return si > sj
		}
		return entries[i].Prediction.Module < entries[j].Prediction.Module
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
