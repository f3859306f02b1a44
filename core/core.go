// Package core wires the analysis pipeline: history aggregation, feature
// engineering and tree-ensemble scoring.
package core

import (
	"context"
	"time"

	"github.com/techdebtgpt/maintsight/core/agg"
	"github.com/techdebtgpt/maintsight/core/feature"
	"github.com/techdebtgpt/maintsight/core/model"
	"github.com/techdebtgpt/maintsight/internal/contract"
	"github.com/techdebtgpt/maintsight/schema"
)

// AnalysisResult pairs each file's aggregate statistics with its
// prediction. Activities and Predictions are parallel slices.
type AnalysisResult struct {
	Repo        string
	Activities  []schema.FileActivity
	Predictions []schema.RiskPrediction
	Duration    time.Duration
}

// RunAnalysis executes the full pipeline against one repository. The flow
// is strictly aggregate, engineer, score; there are no feedback loops. A
// repository with zero qualifying files yields an empty result, not an
// error. The store may be nil to disable run tracking.
func RunAnalysis(ctx context.Context, cfg *contract.Config, client contract.GitClient, store contract.RunStore) (*AnalysisResult, error) {
	started := time.Now()

	// --- 0. Begin run tracking (if configured) ---
	var runID int64
	if store != nil {
		configParams := map[string]any{
			"repo_path":     cfg.RepoPath,
			"branch":        cfg.Branch,
			"window_days":   cfg.WindowDays,
			"max_commits":   cfg.MaxCommits,
			"existing_only": cfg.ExistingOnly,
		}
		var err error
		runID, err = store.BeginRun(started, configParams)
		if err != nil {
			contract.LogWarn("run tracking initialization failed", err)
			runID = 0
		}
	}

	// --- 1. Aggregation phase ---
	aggregator, err := agg.NewAggregator(ctx, cfg, client)
	if err != nil {
		return nil, err
	}
	activities, err := aggregator.Aggregate(ctx)
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{
		Repo:       contract.RepoName(aggregator.RepoRoot()),
		Activities: activities,
	}
	if len(activities) == 0 {
		result.Duration = time.Since(started)
		endRun(store, runID, 0)
		return result, nil
	}

	// --- 2. Feature engineering phase ---
	vectors := make([][]float64, len(activities))
	for i, fa := range activities {
		vectors[i] = feature.ExtractVector(feature.Engineer(fa))
	}

	// --- 3. Scoring phase ---
	scorer := model.NewScorer()
	if err := scorer.Load(); err != nil {
		return nil, err
	}
	preds, err := scorer.Predict(vectors)
	if err != nil {
		return nil, err
	}

	result.Predictions = make([]schema.RiskPrediction, len(preds))
	for i, p := range preds {
		result.Predictions[i] = schema.RiskPrediction{
			Module:           activities[i].Module,
			DegradationScore: p.Calibrated,
			RawPrediction:    p.Raw,
			RiskCategory:     p.Category,
		}
		if store != nil && runID > 0 {
			if err := store.RecordPrediction(runID, activities[i], result.Predictions[i]); err != nil {
				contract.LogWarn("failed to record prediction", err)
			}
		}
	}

	result.Duration = time.Since(started)
	endRun(store, runID, len(activities))
	return result, nil
}

// ComputeFeatures runs only the aggregation and feature engineering phases,
// returning each file's module path alongside its ordered feature vector.
func ComputeFeatures(ctx context.Context, cfg *contract.Config, client contract.GitClient) ([]string, [][]float64, error) {
	aggregator, err := agg.NewAggregator(ctx, cfg, client)
	if err != nil {
		return nil, nil, err
	}
	activities, err := aggregator.Aggregate(ctx)
	if err != nil {
		return nil, nil, err
	}

	modules := make([]string, len(activities))
	vectors := make([][]float64, len(activities))
	for i, fa := range activities {
		modules[i] = fa.Module
		vectors[i] = feature.ExtractVector(feature.Engineer(fa))
	}
	return modules, vectors, nil
}

// endRun finalizes run tracking, tolerating store failures.
func endRun(store contract.RunStore, runID int64, totalFiles int) {
	if store == nil || runID == 0 {
		return
	}
	if err := store.EndRun(runID, time.Now(), totalFiles); err != nil {
		contract.LogWarn("failed to finalize run tracking", err)
	}
}
