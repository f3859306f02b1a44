// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/techdebtgpt/maintsight/internal/contract"
	"github.com/techdebtgpt/maintsight/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePredictions prints ranked prediction results using the configured output format.
func (ow *OutWriter) WritePredictions(results []schema.RankedResult, cfg *contract.Config, duration time.Duration) error {
	return WritePredictionResults(results, cfg, duration)
}

// WriteFeatures prints per-file feature vectors using the configured output format.
func (ow *OutWriter) WriteFeatures(modules []string, vectors [][]float64, featureNames []string, cfg *contract.Config) error {
	return WriteFeatureResults(modules, vectors, featureNames, cfg)
}

// WriteRunStatus prints run store status using the configured output format.
func (ow *OutWriter) WriteRunStatus(status schema.StoreStatus, runs []schema.RunRecord, cfg *contract.Config) error {
	return WriteRunStatusResults(status, runs, cfg)
}
