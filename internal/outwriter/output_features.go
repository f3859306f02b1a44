package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/techdebtgpt/maintsight/internal/contract"
	"github.com/techdebtgpt/maintsight/schema"
)

// WriteFeatureResults outputs per-file feature vectors, dispatching based on
// the output format configured. Modules and vectors are parallel slices and
// each vector holds one value per feature name.
func WriteFeatureResults(modules []string, vectors [][]float64, featureNames []string, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForFeatures(w, modules, vectors, featureNames)
		}, "Wrote JSON")
	default:
		// Feature vectors are too wide for a table; text falls back to CSV
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForFeatures(w, modules, vectors, featureNames, fmtFloat)
		}, "Wrote CSV")
	}
}

// writeCSVResultsForFeatures writes one row per module with a column per feature.
func writeCSVResultsForFeatures(w io.Writer, modules []string, vectors [][]float64, featureNames []string, fmtFloat func(float64) string) error {
	header := append([]string{"module"}, featureNames...)
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, module := range modules {
			rec := make([]string, 0, len(featureNames)+1)
			rec = append(rec, module)
			for _, v := range vectors[i] {
				rec = append(rec, fmtFloat(v))
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForFeatures writes feature vectors as name-keyed objects.
func writeJSONResultsForFeatures(w io.Writer, modules []string, vectors [][]float64, featureNames []string) error {
	type JSONFeatureResult struct {
		Module   string             `json:"module"`
		Features map[string]float64 `json:"features"`
	}

	output := make([]JSONFeatureResult, len(modules))
	for i, module := range modules {
		if len(vectors[i]) != len(featureNames) {
			return fmt.Errorf("feature vector for %s has %d values, want %d", module, len(vectors[i]), len(featureNames))
		}
		features := make(map[string]float64, len(featureNames))
		for j, name := range featureNames {
			features[name] = vectors[i][j]
		}
		output[i] = JSONFeatureResult{Module: module, Features: features}
	}

	return writeJSON(w, output)
}
