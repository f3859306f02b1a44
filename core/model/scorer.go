package model

import (
	"errors"
	"math"

	"github.com/techdebtgpt/maintsight/internal/contract"
	"github.com/techdebtgpt/maintsight/schema"
)

// ErrNotLoaded is returned when Predict is called before Load. The scorer
// never auto-loads: an unloaded scorer is a caller bug, not a retry case.
var ErrNotLoaded = errors.New("model not loaded: call Load before Predict")

// Reference distribution of the training labels. Raw sigmoid outputs are
// rescaled to match it so scores stay comparable across repositories.
const (
	refMean = -0.011
	refStd  = 0.082
	refMin  = -0.531
	refMax  = 0.566

	// clipMargin allows modest extrapolation past the recorded label range
	// while still bounding pathological inputs.
	clipMargin = 0.1

	// stdEpsilon is the variance floor below which a batch counts as
	// degenerate. Averaging identical float64 scores leaves a residue on
	// the order of 1e-16, so an exact zero comparison would miss them.
	stdEpsilon = 1e-12
)

// Scorer owns the loaded tree ensemble: Unloaded until Load succeeds,
// Loaded forever after. Read-only once loaded, so safe to share.
type Scorer struct {
	model     *TreeModel
	baseScore float64
}

// NewScorer returns an unloaded scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Load deserializes the bundled model artifact. Idempotent; the first
// successful call wins.
func (s *Scorer) Load() error {
	return s.LoadFrom(bundledModel)
}

// LoadFrom deserializes a model artifact from raw bytes. Exposed for tests
// that exercise alternate model shapes.
func (s *Scorer) LoadFrom(data []byte) error {
	if s.model != nil {
		return nil
	}
	m, err := ParseModel(data)
	if err != nil {
		return err
	}
	if len(m.Trees) == 0 {
		contract.LogWarn("model has no trees; predictions fall back to the base score", nil)
	}
	s.model = m
	s.baseScore = m.BaseScore()
	return nil
}

// Loaded reports whether the scorer holds a model.
func (s *Scorer) Loaded() bool {
	return s.model != nil
}

// FeatureNames returns the loaded model's feature-name list. Informational
// only: vector length is not validated against it at inference time.
func (s *Scorer) FeatureNames() ([]string, error) {
	if s.model == nil {
		return nil, ErrNotLoaded
	}
	return s.model.ResolvedFeatureNames(), nil
}

// Prediction is the scorer's per-vector result.
type Prediction struct {
	Raw        float64             // Sigmoid of base score plus tree contributions
	Calibrated float64             // Raw rescaled to the reference distribution
	Category   schema.RiskCategory // Bucketed calibrated score
}

// Predict scores a batch of feature vectors. Raw scores are computed
// per-vector; calibration is a property of the whole batch, so the same
// vector can calibrate differently in different batches.
func (s *Scorer) Predict(vectors [][]float64) ([]Prediction, error) {
	if s.model == nil {
		return nil, ErrNotLoaded
	}

	raw := make([]float64, len(vectors))
	for i, vec := range vectors {
		raw[i] = s.scoreOne(vec)
	}

	calibrated := calibrate(raw)

	preds := make([]Prediction, len(vectors))
	for i := range preds {
		preds[i] = Prediction{
			Raw:        raw[i],
			Calibrated: calibrated[i],
			Category:   schema.CategoryForScore(calibrated[i]),
		}
	}
	return preds, nil
}

// scoreOne descends every tree and sums leaf weights into the base score,
// then squashes through the logistic function. Assumes a well-formed
// ensemble: a tree with a cycle would never terminate.
func (s *Scorer) scoreOne(vec []float64) float64 {
	score := s.baseScore
	for ti := range s.model.Trees {
		tree := &s.model.Trees[ti]
		if len(tree.LeftChildren) == 0 {
			continue
		}

		node := 0
		for tree.LeftChildren[node] != leafSentinel {
			var v float64
			if idx := tree.SplitIndices[node]; idx >= 0 && idx < len(vec) {
				v = vec[idx]
			}
			if v < tree.SplitConditions[node] {
				node = tree.LeftChildren[node]
			} else {
				node = tree.RightChildren[node]
			}
		}
		score += tree.BaseWeights[node]
	}
	return sigmoid(score)
}

// calibrate standardizes the batch's raw scores and rescales them to the
// reference label distribution. A zero-variance batch collapses to the
// reference mean exactly.
func calibrate(raw []float64) []float64 {
	out := make([]float64, len(raw))
	if len(raw) == 0 {
		return out
	}

	mean, std := meanStd(raw)
	if std < stdEpsilon {
		for i := range out {
			out[i] = refMean
		}
		return out
	}

	for i, r := range raw {
		z := (r - mean) / std
		out[i] = clip(z*refStd+refMean, refMin-clipMargin, refMax+clipMargin)
	}
	return out
}

// meanStd returns the mean and population standard deviation of values.
func meanStd(values []float64) (float64, float64) {
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return mean, math.Sqrt(sqDiff / n)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
