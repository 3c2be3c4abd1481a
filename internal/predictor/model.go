// Package predictor loads the externally trained fatigue model and evaluates
// it. The model is opaque to the rest of the service: callers hand it a
// fixed-length numeric vector and get a fatigue level back. Training, feature
// engineering and model selection all happen outside this repository.
package predictor

import (
	"encoding/json"
	"fmt"
	"os"
)

// Model predicts a fatigue level from one row of physiological inputs.
type Model interface {
	// Predict evaluates the model on a vector whose length must equal
	// FeatureCount.
	Predict(features []float64) (int, error)
	FeatureCount() int
}

// artifact is the serialized form produced by the offline training pipeline.
// Coefficients holds one row per class; the predicted class is the argmax of
// the standardized linear scores.
type artifact struct {
	Features   []string    `json:"features"`
	Means      []float64   `json:"means"`
	Scales     []float64   `json:"scales"`
	Classes    []int       `json:"classes"`
	Coeffs     [][]float64 `json:"coefficients"`
	Intercepts []float64   `json:"intercepts"`
}

type linearModel struct {
	art artifact
}

// Load reads a model artifact from disk.
func Load(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	return Parse(data)
}

// Parse builds a Model from serialized artifact bytes.
func Parse(data []byte) (Model, error) {
	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}

	n := len(art.Features)
	if n == 0 {
		return nil, fmt.Errorf("model artifact declares no features")
	}
	if len(art.Means) != n || len(art.Scales) != n {
		return nil, fmt.Errorf("model artifact scaler shape mismatch")
	}
	if len(art.Classes) == 0 || len(art.Coeffs) != len(art.Classes) || len(art.Intercepts) != len(art.Classes) {
		return nil, fmt.Errorf("model artifact class shape mismatch")
	}
	for i, row := range art.Coeffs {
		if len(row) != n {
			return nil, fmt.Errorf("model artifact coefficient row %d has %d values, want %d", i, len(row), n)
		}
	}
	for i, scale := range art.Scales {
		if scale == 0 {
			return nil, fmt.Errorf("model artifact scale %d is zero", i)
		}
	}

	return &linearModel{art: art}, nil
}

func (m *linearModel) FeatureCount() int {
	return len(m.art.Features)
}

func (m *linearModel) Predict(features []float64) (int, error) {
	n := m.FeatureCount()
	if len(features) != n {
		return 0, fmt.Errorf("expected %d features, got %d", n, len(features))
	}

	standardized := make([]float64, n)
	for i, v := range features {
		standardized[i] = (v - m.art.Means[i]) / m.art.Scales[i]
	}

	best := 0
	bestScore := 0.0
	for c := range m.art.Classes {
		score := m.art.Intercepts[c]
		for i, v := range standardized {
			score += m.art.Coeffs[c][i] * v
		}
		if c == 0 || score > bestScore {
			best = c
			bestScore = score
		}
	}

	return m.art.Classes[best], nil
}
