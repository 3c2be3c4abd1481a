package predictor

import (
	"os"
	"path/filepath"
	"testing"
)

const validArtifact = `{
	"features": ["duration_min", "avg_heart_rate"],
	"means": [40, 120],
	"scales": [10, 15],
	"classes": [0, 1, 2],
	"coefficients": [[-1.0, -1.0], [0.1, 0.1], [1.0, 1.0]],
	"intercepts": [0.0, 0.5, -0.2]
}`

func TestParseAndPredict(t *testing.T) {
	model, err := Parse([]byte(validArtifact))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if model.FeatureCount() != 2 {
		t.Fatalf("FeatureCount = %d, want 2", model.FeatureCount())
	}

	tests := []struct {
		name     string
		features []float64
		want     int
	}{
		// standardized (0,0): scores 0, 0.5, -0.2 -> class 1
		{name: "at means", features: []float64{40, 120}, want: 1},
		// standardized (2,2): scores -4, 0.9, 3.8 -> class 2
		{name: "heavy session", features: []float64{60, 150}, want: 2},
		// standardized (-2,-2): scores 4, 0.1, -4.2 -> class 0
		{name: "light session", features: []float64{20, 90}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.Predict(tt.features)
			if err != nil {
				t.Fatalf("Predict error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Predict(%v) = %d, want %d", tt.features, got, tt.want)
			}
		})
	}
}

func TestPredictRejectsWrongLength(t *testing.T) {
	model, err := Parse([]byte(validArtifact))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if _, err := model.Predict([]float64{1}); err == nil {
		t.Fatal("expected error for short feature vector")
	}
	if _, err := model.Predict(nil); err == nil {
		t.Fatal("expected error for nil feature vector")
	}
}

func TestParseRejectsMalformedArtifacts(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "{"},
		{name: "no features", data: `{"features": []}`},
		{
			name: "scaler shape mismatch",
			data: `{"features": ["a", "b"], "means": [0], "scales": [1, 1], "classes": [0], "coefficients": [[0, 0]], "intercepts": [0]}`,
		},
		{
			name: "class shape mismatch",
			data: `{"features": ["a"], "means": [0], "scales": [1], "classes": [0, 1], "coefficients": [[0]], "intercepts": [0]}`,
		},
		{
			name: "short coefficient row",
			data: `{"features": ["a", "b"], "means": [0, 0], "scales": [1, 1], "classes": [0], "coefficients": [[0]], "intercepts": [0]}`,
		},
		{
			name: "zero scale",
			data: `{"features": ["a"], "means": [0], "scales": [0], "classes": [0], "coefficients": [[0]], "intercepts": [0]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(validArtifact), 0o644); err != nil {
		t.Fatal(err)
	}

	model, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if model.FeatureCount() != 2 {
		t.Fatalf("FeatureCount = %d, want 2", model.FeatureCount())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing artifact")
	}
}
