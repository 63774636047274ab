// Package model hosts the yield regression models: the trained forest
// loaded from an exported artifact and the deterministic heuristic used
// when no artifact is available.
package model

import "gonum.org/v1/gonum/mat"

// ModelInfo describes a loaded model for the info endpoint and result
// provenance.
type ModelInfo struct {
	Type         string `json:"model_type"`
	Version      string `json:"version,omitempty"`
	IsFallback   bool   `json:"is_fallback"`
	FeatureCount int    `json:"feature_count"`
}

// Confidence is the qualitative confidence label attached to predictions:
// "high" for the trained model, "medium" for the heuristic fallback.
func (i ModelInfo) Confidence() string {
	if i.IsFallback {
		return "medium"
	}
	return "high"
}

// RegressionModel predicts yields (hg/ha) for a batch of feature rows.
type RegressionModel interface {
	// Predict returns one yield per row of X. X must have exactly
	// Info().FeatureCount columns.
	Predict(X *mat.Dense) ([]float64, error)

	// Info reports the model's identity and expectations.
	Info() ModelInfo

	// WantsScaledInput reports whether rows must pass through the robust
	// scaler before prediction.
	WantsScaledInput() bool
}
