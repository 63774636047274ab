package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/yourusername/agriyield/internal/features"
	"github.com/yourusername/agriyield/internal/models"
)

// Heuristic is the deterministic fallback used when no trained artifact is
// available. It reproduces the central tendency of the demo model the
// service originally shipped with: a base yield adjusted by rainfall above
// 600mm, a temperate-band bonus, and diminishing pesticide returns. It
// reads raw (unscaled) feature rows.
type Heuristic struct {
	rainfallIdx  int
	tempIdx      int
	pesticideIdx int
}

const (
	heuristicBaseYield = 50.0
	heuristicMinYield  = 10.0
)

// NewHeuristic creates the fallback model.
func NewHeuristic() *Heuristic {
	idx := func(name string) int {
		for i, n := range features.ModelSchema {
			if n == name {
				return i
			}
		}
		return -1
	}
	return &Heuristic{
		rainfallIdx:  idx("average_rain_fall_mm_per_year"),
		tempIdx:      idx("avg_temp"),
		pesticideIdx: idx("pesticides_tonnes"),
	}
}

// Predict applies the heuristic to each row.
func (h *Heuristic) Predict(X *mat.Dense) ([]float64, error) {
	rows, cols := X.Dims()
	if cols != len(features.ModelSchema) {
		return nil, fmt.Errorf("%w: input has %d columns, heuristic expects %d",
			models.ErrSchemaMismatch, cols, len(features.ModelSchema))
	}

	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		rainfall := X.At(i, h.rainfallIdx)
		temp := X.At(i, h.tempIdx)
		pesticides := X.At(i, h.pesticideIdx)

		yield := heuristicBaseYield
		if rainfall > 600 {
			yield += (rainfall - 600) / 100
		}
		if temp > 15 && temp < 30 {
			yield += 5
		} else {
			yield -= 5
		}
		yield += min(pesticides/50, 10)

		out[i] = max(yield, heuristicMinYield)
	}
	return out, nil
}

// Info reports the fallback identity.
func (h *Heuristic) Info() ModelInfo {
	return ModelInfo{
		Type:         "Heuristic (Fallback)",
		IsFallback:   true,
		FeatureCount: len(features.ModelSchema),
	}
}

// WantsScaledInput is false: the thresholds are in physical units.
func (h *Heuristic) WantsScaledInput() bool { return false }
