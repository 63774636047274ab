package features

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/montanaflynn/stats"
)

// ScalerSpec is the robust-scaling artifact exported alongside the trained
// model: per-feature median and interquartile range, fitted on the training
// set. Features lists the columns the spec covers; when empty the spec is
// treated as positional over the whole schema.
type ScalerSpec struct {
	Features []string  `json:"features,omitempty"`
	Center   []float64 `json:"center"`
	Scale    []float64 `json:"scale"`
}

// LoadScalerSpec reads a scaler artifact from disk.
func LoadScalerSpec(path string) (*ScalerSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scaler spec: %w", err)
	}
	var spec ScalerSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing scaler spec %s: %w", path, err)
	}
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("scaler spec %s: %w", path, err)
	}
	return &spec, nil
}

func (s *ScalerSpec) validate() error {
	if len(s.Center) != len(s.Scale) {
		return fmt.Errorf("center has %d entries, scale has %d", len(s.Center), len(s.Scale))
	}
	if len(s.Features) > 0 && len(s.Features) != len(s.Center) {
		return fmt.Errorf("features has %d entries, center has %d", len(s.Features), len(s.Center))
	}
	if len(s.Features) == 0 && len(s.Center) != len(ModelSchema) {
		return fmt.Errorf("positional spec has %d entries, schema has %d", len(s.Center), len(ModelSchema))
	}
	return nil
}

// Transform applies (x - center) / scale in place to the numeric features of
// the vector, leaving indicator columns untouched. A spec without feature
// names carries no way to tell indicators apart, so every column is treated
// as numeric and scaled positionally (documented lower-confidence fallback).
// A zero IQR degrades to a divisor of 1 so constant training columns pass
// through centered but unexploded.
func (s *ScalerSpec) Transform(v *Vector) {
	if len(s.Features) == 0 {
		for i, name := range v.Names() {
			s.apply(v, name, i)
		}
		return
	}
	for i, name := range s.Features {
		if IsIndicator(name) {
			continue
		}
		s.apply(v, name, i)
	}
}

func (s *ScalerSpec) apply(v *Vector, name string, i int) {
	scale := s.Scale[i]
	if scale == 0 {
		scale = 1
	}
	// Set rejects names outside the schema, so stale artifact columns are
	// ignored rather than corrupting the vector.
	_ = v.Set(name, (v.Get(name)-s.Center[i])/scale)
}

// FitScalerSpec fits a robust scaler over columns of sample vectors: center
// is the per-feature median, scale the interquartile range. Indicator
// features are included with identity parameters so the fitted spec covers
// the full schema. Used by the offline calibration tool, not the serving
// path.
func FitScalerSpec(samples []*Vector) (*ScalerSpec, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("fitting scaler: no samples")
	}

	spec := &ScalerSpec{
		Features: append([]string(nil), ModelSchema...),
		Center:   make([]float64, len(ModelSchema)),
		Scale:    make([]float64, len(ModelSchema)),
	}

	column := make([]float64, len(samples))
	for i, name := range ModelSchema {
		if IsIndicator(name) {
			spec.Center[i] = 0
			spec.Scale[i] = 1
			continue
		}
		for j, v := range samples {
			column[j] = v.Get(name)
		}
		median, err := stats.Median(column)
		if err != nil {
			return nil, fmt.Errorf("fitting %s: %w", name, err)
		}
		quartiles, err := stats.Quartile(column)
		if err != nil {
			return nil, fmt.Errorf("fitting %s: %w", name, err)
		}
		spec.Center[i] = median
		spec.Scale[i] = quartiles.Q3 - quartiles.Q1
	}
	return spec, nil
}
