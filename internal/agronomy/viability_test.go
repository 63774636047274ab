package agronomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/agriyield/internal/models"
)

func fp(v float64) *float64 { return &v }

func TestCheckNonAgriculturalRegionIsCritical(t *testing.T) {
	v := NewValidator()

	for _, location := range []string{"Antarctica", "McMurdo Station, antarctica", "Pacific Ocean", "Sahara Desert"} {
		verdict := v.Check("wheat", location, nil, nil)
		assert.False(t, verdict.Viable, "location %s", location)
		assert.Equal(t, models.SeverityCritical, verdict.Severity)
		assert.NotEmpty(t, verdict.Reason)
	}
}

func TestCheckRegionalExclusion(t *testing.T) {
	v := NewValidator()

	verdict := v.Check("rice", "an arid valley", nil, nil)
	require.False(t, verdict.Viable)
	assert.Equal(t, models.SeverityHigh, verdict.Severity)
	assert.Contains(t, verdict.Reason, "arid")
	assert.NotContains(t, verdict.Alternatives, "rice")
}

func TestCheckClimateBounds(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		crop     string
		temp     float64
		rainfall float64
		viable   bool
		reason   string
	}{
		{"wheat in moderate climate", "wheat", 22, 800, true, ""},
		{"rice needs rainfall", "rice", 25, 50, false, "rainfall"},
		{"wheat too cold", "wheat", -5, 800, false, "minimum temperature"},
		{"cotton too hot", "cotton", 45, 800, false, "above"},
		{"rice drowning", "rice", 25, 4500, false, "more than"},
		{"rice in monsoon range", "rice", 28, 2200, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := v.Check(tt.crop, "a farm", fp(tt.temp), fp(tt.rainfall))
			assert.Equal(t, tt.viable, verdict.Viable)
			if !tt.viable {
				assert.Equal(t, models.SeverityHigh, verdict.Severity)
				assert.Contains(t, verdict.Reason, tt.reason)
			}
		})
	}
}

func TestCheckUnknownCropUsesGenericLimits(t *testing.T) {
	v := NewValidator()

	verdict := v.Check("quinoa", "a farm", fp(20), fp(800))
	assert.True(t, verdict.Viable)

	verdict = v.Check("quinoa", "a farm", fp(55), fp(800))
	assert.False(t, verdict.Viable)
	assert.Contains(t, verdict.Reason, "too high")

	verdict = v.Check("quinoa", "a farm", fp(20), fp(50))
	assert.False(t, verdict.Viable)
	assert.Contains(t, verdict.Reason, "Insufficient rainfall")
}

func TestCheckSkipsClimateWhenUnknown(t *testing.T) {
	v := NewValidator()

	// Without temperature/rainfall only the region checks run.
	verdict := v.Check("rice", "a farm", nil, nil)
	assert.True(t, verdict.Viable)
	assert.Equal(t, models.SeverityNone, verdict.Severity)
}

func TestCheckIndiaWheatViable(t *testing.T) {
	v := NewValidator()

	verdict := v.Check("Wheat", "India", fp(22), fp(1000))
	assert.True(t, verdict.Viable)
	assert.Empty(t, verdict.Alternatives)
}

func TestAlternativeCropsFilterByClimate(t *testing.T) {
	v := NewValidator()

	// Hot and dry: rice and sugarcane need far more water.
	alts := v.AlternativeCrops("a farm", fp(30), fp(600))
	assert.NotContains(t, alts, "rice")
	assert.NotContains(t, alts, "sugarcane")
	assert.Contains(t, alts, "cotton")
	assert.Contains(t, alts, "maize")
}

func TestAlternativeCropsExcludeRegionalMisfits(t *testing.T) {
	v := NewValidator()

	alts := v.AlternativeCrops("desert outpost", nil, nil)
	assert.NotContains(t, alts, "rice")
	assert.NotContains(t, alts, "wheat")
	assert.NotContains(t, alts, "soybean")
	// Maize excludes only "extreme desert".
	assert.Contains(t, alts, "maize")
}

func TestAlternativeCropsSorted(t *testing.T) {
	v := NewValidator()
	alts := v.AlternativeCrops("a farm", fp(25), fp(1200))
	assert.IsNonDecreasing(t, alts)
	assert.NotEmpty(t, alts)
}
