package agronomy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/agriyield/internal/models"
)

// Validator decides whether a crop can plausibly be grown at a location
// under the given climate. It holds only static tables and is safe for
// concurrent use.
type Validator struct{}

// NewValidator creates a crop viability validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Check runs the viability gate: non-agricultural region first (critical),
// then crop-specific regional exclusions, then climate bounds when
// temperature and rainfall are known. A failed verdict carries alternative
// crops that would pass the same checks.
func (v *Validator) Check(crop, location string, temp, rainfall *float64) models.ViabilityVerdict {
	if reason, bad := v.nonAgricultural(location); bad {
		return models.ViabilityVerdict{
			Viable:         false,
			Reason:         reason,
			Recommendation: fmt.Sprintf("Consider locations with suitable agricultural conditions instead of %s", location),
			Severity:       models.SeverityCritical,
			Alternatives:   v.AlternativeCrops(location, temp, rainfall),
		}
	}

	if reason, bad := v.regionExcluded(crop, location); bad {
		return models.ViabilityVerdict{
			Viable:         false,
			Reason:         reason,
			Recommendation: fmt.Sprintf("Consider growing %s in more suitable regions or choose crops better adapted to %s", crop, location),
			Severity:       models.SeverityHigh,
			Alternatives:   v.AlternativeCrops(location, temp, rainfall),
		}
	}

	if temp != nil && rainfall != nil {
		if reason, bad := v.climateViolated(crop, *temp, *rainfall); bad {
			return models.ViabilityVerdict{
				Viable:         false,
				Reason:         reason,
				Recommendation: fmt.Sprintf("Current climate conditions in %s are not suitable for %s", location, crop),
				Severity:       models.SeverityHigh,
				Alternatives:   v.AlternativeCrops(location, temp, rainfall),
			}
		}
	}

	return models.ViabilityVerdict{
		Viable:         true,
		Reason:         fmt.Sprintf("%s appears suitable for cultivation in %s", crop, location),
		Recommendation: "Conditions look favorable for this crop",
		Severity:       models.SeverityNone,
	}
}

// AlternativeCrops scans the known crops and returns those that pass the
// regional-exclusion and climate checks for the location, sorted for
// stable output.
func (v *Validator) AlternativeCrops(location string, temp, rainfall *float64) []string {
	var suitable []string
	for crop := range cropRequirements {
		if _, bad := v.regionExcluded(crop, location); bad {
			continue
		}
		if temp != nil && rainfall != nil {
			if _, bad := v.climateViolated(crop, *temp, *rainfall); bad {
				continue
			}
		}
		suitable = append(suitable, crop)
	}
	sort.Strings(suitable)
	return suitable
}

func (v *Validator) nonAgricultural(location string) (string, bool) {
	lower := strings.ToLower(location)
	for _, region := range nonAgriculturalRegions {
		if strings.Contains(lower, region) {
			return fmt.Sprintf("Agriculture is not viable in %s", region), true
		}
	}
	return "", false
}

func (v *Validator) regionExcluded(crop, location string) (string, bool) {
	req, ok := cropRequirements[strings.ToLower(crop)]
	if !ok {
		return "", false
	}
	lower := strings.ToLower(location)
	for _, unsuitable := range req.UnsuitableRegions {
		if strings.Contains(lower, unsuitable) {
			return fmt.Sprintf("%s is not suitable for %s regions", crop, unsuitable), true
		}
	}
	return "", false
}

func (v *Validator) climateViolated(crop string, temp, rainfall float64) (string, bool) {
	req, ok := cropRequirements[strings.ToLower(crop)]
	if !ok {
		// Unknown crop: only reject at the generic extremes.
		switch {
		case temp < genericMinTemp:
			return fmt.Sprintf("Temperature too low (%.1f°C) for most crops", temp), true
		case temp > genericMaxTemp:
			return fmt.Sprintf("Temperature too high (%.1f°C) for most crops", temp), true
		case rainfall < genericMinRainfall:
			return fmt.Sprintf("Insufficient rainfall (%.0fmm) for most crops", rainfall), true
		case rainfall > genericMaxRainfall:
			return fmt.Sprintf("Excessive rainfall (%.0fmm) may cause flooding", rainfall), true
		}
		return "", false
	}

	switch {
	case temp < req.MinTemp:
		return fmt.Sprintf("%s requires minimum temperature of %.0f°C (current: %.1f°C)", crop, req.MinTemp, temp), true
	case temp > req.MaxTemp:
		return fmt.Sprintf("%s cannot tolerate temperatures above %.0f°C (current: %.1f°C)", crop, req.MaxTemp, temp), true
	case rainfall < req.MinRainfallMM:
		return fmt.Sprintf("%s requires minimum %.0fmm rainfall (current: %.0fmm)", crop, req.MinRainfallMM, rainfall), true
	case rainfall > req.MaxRainfallMM:
		return fmt.Sprintf("%s cannot handle more than %.0fmm rainfall (current: %.0fmm)", crop, req.MaxRainfallMM, rainfall), true
	}
	return "", false
}
