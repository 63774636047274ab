// Package agronomy applies climate-driven adjustments to agronomic records
// and validates crop viability for a location and climate.
package agronomy

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/agriyield/internal/models"
)

// Adjuster perturbs soil and nutrient values in a working record to reflect
// the fetched weather and known geomorphological categories of the location.
//
// Adjustments compound on whatever is currently in the record, so the
// orchestrator must invoke Adjust exactly once per request.
type Adjuster struct {
	logger *logrus.Logger
}

// NewAdjuster creates a climate/soil adjuster.
func NewAdjuster(logger *logrus.Logger) *Adjuster {
	return &Adjuster{logger: logger}
}

// Location keyword categories that shift soil characteristics.
var (
	coastalKeywords = []string{"mumbai", "chennai", "kolkata", "goa", "cochin", "coastal"}
	hillKeywords    = []string{"ooty", "shimla", "darjeeling", "hill", "mountain"}
	desertKeywords  = []string{"rajasthan", "jodhpur", "bikaner", "desert", "arid"}
	plainsKeywords  = []string{"punjab", "haryana", "uttar pradesh", "bihar", "gangetic"}
)

// Adjust applies temperature, rainfall, humidity and location-category
// perturbations to the record, each clamped to its documented floor or
// ceiling. The record is modified in place and returned.
func (a *Adjuster) Adjust(rec *models.WorkingRecord, weather models.WeatherSnapshot, location string) *models.WorkingRecord {
	// Temperature extremes.
	if weather.AvgTemp > 35 {
		rec.SoilPH = max(rec.SoilPH-0.2, 5.5)
		rec.OrganicMatter = max(rec.OrganicMatter-0.3, 0.5)
		rec.Nitrogen *= 0.9
	} else if weather.AvgTemp < 10 {
		rec.SoilPH = min(rec.SoilPH+0.1, 8.0)
		rec.OrganicMatter *= 1.2
		rec.Nitrogen *= 1.1
	}

	// Rainfall extremes. Heavy rain leaches nutrients and acidifies.
	if weather.AnnualRainfallMM > 2000 {
		rec.SoilPH = max(rec.SoilPH-0.3, 5.0)
		rec.Potassium *= 0.8
		rec.Phosphorus *= 0.9
	} else if weather.AnnualRainfallMM < 500 {
		rec.SoilPH = min(rec.SoilPH+0.3, 8.5)
		rec.OrganicMatter = max(rec.OrganicMatter-0.5, 0.2)
		rec.Nitrogen *= 0.7
	}

	// Humidity drives vegetation vigor.
	if weather.HumidityPct > 80 {
		rec.NDVI = min(rec.NDVI+0.05, 0.9)
	} else if weather.HumidityPct < 40 {
		rec.NDVI = max(rec.NDVI-0.1, 0.3)
	}

	lower := strings.ToLower(location)

	if matchesAny(lower, coastalKeywords) {
		rec.SoilPH = min(rec.SoilPH+0.2, 8.0)
		rec.Potassium *= 1.1
	}
	if matchesAny(lower, hillKeywords) {
		rec.Elevation = 1500.0
		rec.OrganicMatter *= 1.3
		rec.SoilPH = max(rec.SoilPH-0.1, 5.8)
	}
	if matchesAny(lower, desertKeywords) {
		rec.SoilPH = min(rec.SoilPH+0.5, 8.5)
		rec.OrganicMatter = max(rec.OrganicMatter-0.8, 0.1)
		rec.Nitrogen *= 0.6
	}
	if matchesAny(lower, plainsKeywords) {
		rec.Nitrogen *= 1.2
		rec.Phosphorus *= 1.1
		rec.OrganicMatter *= 1.1
	}

	a.logger.WithFields(logrus.Fields{
		"location":       location,
		"soil_ph":        rec.SoilPH,
		"nitrogen":       rec.Nitrogen,
		"organic_matter": rec.OrganicMatter,
	}).Debug("Applied climate soil adjustments")

	return rec
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
