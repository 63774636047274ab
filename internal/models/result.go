package models

import (
	"time"

	"github.com/google/uuid"
)

// YieldUnit is the unit of every predicted yield value.
const YieldUnit = "hg/ha"

// PredictionResult is the assembled response for a successful prediction.
// DefaultedParameters and AutoFetchedWeather record provenance: which field
// names came from the region table and which from the weather gateway,
// computed against the caller's original field set.
type PredictionResult struct {
	ID                  uuid.UUID       `json:"id"`
	PredictedYield      float64         `json:"predicted_yield"`
	Unit                string          `json:"unit"`
	Confidence          string          `json:"confidence"`
	RegionUsed          string          `json:"region_used"`
	DefaultedParameters []string        `json:"defaulted_parameters"`
	AutoFetchedWeather  []string        `json:"auto_fetched_weather"`
	WeatherConditions   WeatherSnapshot `json:"weather_conditions"`
	ModelType           string          `json:"model_type"`
	PredictedAt         time.Time       `json:"predicted_at"`
}
