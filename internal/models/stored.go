package models

import (
	"time"

	"github.com/google/uuid"
)

// StoredPrediction is a prediction history row: the request context plus
// the result, flattened for storage and the history listing endpoint.
type StoredPrediction struct {
	ID                  uuid.UUID `json:"id"`
	Location            string    `json:"location"`
	Crop                string    `json:"crop"`
	Year                int       `json:"year"`
	RegionUsed          string    `json:"region_used"`
	PredictedYield      float64   `json:"predicted_yield"`
	Unit                string    `json:"unit"`
	Confidence          string    `json:"confidence"`
	ModelType           string    `json:"model_type"`
	AvgTemp             float64   `json:"avg_temp"`
	RainfallMM          float64   `json:"rainfall_mm"`
	Humidity            float64   `json:"humidity"`
	SunshineHours       float64   `json:"sunshine_hours"`
	DefaultedParameters []string  `json:"defaulted_parameters"`
	AutoFetchedWeather  []string  `json:"auto_fetched_weather"`
	PredictedAt         time.Time `json:"predicted_at"`
}
