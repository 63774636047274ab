package models

// WeatherSnapshot is the reduced weather picture for one location and year,
// produced fresh per request and never persisted.
//
// HumidityPct is an estimate derived from temperature and precipitation, not
// a measured quantity - the archive endpoint the gateway consumes does not
// report humidity, so downstream consumers should treat it as approximate.
type WeatherSnapshot struct {
	AvgTemp          float64 `json:"temperature"`
	AnnualRainfallMM float64 `json:"rainfall"`
	HumidityPct      float64 `json:"humidity"`
	SunshineHours    float64 `json:"sunshine_hours"`
}

// Hard-coded weather fallbacks, used when both the location-level and the
// region-level fetch fail. A weather outage degrades the prediction, it
// never fails the request.
const (
	FallbackAvgTemp       = 22.0
	FallbackRainfallMM    = 1000.0
	FallbackHumidityPct   = 65.0
	FallbackSunshineHours = 7.0
)

// FallbackWeather returns the documented hard-coded snapshot.
func FallbackWeather() WeatherSnapshot {
	return WeatherSnapshot{
		AvgTemp:          FallbackAvgTemp,
		AnnualRainfallMM: FallbackRainfallMM,
		HumidityPct:      FallbackHumidityPct,
		SunshineHours:    FallbackSunshineHours,
	}
}
