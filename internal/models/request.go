// Package models defines the typed records exchanged between the
// prediction pipeline components.
package models

// Canonical agronomic parameter names. These match the feature names the
// regression model was trained with, so the provenance lists in a
// PredictionResult can be compared directly against the model schema.
const (
	FieldRainfall      = "average_rain_fall_mm_per_year"
	FieldAvgTemp       = "avg_temp"
	FieldHumidity      = "humidity"
	FieldSunshineHours = "sunshine_hours"
	FieldSoilPH        = "soil_ph"
	FieldNitrogen      = "nitrogen"
	FieldPhosphorus    = "phosphorus"
	FieldPotassium     = "potassium"
	FieldOrganicMatter = "organic_matter"
	FieldNDVI          = "ndvi_avg"
	FieldElevation     = "elevation"
	FieldPesticides    = "pesticides_tonnes"
)

// WeatherFieldNames are the four parameters the weather gateway always
// overwrites in the working record (unless the caller supplied them).
func WeatherFieldNames() []string {
	return []string{FieldRainfall, FieldAvgTemp, FieldHumidity, FieldSunshineHours}
}

// PredictionRequest is the caller-supplied input for a farmer-friendly
// prediction. Location and Crop are required; everything else is optional
// and filled from regional defaults or fetched weather. Optional fields use
// pointers so "absent" and "zero" stay distinguishable - any field the
// caller supplies explicitly is authoritative and is never overwritten.
type PredictionRequest struct {
	Location string `json:"location" validate:"required"`
	Crop     string `json:"crop" validate:"required"`
	Year     int    `json:"year,omitempty" validate:"omitempty,gte=1960,lte=2100"`

	AvgTemp       *float64 `json:"avg_temp,omitempty"`
	RainfallMM    *float64 `json:"rainfall_mm,omitempty"`
	HumidityPct   *float64 `json:"humidity,omitempty" validate:"omitempty,gte=0,lte=100"`
	SunshineHours *float64 `json:"sunshine_hours,omitempty" validate:"omitempty,gte=0,lte=24"`
	SoilPH        *float64 `json:"soil_ph,omitempty" validate:"omitempty,gte=0,lte=14"`
	Nitrogen      *float64 `json:"nitrogen,omitempty" validate:"omitempty,gte=0"`
	Phosphorus    *float64 `json:"phosphorus,omitempty" validate:"omitempty,gte=0"`
	Potassium     *float64 `json:"potassium,omitempty" validate:"omitempty,gte=0"`
	OrganicMatter *float64 `json:"organic_matter,omitempty" validate:"omitempty,gte=0"`
	NDVI          *float64 `json:"ndvi_avg,omitempty" validate:"omitempty,gte=0,lte=1"`
	Elevation     *float64 `json:"elevation,omitempty"`
	Pesticides    *float64 `json:"pesticides_tonnes,omitempty" validate:"omitempty,gte=0"`
}

// FieldSet tracks which canonical field names were present in a request.
type FieldSet map[string]struct{}

// Has reports whether the named field is in the set.
func (s FieldSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Add inserts a field name into the set.
func (s FieldSet) Add(name string) {
	s[name] = struct{}{}
}

// SuppliedFields returns the set of canonical field names the caller
// explicitly provided. The orchestrator uses this set to restore
// caller-supplied values after weather overwrite and to compute the
// defaulted/fetched provenance lists in the result.
func (r *PredictionRequest) SuppliedFields() FieldSet {
	set := make(FieldSet)
	for name, ptr := range r.optionalFields() {
		if ptr != nil {
			set.Add(name)
		}
	}
	return set
}

func (r *PredictionRequest) optionalFields() map[string]*float64 {
	return map[string]*float64{
		FieldAvgTemp:       r.AvgTemp,
		FieldRainfall:      r.RainfallMM,
		FieldHumidity:      r.HumidityPct,
		FieldSunshineHours: r.SunshineHours,
		FieldSoilPH:        r.SoilPH,
		FieldNitrogen:      r.Nitrogen,
		FieldPhosphorus:    r.Phosphorus,
		FieldPotassium:     r.Potassium,
		FieldOrganicMatter: r.OrganicMatter,
		FieldNDVI:          r.NDVI,
		FieldElevation:     r.Elevation,
		FieldPesticides:    r.Pesticides,
	}
}
