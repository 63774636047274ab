package api

import "github.com/yourusername/agriyield/internal/models"

// predictRequest is the wire form of a prediction request. Several clients
// grew their own names for the climate fields, so the canonical names and
// their aliases are all accepted; canonical wins when both are present.
type predictRequest struct {
	Location string `json:"location"`
	Crop     string `json:"crop"`
	Year     int    `json:"year" validate:"omitempty,gte=1960,lte=2100"`

	AvgTemp            *float64 `json:"avg_temp"`
	Temperature        *float64 `json:"temperature"`
	AverageTemperature *float64 `json:"average_temperature"`

	RainfallMM     *float64 `json:"rainfall_mm"`
	Rainfall       *float64 `json:"rainfall"`
	AnnualRainfall *float64 `json:"average_rain_fall_mm_per_year"`

	Pesticides       *float64 `json:"pesticides_tonnes"`
	PesticidesLegacy *float64 `json:"pesticides"`

	Humidity      *float64 `json:"humidity"`
	SunshineHours *float64 `json:"sunshine_hours"`
	SoilPH        *float64 `json:"soil_ph"`
	Nitrogen      *float64 `json:"nitrogen"`
	Phosphorus    *float64 `json:"phosphorus"`
	Potassium     *float64 `json:"potassium"`
	OrganicMatter *float64 `json:"organic_matter"`
	NDVI          *float64 `json:"ndvi_avg"`
	Elevation     *float64 `json:"elevation"`
}

func coalesce(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// toModel resolves aliases onto the canonical request.
func (r *predictRequest) toModel() *models.PredictionRequest {
	return &models.PredictionRequest{
		Location:      r.Location,
		Crop:          r.Crop,
		Year:          r.Year,
		AvgTemp:       coalesce(r.AvgTemp, r.Temperature, r.AverageTemperature),
		RainfallMM:    coalesce(r.RainfallMM, r.Rainfall, r.AnnualRainfall),
		Pesticides:    coalesce(r.Pesticides, r.PesticidesLegacy),
		HumidityPct:   r.Humidity,
		SunshineHours: r.SunshineHours,
		SoilPH:        r.SoilPH,
		Nitrogen:      r.Nitrogen,
		Phosphorus:    r.Phosphorus,
		Potassium:     r.Potassium,
		OrganicMatter: r.OrganicMatter,
		NDVI:          r.NDVI,
		Elevation:     r.Elevation,
	}
}

// errorResponse is the wire form of any failed request.
type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// viabilityResponse is the wire form of a viability rejection: a structured
// verdict, not a bare error string.
type viabilityResponse struct {
	Viable         bool     `json:"viable"`
	Reason         string   `json:"reason"`
	Recommendation string   `json:"recommendation"`
	Severity       string   `json:"severity"`
	Alternatives   []string `json:"alternative_crops,omitempty"`
}
