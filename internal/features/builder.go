package features

import (
	"strings"

	"github.com/yourusername/agriyield/internal/models"
)

// Fixed codes carried over from the training dataset: vegetation health is
// the "healthy" ordinal category, light intensity a lux-scale constant.
const (
	vegetationHealthCode = 3.0
	lightIntensityLux    = 50000.0
)

// divisor offset keeps ratio features finite when a divisor is zero.
const epsilon = 0.001

// Builder deterministically expands a resolved working record into the full
// fixed-order feature vector. Pure function of its input; safe for
// concurrent use.
type Builder struct{}

// NewBuilder creates a feature vector builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build produces the model-ready vector: direct fields, one-hot region and
// crop blocks, and the engineered ratio/interaction/cycle features. Every
// schema feature not produced here stays zero-filled.
func (b *Builder) Build(rec *models.WorkingRecord) *Vector {
	v := NewVector()

	// Direct fields.
	v.Set("year", float64(rec.Year))
	v.Set("average_rain_fall_mm_per_year", rec.RainfallMM)
	v.Set("avg_temp", rec.AvgTemp)
	v.Set("pesticides_tonnes", rec.Pesticides)
	v.Set("soil_ph", rec.SoilPH)
	v.Set("nitrogen", rec.Nitrogen)
	v.Set("phosphorus", rec.Phosphorus)
	v.Set("potassium", rec.Potassium)
	v.Set("organic_matter", rec.OrganicMatter)
	v.Set("humidity", rec.HumidityPct)
	v.Set("sunshine_hours", rec.SunshineHours)
	v.Set("ndvi_avg", rec.NDVI)
	v.Set("elevation", rec.Elevation)
	v.Set("vegetation_health", vegetationHealthCode)
	v.Set("light_intensity", lightIntensityLux)

	// One-hot blocks. Unmatched inputs force the fallback indicator so the
	// model always receives a fully-specified block.
	v.Set(regionIndicatorFor(rec.Location), 1)
	v.Set(cropIndicatorFor(rec.Crop), 1)

	// Nutrient ratios and index.
	v.Set("n_p_ratio", rec.Nitrogen/(rec.Phosphorus+epsilon))
	v.Set("n_k_ratio", rec.Nitrogen/(rec.Potassium+epsilon))
	v.Set("p_k_ratio", rec.Phosphorus/(rec.Potassium+epsilon))
	v.Set("nutrient_index", (rec.Nitrogen+rec.Phosphorus+rec.Potassium)/3)

	// Mutually exclusive pH bands.
	v.Set("ph_acidic", boolToFloat(rec.SoilPH < 6.5))
	v.Set("ph_neutral", boolToFloat(rec.SoilPH >= 6.5 && rec.SoilPH <= 7.5))
	v.Set("ph_alkaline", boolToFloat(rec.SoilPH > 7.5))

	v.Set("high_organic_matter", boolToFloat(rec.OrganicMatter > 4.0))
	v.Set("organic_matter_squared", rec.OrganicMatter*rec.OrganicMatter)

	v.Set("high_vegetation", boolToFloat(vegetationHealthCode >= 3))
	v.Set("high_elevation", boolToFloat(rec.Elevation > 1000))
	v.Set("elevation_squared", rec.Elevation*rec.Elevation)

	v.Set("pesticide_efficiency", rec.Pesticides/(rec.RainfallMM+epsilon))
	v.Set("pesticide_intensity", rec.Pesticides/1000.0)
	v.Set("nitrogen_use_efficiency", rec.Nitrogen/(rec.RainfallMM+epsilon))

	inputCost := rec.Nitrogen + rec.Phosphorus + rec.Potassium + rec.Pesticides
	v.Set("total_input_cost_proxy", inputCost)
	v.Set("input_output_ratio", inputCost/(rec.NDVI+epsilon))

	// Climate cycles anchored at year 2000: ~7y ENSO, ~10y decadal.
	v.Set("el_nino_cycle", positiveMod(rec.Year-2000, 7))
	v.Set("decadal_climate_cycle", positiveMod(rec.Year-2000, 10))

	// Interaction terms.
	v.Set("nitrogen_x_phosphorus", rec.Nitrogen*rec.Phosphorus)
	v.Set("nitrogen_div_phosphorus", rec.Nitrogen/(rec.Phosphorus+epsilon))
	v.Set("soil_ph_x_organic_matter", rec.SoilPH*rec.OrganicMatter)
	v.Set("soil_ph_div_organic_matter", rec.SoilPH/(rec.OrganicMatter+epsilon))

	return v
}

// positiveMod gives the always-non-negative remainder, matching how the
// cycle features were encoded at training time.
func positiveMod(n, m int) float64 {
	r := n % m
	if r < 0 {
		r += m
	}
	return float64(r)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// regionIndicatorFor normalizes a raw area string onto the 7-country
// indicator set. The tables here are the crop-model's own, broader than the
// defaults resolver: they carry every sub-national name seen in training.
// Both tables are walked in order, so a location matching entries under two
// countries picks the same indicator on every call.
func regionIndicatorFor(location string) string {
	lower := strings.ToLower(location)

	for _, m := range areaLocations {
		if strings.Contains(lower, m.substring) {
			return "area_" + m.country
		}
	}

	for _, m := range areaCountryNames {
		if strings.Contains(lower, m.substring) {
			return "area_" + m.country
		}
	}

	return fallbackRegionIndicator
}

// cropIndicatorFor normalizes crop aliases onto the 5-crop indicator set.
// Crops outside the trained set map onto the nearest trained crop; anything
// unrecognized falls back to Rice.
func cropIndicatorFor(crop string) string {
	normalized, ok := cropAliases[strings.ToLower(strings.TrimSpace(crop))]
	if !ok {
		return fallbackCropIndicator
	}
	return "item_" + normalized
}

var cropAliases = map[string]string{
	"rice":      "Rice",
	"paddy":     "Rice",
	"wheat":     "Wheat",
	"corn":      "Corn",
	"maize":     "Corn",
	"cotton":    "Cotton",
	"soybean":   "Soybean",
	"soybeans":  "Soybean",
	"soya":      "Soybean",
	"barley":    "Wheat",
	"sugarcane": "Rice",
	"potato":    "Rice",
}

// areaMapping ties one location substring to the country indicator it
// selects. Table order is match priority.
type areaMapping struct {
	substring string
	country   string
}

var areaLocations = []areaMapping{
	{"mangalore", "India"}, {"bangalore", "India"}, {"mumbai", "India"},
	{"delhi", "India"}, {"kolkata", "India"}, {"chennai", "India"},
	{"hyderabad", "India"}, {"pune", "India"}, {"goa", "India"},
	{"kerala", "India"}, {"karnataka", "India"}, {"gujarat", "India"},
	{"maharashtra", "India"}, {"punjab", "India"}, {"haryana", "India"},
	{"uttar pradesh", "India"}, {"rajasthan", "India"}, {"bihar", "India"},
	{"west bengal", "India"}, {"assam", "India"}, {"odisha", "India"},
	{"tamil nadu", "India"}, {"andhra pradesh", "India"},

	{"california", "USA"}, {"texas", "USA"}, {"florida", "USA"},
	{"new york", "USA"}, {"iowa", "USA"}, {"illinois", "USA"},
	{"kansas", "USA"}, {"nebraska", "USA"}, {"minnesota", "USA"},
	{"wisconsin", "USA"}, {"michigan", "USA"}, {"ohio", "USA"},

	{"beijing", "China"}, {"shanghai", "China"}, {"guangzhou", "China"},
	{"shenzhen", "China"}, {"tianjin", "China"}, {"chongqing", "China"},

	{"sao paulo", "Brazil"}, {"rio de janeiro", "Brazil"},
	{"brasilia", "Brazil"}, {"salvador", "Brazil"}, {"fortaleza", "Brazil"},

	{"sydney", "Australia"}, {"melbourne", "Australia"},
	{"brisbane", "Australia"}, {"perth", "Australia"}, {"adelaide", "Australia"},

	{"toronto", "Canada"}, {"vancouver", "Canada"}, {"montreal", "Canada"},
	{"calgary", "Canada"}, {"ottawa", "Canada"},

	{"moscow", "Russia"}, {"saint petersburg", "Russia"},
	{"novosibirsk", "Russia"}, {"yekaterinburg", "Russia"},
}

var areaCountryNames = []areaMapping{
	{"india", "India"},
	{"usa", "USA"}, {"united states", "USA"}, {"america", "USA"},
	{"china", "China"},
	{"brazil", "Brazil"},
	{"australia", "Australia"},
	{"canada", "Canada"},
	{"russia", "Russia"}, {"russian federation", "Russia"},
}
