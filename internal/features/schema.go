// Package features builds and scales the fixed-order feature vector the
// yield regression model was trained on.
package features

import "strings"

// ModelSchema is the fixed, ordered list of feature names the regression
// model expects. Vector length and name->position mapping must match the
// training artifact exactly; artifacts are validated against this list at
// load time so drift fails startup instead of inference.
var ModelSchema = []string{
	"year",
	"average_rain_fall_mm_per_year",
	"avg_temp",
	"pesticides_tonnes",
	"soil_ph",
	"nitrogen",
	"phosphorus",
	"potassium",
	"organic_matter",
	"humidity",
	"sunshine_hours",
	"ndvi_avg",
	"elevation",
	"vegetation_health",
	"light_intensity",

	"area_Australia",
	"area_Brazil",
	"area_Canada",
	"area_China",
	"area_India",
	"area_Russia",
	"area_USA",

	"item_Corn",
	"item_Cotton",
	"item_Rice",
	"item_Soybean",
	"item_Wheat",

	"n_p_ratio",
	"n_k_ratio",
	"p_k_ratio",
	"nutrient_index",
	"ph_acidic",
	"ph_neutral",
	"ph_alkaline",
	"high_organic_matter",
	"organic_matter_squared",
	"high_vegetation",
	"high_elevation",
	"elevation_squared",
	"pesticide_efficiency",
	"pesticide_intensity",
	"nitrogen_use_efficiency",
	"total_input_cost_proxy",
	"input_output_ratio",
	"el_nino_cycle",
	"decadal_climate_cycle",
	"nitrogen_x_phosphorus",
	"nitrogen_div_phosphorus",
	"soil_ph_x_organic_matter",
	"soil_ph_div_organic_matter",
}

// Indicator columns carry binary semantics and are excluded from scaling;
// putting a robust scaler over a 0/1 column would distort it.
var indicatorPrefixes = []string{"area_", "item_", "ph_", "high_"}

// IsIndicator reports whether a feature name is a one-hot or binary
// indicator column.
func IsIndicator(name string) bool {
	for _, prefix := range indicatorPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// NumericFeatures returns the schema names subject to scaling, in schema
// order.
func NumericFeatures() []string {
	var numeric []string
	for _, name := range ModelSchema {
		if !IsIndicator(name) {
			numeric = append(numeric, name)
		}
	}
	return numeric
}

// RegionIndicators and CropIndicators name the one-hot blocks. Exactly one
// member of each block is set per vector; unmatched inputs force the
// fallback member so the model never sees an all-zero block.
var (
	RegionIndicators = []string{
		"area_Australia", "area_Brazil", "area_Canada", "area_China",
		"area_India", "area_Russia", "area_USA",
	}
	CropIndicators = []string{
		"item_Corn", "item_Cotton", "item_Rice", "item_Soybean", "item_Wheat",
	}

	fallbackRegionIndicator = "area_India"
	fallbackCropIndicator   = "item_Rice"
)
