package agronomy

// CropRequirements documents the climate envelope and regional exclusions
// for one crop. The tables are hand-authored policy data.
type CropRequirements struct {
	MinTemp           float64
	MaxTemp           float64
	MinRainfallMM     float64
	MaxRainfallMM     float64
	UnsuitableRegions []string
}

// Generic climate limits for crops without a dedicated entry.
const (
	genericMinTemp     = -10.0
	genericMaxTemp     = 50.0
	genericMinRainfall = 100.0
	genericMaxRainfall = 5000.0
)

// Regions where agriculture is not viable at all, matched as substrings of
// the lowercased location.
var nonAgriculturalRegions = []string{
	"antarctica", "antarctic", "south pole", "north pole", "arctic",
	"sahara desert", "gobi desert", "death valley", "greenland",
	"siberia", "alaska tundra", "himalayan peaks", "mount everest",
	"ocean", "pacific ocean", "atlantic ocean", "indian ocean",
}

// Per-crop growing conditions, keyed by lowercase crop name. Rainfall
// ceilings are generous for monsoon regions.
var cropRequirements = map[string]CropRequirements{
	"wheat": {
		MinTemp: 3, MaxTemp: 35, MinRainfallMM: 300, MaxRainfallMM: 2000,
		UnsuitableRegions: []string{"tropical rainforest", "desert", "arctic", "antarctica"},
	},
	"rice": {
		MinTemp: 16, MaxTemp: 35, MinRainfallMM: 1000, MaxRainfallMM: 4000,
		UnsuitableRegions: []string{"desert", "arctic", "antarctica", "arid"},
	},
	"maize": {
		MinTemp: 8, MaxTemp: 35, MinRainfallMM: 400, MaxRainfallMM: 2500,
		UnsuitableRegions: []string{"arctic", "antarctica", "extreme desert"},
	},
	"corn": {
		MinTemp: 8, MaxTemp: 35, MinRainfallMM: 400, MaxRainfallMM: 2500,
		UnsuitableRegions: []string{"arctic", "antarctica", "extreme desert"},
	},
	"soybean": {
		MinTemp: 10, MaxTemp: 35, MinRainfallMM: 450, MaxRainfallMM: 2000,
		UnsuitableRegions: []string{"arctic", "antarctica", "desert"},
	},
	"cotton": {
		MinTemp: 15, MaxTemp: 40, MinRainfallMM: 500, MaxRainfallMM: 1800,
		UnsuitableRegions: []string{"arctic", "antarctica", "temperate cold"},
	},
	"barley": {
		MinTemp: 0, MaxTemp: 32, MinRainfallMM: 200, MaxRainfallMM: 1500,
		UnsuitableRegions: []string{"tropical", "antarctica", "extreme desert"},
	},
	"sugarcane": {
		MinTemp: 18, MaxTemp: 40, MinRainfallMM: 1000, MaxRainfallMM: 3500,
		UnsuitableRegions: []string{"temperate", "arctic", "antarctica", "desert"},
	},
	"potato": {
		MinTemp: 5, MaxTemp: 25, MinRainfallMM: 400, MaxRainfallMM: 2000,
		UnsuitableRegions: []string{"tropical hot", "antarctica", "extreme desert"},
	},
}

// KnownCrops returns the crop names with dedicated requirement entries.
func KnownCrops() []string {
	crops := make([]string, 0, len(cropRequirements))
	for name := range cropRequirements {
		crops = append(crops, name)
	}
	return crops
}
