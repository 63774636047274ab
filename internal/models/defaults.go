package models

import "fmt"

// RegionDefaults holds the baseline agronomic parameters for one region.
// Instances are immutable after startup; the defaulting step copies values
// out of them and never writes back.
type RegionDefaults struct {
	SoilPH        float64 `mapstructure:"soil_ph" json:"soil_ph"`
	Nitrogen      float64 `mapstructure:"nitrogen" json:"nitrogen"`
	Phosphorus    float64 `mapstructure:"phosphorus" json:"phosphorus"`
	Potassium     float64 `mapstructure:"potassium" json:"potassium"`
	OrganicMatter float64 `mapstructure:"organic_matter" json:"organic_matter"`
	HumidityPct   float64 `mapstructure:"humidity" json:"humidity"`
	SunshineHours float64 `mapstructure:"sunshine_hours" json:"sunshine_hours"`
	Elevation     float64 `mapstructure:"elevation" json:"elevation"`
	NDVI          float64 `mapstructure:"ndvi_avg" json:"ndvi_avg"`
	Pesticides    float64 `mapstructure:"pesticides_tonnes" json:"pesticides_tonnes"`
}

// Validate checks the defaults against agronomically plausible ranges.
// Region tables are policy data loaded at startup, so a violation here
// fails the process before it can serve a skewed prediction.
func (d RegionDefaults) Validate() error {
	if d.SoilPH < 4.0 || d.SoilPH > 9.0 {
		return fmt.Errorf("soil_ph %.2f outside plausible range [4,9]", d.SoilPH)
	}
	positive := map[string]float64{
		"nitrogen":          d.Nitrogen,
		"phosphorus":        d.Phosphorus,
		"potassium":         d.Potassium,
		"organic_matter":    d.OrganicMatter,
		"humidity":          d.HumidityPct,
		"sunshine_hours":    d.SunshineHours,
		"elevation":         d.Elevation,
		"ndvi_avg":          d.NDVI,
		"pesticides_tonnes": d.Pesticides,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %.3f", name, v)
		}
	}
	return nil
}

// Field returns the default value for the given canonical field name.
// Ok is false for names a region table does not supply (weather is fetched,
// never defaulted from here except humidity and sunshine baselines).
func (d RegionDefaults) Field(name string) (float64, bool) {
	switch name {
	case FieldSoilPH:
		return d.SoilPH, true
	case FieldNitrogen:
		return d.Nitrogen, true
	case FieldPhosphorus:
		return d.Phosphorus, true
	case FieldPotassium:
		return d.Potassium, true
	case FieldOrganicMatter:
		return d.OrganicMatter, true
	case FieldHumidity:
		return d.HumidityPct, true
	case FieldSunshineHours:
		return d.SunshineHours, true
	case FieldElevation:
		return d.Elevation, true
	case FieldNDVI:
		return d.NDVI, true
	case FieldPesticides:
		return d.Pesticides, true
	default:
		return 0, false
	}
}

// DefaultableFieldNames lists the canonical names a region table supplies,
// in a stable order for provenance reporting.
func DefaultableFieldNames() []string {
	return []string{
		FieldSoilPH, FieldNitrogen, FieldPhosphorus, FieldPotassium,
		FieldOrganicMatter, FieldHumidity, FieldSunshineHours,
		FieldElevation, FieldNDVI, FieldPesticides,
	}
}
