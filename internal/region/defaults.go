package region

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/yourusername/agriyield/internal/models"
)

// DefaultsTable is the immutable region-key -> baseline parameters lookup.
// It is built once at startup, optionally from a policy file, and only read
// afterwards, so it is safe for concurrent use.
type DefaultsTable struct {
	entries map[string]models.RegionDefaults
}

// NewDefaultsTable returns a table over the built-in baselines.
func NewDefaultsTable() *DefaultsTable {
	return &DefaultsTable{entries: builtinDefaults}
}

// LoadDefaultsTable reads a region-defaults policy file (YAML, one mapping
// per region key) and validates every entry. The baselines are hand-authored
// heuristics, so deployments can swap them without a rebuild; a file that
// fails validation fails startup rather than serving skewed predictions.
func LoadDefaultsTable(path string) (*DefaultsTable, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read region defaults file: %w", err)
	}

	entries := make(map[string]models.RegionDefaults)
	if err := v.Unmarshal(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse region defaults: %w", err)
	}
	if _, ok := entries[DefaultKey]; !ok {
		return nil, fmt.Errorf("region defaults file must contain a %q entry", DefaultKey)
	}
	for key, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("region %q: %w", key, err)
		}
	}

	return &DefaultsTable{entries: entries}, nil
}

// Get returns the defaults for a region key, falling back to the "default"
// entry for unknown keys. Pure lookup, no I/O.
func (t *DefaultsTable) Get(regionKey string) models.RegionDefaults {
	if d, ok := t.entries[regionKey]; ok {
		return d
	}
	return t.entries[DefaultKey]
}

// Keys returns every region key in the table.
func (t *DefaultsTable) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	return keys
}

// Baseline soil and agronomic parameters per region. Typical values for the
// dominant agricultural zones of each country; the "default" entry serves
// any unmatched region.
var builtinDefaults = map[string]models.RegionDefaults{
	"India": {
		SoilPH: 7.0, Nitrogen: 250.0, Phosphorus: 25.0, Potassium: 200.0,
		OrganicMatter: 1.0, HumidityPct: 65.0, SunshineHours: 8.0,
		Elevation: 200.0, NDVI: 0.65, Pesticides: 120.0,
	},
	"USA": {
		SoilPH: 6.5, Nitrogen: 150.0, Phosphorus: 40.0, Potassium: 200.0,
		OrganicMatter: 2.5, HumidityPct: 60.0, SunshineHours: 7.5,
		Elevation: 500.0, NDVI: 0.70, Pesticides: 150.0,
	},
	"China": {
		SoilPH: 7.5, Nitrogen: 200.0, Phosphorus: 35.0, Potassium: 180.0,
		OrganicMatter: 1.8, HumidityPct: 62.0, SunshineHours: 7.0,
		Elevation: 800.0, NDVI: 0.68, Pesticides: 130.0,
	},
	"Brazil": {
		SoilPH: 5.5, Nitrogen: 120.0, Phosphorus: 30.0, Potassium: 150.0,
		OrganicMatter: 2.2, HumidityPct: 75.0, SunshineHours: 6.5,
		Elevation: 300.0, NDVI: 0.72, Pesticides: 110.0,
	},
	"Australia": {
		SoilPH: 7.2, Nitrogen: 100.0, Phosphorus: 20.0, Potassium: 120.0,
		OrganicMatter: 1.5, HumidityPct: 55.0, SunshineHours: 9.0,
		Elevation: 400.0, NDVI: 0.60, Pesticides: 90.0,
	},
	"Canada": {
		SoilPH: 6.8, Nitrogen: 180.0, Phosphorus: 45.0, Potassium: 220.0,
		OrganicMatter: 3.0, HumidityPct: 68.0, SunshineHours: 6.0,
		Elevation: 600.0, NDVI: 0.66, Pesticides: 140.0,
	},
	"Russia": {
		SoilPH: 6.0, Nitrogen: 90.0, Phosphorus: 25.0, Potassium: 160.0,
		OrganicMatter: 2.8, HumidityPct: 70.0, SunshineHours: 5.5,
		Elevation: 1000.0, NDVI: 0.58, Pesticides: 80.0,
	},
	DefaultKey: {
		SoilPH: 6.5, Nitrogen: 150.0, Phosphorus: 30.0, Potassium: 150.0,
		OrganicMatter: 2.0, HumidityPct: 65.0, SunshineHours: 7.0,
		Elevation: 500.0, NDVI: 0.65, Pesticides: 120.0,
	},
}
