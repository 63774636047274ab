package models

// WorkingRecord is the fully-resolved, request-scoped agronomic record the
// feature builder consumes. The orchestrator constructs it by layering
// caller input, regional defaults, fetched weather and climate adjustments;
// by the time it reaches the builder every field holds a concrete value.
type WorkingRecord struct {
	Location string
	Crop     string
	Year     int

	AvgTemp       float64
	RainfallMM    float64
	HumidityPct   float64
	SunshineHours float64
	SoilPH        float64
	Nitrogen      float64
	Phosphorus    float64
	Potassium     float64
	OrganicMatter float64
	NDVI          float64
	Elevation     float64
	Pesticides    float64
}

// NewWorkingRecord seeds a working record from the caller-supplied request.
// Absent optional fields are left at zero; the orchestrator fills them from
// regional defaults before anything downstream reads them.
func NewWorkingRecord(req *PredictionRequest) *WorkingRecord {
	rec := &WorkingRecord{
		Location: req.Location,
		Crop:     req.Crop,
		Year:     req.Year,
	}
	setIf := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setIf(&rec.AvgTemp, req.AvgTemp)
	setIf(&rec.RainfallMM, req.RainfallMM)
	setIf(&rec.HumidityPct, req.HumidityPct)
	setIf(&rec.SunshineHours, req.SunshineHours)
	setIf(&rec.SoilPH, req.SoilPH)
	setIf(&rec.Nitrogen, req.Nitrogen)
	setIf(&rec.Phosphorus, req.Phosphorus)
	setIf(&rec.Potassium, req.Potassium)
	setIf(&rec.OrganicMatter, req.OrganicMatter)
	setIf(&rec.NDVI, req.NDVI)
	setIf(&rec.Elevation, req.Elevation)
	setIf(&rec.Pesticides, req.Pesticides)
	return rec
}

// Field returns a pointer to the record field with the given canonical
// name, or nil for unknown names. Used by the defaulting and restore logic
// so the caller-wins policy stays a pure function over field-name sets.
func (w *WorkingRecord) Field(name string) *float64 {
	switch name {
	case FieldAvgTemp:
		return &w.AvgTemp
	case FieldRainfall:
		return &w.RainfallMM
	case FieldHumidity:
		return &w.HumidityPct
	case FieldSunshineHours:
		return &w.SunshineHours
	case FieldSoilPH:
		return &w.SoilPH
	case FieldNitrogen:
		return &w.Nitrogen
	case FieldPhosphorus:
		return &w.Phosphorus
	case FieldPotassium:
		return &w.Potassium
	case FieldOrganicMatter:
		return &w.OrganicMatter
	case FieldNDVI:
		return &w.NDVI
	case FieldElevation:
		return &w.Elevation
	case FieldPesticides:
		return &w.Pesticides
	default:
		return nil
	}
}
