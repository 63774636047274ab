package agronomy

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/agriyield/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func baseRecord() *models.WorkingRecord {
	return &models.WorkingRecord{
		Location: "somewhere", Crop: "wheat", Year: 2023,
		SoilPH: 6.5, Nitrogen: 150.0, Phosphorus: 30.0, Potassium: 150.0,
		OrganicMatter: 2.0, NDVI: 0.65, Elevation: 500.0, Pesticides: 120.0,
	}
}

func mildWeather() models.WeatherSnapshot {
	return models.WeatherSnapshot{AvgTemp: 22, AnnualRainfallMM: 1000, HumidityPct: 65, SunshineHours: 7}
}

func TestAdjustMildClimateIsNoOp(t *testing.T) {
	a := NewAdjuster(testLogger())
	rec := baseRecord()
	before := *rec

	a.Adjust(rec, mildWeather(), "somewhere")

	assert.Equal(t, before, *rec)
}

func TestAdjustHotClimate(t *testing.T) {
	a := NewAdjuster(testLogger())
	rec := baseRecord()

	w := mildWeather()
	w.AvgTemp = 38

	a.Adjust(rec, w, "somewhere")

	assert.InDelta(t, 6.3, rec.SoilPH, 1e-9)
	assert.InDelta(t, 1.7, rec.OrganicMatter, 1e-9)
	assert.InDelta(t, 135.0, rec.Nitrogen, 1e-9)
}

func TestAdjustHotClimateClampsFloors(t *testing.T) {
	a := NewAdjuster(testLogger())
	rec := baseRecord()
	rec.SoilPH = 5.6
	rec.OrganicMatter = 0.6

	w := mildWeather()
	w.AvgTemp = 40

	a.Adjust(rec, w, "somewhere")

	assert.Equal(t, 5.5, rec.SoilPH)
	assert.Equal(t, 0.5, rec.OrganicMatter)
}

func TestAdjustColdClimate(t *testing.T) {
	a := NewAdjuster(testLogger())
	rec := baseRecord()

	w := mildWeather()
	w.AvgTemp = 5

	a.Adjust(rec, w, "somewhere")

	assert.InDelta(t, 6.6, rec.SoilPH, 1e-9)
	assert.InDelta(t, 2.4, rec.OrganicMatter, 1e-9)
	assert.InDelta(t, 165.0, rec.Nitrogen, 1e-9)
}

func TestAdjustHeavyRainfallLeaching(t *testing.T) {
	a := NewAdjuster(testLogger())
	rec := baseRecord()

	w := mildWeather()
	w.AnnualRainfallMM = 2500

	a.Adjust(rec, w, "somewhere")

	assert.InDelta(t, 6.2, rec.SoilPH, 1e-9)
	assert.InDelta(t, 120.0, rec.Potassium, 1e-9)
	assert.InDelta(t, 27.0, rec.Phosphorus, 1e-9)
}

func TestAdjustAridRainfall(t *testing.T) {
	a := NewAdjuster(testLogger())
	rec := baseRecord()

	w := mildWeather()
	w.AnnualRainfallMM = 300

	a.Adjust(rec, w, "somewhere")

	assert.InDelta(t, 6.8, rec.SoilPH, 1e-9)
	assert.InDelta(t, 1.5, rec.OrganicMatter, 1e-9)
	assert.InDelta(t, 105.0, rec.Nitrogen, 1e-9)
}

func TestAdjustHumidityMovesNDVI(t *testing.T) {
	a := NewAdjuster(testLogger())

	humid := baseRecord()
	w := mildWeather()
	w.HumidityPct = 85
	a.Adjust(humid, w, "somewhere")
	assert.InDelta(t, 0.70, humid.NDVI, 1e-9)

	dry := baseRecord()
	w.HumidityPct = 30
	a.Adjust(dry, w, "somewhere")
	assert.InDelta(t, 0.55, dry.NDVI, 1e-9)
}

func TestAdjustNDVICaps(t *testing.T) {
	a := NewAdjuster(testLogger())
	rec := baseRecord()
	rec.NDVI = 0.88

	w := mildWeather()
	w.HumidityPct = 90

	a.Adjust(rec, w, "somewhere")
	assert.Equal(t, 0.9, rec.NDVI)
}

func TestAdjustCoastalLocation(t *testing.T) {
	a := NewAdjuster(testLogger())
	rec := baseRecord()

	a.Adjust(rec, mildWeather(), "Mumbai, Maharashtra")

	assert.InDelta(t, 6.7, rec.SoilPH, 1e-9)
	assert.InDelta(t, 165.0, rec.Potassium, 1e-9)
}

func TestAdjustHillStation(t *testing.T) {
	a := NewAdjuster(testLogger())
	rec := baseRecord()

	a.Adjust(rec, mildWeather(), "Ooty hill station")

	assert.Equal(t, 1500.0, rec.Elevation)
	assert.InDelta(t, 2.6, rec.OrganicMatter, 1e-9)
	assert.InDelta(t, 6.4, rec.SoilPH, 1e-9)
}

func TestAdjustDesertRegion(t *testing.T) {
	a := NewAdjuster(testLogger())
	rec := baseRecord()

	a.Adjust(rec, mildWeather(), "Jodhpur, Rajasthan")

	assert.InDelta(t, 7.0, rec.SoilPH, 1e-9)
	assert.InDelta(t, 1.2, rec.OrganicMatter, 1e-9)
	assert.InDelta(t, 90.0, rec.Nitrogen, 1e-9)
}

func TestAdjustFertilePlains(t *testing.T) {
	a := NewAdjuster(testLogger())
	rec := baseRecord()

	a.Adjust(rec, mildWeather(), "Ludhiana, Punjab")

	assert.InDelta(t, 180.0, rec.Nitrogen, 1e-9)
	assert.InDelta(t, 33.0, rec.Phosphorus, 1e-9)
	assert.InDelta(t, 2.2, rec.OrganicMatter, 1e-9)
}

// Applying the adjuster twice compounds, which is why the orchestrator runs
// it exactly once. This test pins the non-idempotence down so a future
// "defensive" second call shows up as a failure.
func TestAdjustIsNotIdempotent(t *testing.T) {
	a := NewAdjuster(testLogger())
	rec := baseRecord()

	w := mildWeather()
	w.AvgTemp = 38

	a.Adjust(rec, w, "somewhere")
	once := *rec
	a.Adjust(rec, w, "somewhere")

	assert.NotEqual(t, once, *rec)
}
