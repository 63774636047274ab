// Package service orchestrates the prediction pipeline: regional
// defaulting, weather acquisition, climate adjustment, viability gating,
// feature construction and model inference.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/yourusername/agriyield/internal/agronomy"
	"github.com/yourusername/agriyield/internal/features"
	"github.com/yourusername/agriyield/internal/metrics"
	"github.com/yourusername/agriyield/internal/model"
	"github.com/yourusername/agriyield/internal/models"
	"github.com/yourusername/agriyield/internal/region"
	"github.com/yourusername/agriyield/internal/weather"
)

// HistoryStore persists completed predictions. Persistence is best-effort:
// a store failure is logged, never surfaced to the caller.
type HistoryStore interface {
	SavePrediction(ctx context.Context, req *models.PredictionRequest, res *models.PredictionResult) error
}

// Predictor runs the end-to-end prediction pipeline.
type Predictor struct {
	resolver  *region.Resolver
	defaults  *region.DefaultsTable
	adjuster  *agronomy.Adjuster
	viability *agronomy.Validator
	builder   *features.Builder
	scaler    *features.ScalerSpec
	model     model.RegressionModel
	weather   weather.Gateway
	history   HistoryStore
	logger    *logrus.Logger
}

// NewPredictor wires the pipeline. scaler may be nil when the model reads
// raw features; history may be nil to disable persistence.
func NewPredictor(
	resolver *region.Resolver,
	defaults *region.DefaultsTable,
	adjuster *agronomy.Adjuster,
	viability *agronomy.Validator,
	scaler *features.ScalerSpec,
	m model.RegressionModel,
	gateway weather.Gateway,
	history HistoryStore,
	logger *logrus.Logger,
) *Predictor {
	return &Predictor{
		resolver:  resolver,
		defaults:  defaults,
		adjuster:  adjuster,
		viability: viability,
		builder:   features.NewBuilder(),
		scaler:    scaler,
		model:     m,
		weather:   gateway,
		history:   history,
		logger:    logger,
	}
}

// ModelInfo reports the serving model's identity.
func (p *Predictor) ModelInfo() (model.ModelInfo, error) {
	if p.model == nil {
		return model.ModelInfo{}, models.ErrModelNotLoaded
	}
	return p.model.Info(), nil
}

// Predict runs the full pipeline for one request. It returns
// *models.InputError for malformed requests, *models.ViabilityError when
// the crop/location combination is rejected, and a plain error for model
// failures. Weather and geocoding outages never fail a request; they
// degrade through region-level weather down to hard-coded fallbacks.
func (p *Predictor) Predict(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResult, error) {
	started := time.Now()

	result, err := p.predict(ctx, req)

	modelType := "none"
	if p.model != nil {
		modelType = p.model.Info().Type
	}
	metrics.RecordPrediction(modelType, outcomeLabel(err), time.Since(started).Seconds())

	return result, err
}

func (p *Predictor) predict(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if p.model == nil {
		return nil, models.ErrModelNotLoaded
	}

	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	supplied := req.SuppliedFields()
	rec := models.NewWorkingRecord(req)
	rec.Year = year

	// Regional defaults for everything the caller left out.
	regionKey := p.resolver.Resolve(req.Location)
	defaults := p.defaults.Get(regionKey)
	defaulted := make([]string, 0, len(models.DefaultableFieldNames()))
	for _, name := range models.DefaultableFieldNames() {
		if supplied.Has(name) {
			continue
		}
		if value, ok := defaults.Field(name); ok {
			*rec.Field(name) = value
			defaulted = append(defaulted, name)
		}
	}

	// Weather for every climate field the caller left out.
	snapshot, autoFetched := p.acquireWeather(ctx, req.Location, regionKey, year, supplied)
	for _, name := range autoFetched {
		*rec.Field(name) = snapshotField(snapshot, name)
	}
	defaulted = subtract(defaulted, autoFetched)

	// The conditions actually used: fetched weather where the caller was
	// silent, caller values where they were not.
	conditions := snapshotFromRecord(rec)

	// Climate and terrain adjustments run once, after all values are
	// concrete.
	p.adjuster.Adjust(rec, conditions, req.Location)

	verdict := p.viability.Check(rec.Crop, rec.Location, &rec.AvgTemp, &rec.RainfallMM)
	if !verdict.Viable {
		metrics.RecordViabilityRejection(string(verdict.Severity))
		p.logger.WithFields(logrus.Fields{
			"crop":     rec.Crop,
			"location": rec.Location,
			"severity": verdict.Severity,
		}).Info("Prediction rejected on viability")
		return nil, &models.ViabilityError{Verdict: verdict}
	}

	yield, err := p.infer(rec)
	if err != nil {
		return nil, err
	}

	info := p.model.Info()
	result := &models.PredictionResult{
		ID:                  uuid.New(),
		PredictedYield:      yield,
		Unit:                models.YieldUnit,
		Confidence:          info.Confidence(),
		RegionUsed:          regionKey,
		DefaultedParameters: defaulted,
		AutoFetchedWeather:  autoFetched,
		WeatherConditions:   conditions,
		ModelType:           info.Type,
		PredictedAt:         time.Now().UTC(),
	}
	metrics.RecordPredictedYield(yield)

	if p.history != nil {
		if err := p.history.SavePrediction(ctx, req, result); err != nil {
			p.logger.WithError(err).Warn("Failed to persist prediction")
		}
	}

	p.logger.WithFields(logrus.Fields{
		"prediction_id": result.ID,
		"region":        regionKey,
		"crop":          rec.Crop,
		"yield":         yield,
		"model_type":    info.Type,
	}).Info("Prediction completed")

	return result, nil
}

// acquireWeather returns the snapshot used for this request and the names
// of the climate fields it will fill. The fallback chain is location-level
// weather, then region-level, then the hard-coded defaults.
func (p *Predictor) acquireWeather(ctx context.Context, location, regionKey string, year int, supplied models.FieldSet) (models.WeatherSnapshot, []string) {
	missing := make([]string, 0, 4)
	for _, name := range models.WeatherFieldNames() {
		if !supplied.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		// Caller supplied the full climate picture; nothing to fetch.
		return models.WeatherSnapshot{}, nil
	}

	snapshot, err := p.weather.ForLocation(ctx, location, year)
	if err == nil {
		metrics.RecordWeatherFetch("location", "success")
		return snapshot, missing
	}
	metrics.RecordWeatherFetch("location", "failure")
	p.logger.WithError(err).WithField("location", location).
		Debug("Location weather unavailable, trying region centroid")

	snapshot, err = p.weather.ForRegion(ctx, regionKey, year)
	if err == nil {
		metrics.RecordWeatherFetch("region", "success")
		return snapshot, missing
	}
	metrics.RecordWeatherFetch("region", "failure")
	p.logger.WithError(err).WithFields(logrus.Fields{
		"location": location,
		"region":   regionKey,
	}).Warn("Weather unavailable, using hard-coded fallback values")

	metrics.RecordWeatherFetch("fallback", "success")
	return models.FallbackWeather(), missing
}

func (p *Predictor) infer(rec *models.WorkingRecord) (float64, error) {
	vector := p.builder.Build(rec)
	if p.model.WantsScaledInput() && p.scaler != nil {
		p.scaler.Transform(vector)
	}

	X := mat.NewDense(1, vector.Len(), vector.Values())
	predictions, err := p.model.Predict(X)
	if err != nil {
		return 0, err
	}
	return predictions[0], nil
}

func validateRequest(req *models.PredictionRequest) error {
	missing := make([]string, 0, 2)
	if req.Location == "" {
		missing = append(missing, "location")
	}
	if req.Crop == "" {
		missing = append(missing, "crop")
	}
	if len(missing) > 0 {
		return models.NewInputError(missing...)
	}
	return nil
}

func outcomeLabel(err error) string {
	switch err.(type) {
	case nil:
		return "success"
	case *models.ViabilityError:
		return "rejected"
	case *models.InputError:
		return "invalid"
	default:
		return "error"
	}
}

func snapshotField(s models.WeatherSnapshot, name string) float64 {
	switch name {
	case models.FieldAvgTemp:
		return s.AvgTemp
	case models.FieldRainfall:
		return s.AnnualRainfallMM
	case models.FieldHumidity:
		return s.HumidityPct
	case models.FieldSunshineHours:
		return s.SunshineHours
	default:
		return 0
	}
}

func snapshotFromRecord(rec *models.WorkingRecord) models.WeatherSnapshot {
	return models.WeatherSnapshot{
		AvgTemp:          rec.AvgTemp,
		AnnualRainfallMM: rec.RainfallMM,
		HumidityPct:      rec.HumidityPct,
		SunshineHours:    rec.SunshineHours,
	}
}

func subtract(names, remove []string) []string {
	removed := make(map[string]struct{}, len(remove))
	for _, name := range remove {
		removed[name] = struct{}{}
	}
	out := names[:0]
	for _, name := range names {
		if _, ok := removed[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
