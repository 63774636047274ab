// Package metrics provides the centralized Prometheus metrics registry for
// the prediction service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agriyield",
		Name:      "predictions_total",
		Help:      "Total number of prediction requests by model type and outcome",
	}, []string{"model_type", "outcome"})

	WeatherFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agriyield",
		Name:      "weather_fetches_total",
		Help:      "Total number of weather gateway calls by source and outcome",
	}, []string{"source", "outcome"})

	ViabilityRejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agriyield",
		Name:      "viability_rejections_total",
		Help:      "Total number of predictions rejected by the viability check, by severity",
	}, []string{"severity"})
)

// Gauge metrics
var (
	ModelLoaded = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "agriyield",
		Name:      "model_loaded",
		Help:      "Whether a regression model is loaded (1) by model type",
	}, []string{"model_type"})
)

// Histogram metrics
var (
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "agriyield",
		Name:      "prediction_duration_seconds",
		Help:      "End-to-end duration of prediction requests in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	PredictedYield = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "agriyield",
		Name:      "predicted_yield_hg_per_ha",
		Help:      "Distribution of predicted yields in hg/ha",
		Buckets:   []float64{100, 1000, 5000, 10000, 25000, 50000, 100000, 250000},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(WeatherFetchesTotal)
		registry.MustRegister(ViabilityRejectionsTotal)
		registry.MustRegister(ModelLoaded)
		registry.MustRegister(PredictionDuration)
		registry.MustRegister(PredictedYield)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPrediction records a completed prediction request.
// outcome should be one of: "success", "rejected", "invalid", "error"
func RecordPrediction(modelType, outcome string, durationSeconds float64) {
	PredictionsTotal.WithLabelValues(modelType, outcome).Inc()
	PredictionDuration.Observe(durationSeconds)
}

// RecordPredictedYield records a predicted yield value.
func RecordPredictedYield(yield float64) {
	PredictedYield.Observe(yield)
}

// RecordWeatherFetch records a weather gateway call.
// source should be one of: "location", "region", "fallback"
// outcome should be one of: "success", "failure"
func RecordWeatherFetch(source, outcome string) {
	WeatherFetchesTotal.WithLabelValues(source, outcome).Inc()
}

// RecordViabilityRejection records a prediction rejected on viability.
func RecordViabilityRejection(severity string) {
	ViabilityRejectionsTotal.WithLabelValues(severity).Inc()
}

// SetModelLoaded marks which model type is serving predictions.
func SetModelLoaded(modelType string, loaded bool) {
	v := 0.0
	if loaded {
		v = 1.0
	}
	ModelLoaded.WithLabelValues(modelType).Set(v)
}
