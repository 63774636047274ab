//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/agriyield/internal/agronomy"
	"github.com/yourusername/agriyield/internal/api"
	"github.com/yourusername/agriyield/internal/config"
	"github.com/yourusername/agriyield/internal/logger"
	"github.com/yourusername/agriyield/internal/model"
	"github.com/yourusername/agriyield/internal/region"
	"github.com/yourusername/agriyield/internal/service"
	"github.com/yourusername/agriyield/internal/weather"
)

// repeat builds a daily series of n identical values.
func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// startWeatherStack serves fake Open-Meteo and Nominatim endpoints. The
// archive series averages to 25 C, 1095 mm annual rainfall and 7.5 sunshine
// hours per day.
func startWeatherStack(t *testing.T) (archiveURL, geocoderURL string, cleanup func()) {
	archive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "auto", r.URL.Query().Get("timezone"))
		daily := map[string]any{
			"temperature_2m_max": repeat(30.0, 4),
			"temperature_2m_min": repeat(20.0, 4),
			"precipitation_sum":  repeat(3.0, 4),
			"rain_sum":           repeat(3.0, 4),
			"sunshine_duration":  repeat(27000.0, 4),
		}
		json.NewEncoder(w).Encode(map[string]any{"daily": daily})
	}))

	geocoder := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		json.NewEncoder(w).Encode([]map[string]string{{"lat": "20.5937", "lon": "78.9629"}})
	}))

	return archive.URL, geocoder.URL, func() {
		archive.Close()
		geocoder.Close()
	}
}

func newTestServer(t *testing.T, archiveURL, geocoderURL string) http.Handler {
	cfg, err := config.LoadWithDefaults("")
	require.NoError(t, err)
	cfg.Weather.ArchiveURL = archiveURL
	cfg.Geocoder.URL = geocoderURL

	log := logger.NewLogger("error", "development")

	httpCfg := weather.DefaultHTTPClientConfig()
	httpCfg.MaxRetries = 0
	httpCfg.RateLimit = 1000

	archive := weather.NewOpenMeteoClient(archiveURL, weather.NewRateLimitedHTTPClient(httpCfg, log), log)
	geo := weather.NewNominatimGeocoder(geocoderURL, "agriyield-test/1.0", weather.NewRateLimitedHTTPClient(httpCfg, log), log)
	gateway := weather.NewCachedGateway(weather.NewClient(archive, geo, log), time.Minute, log)

	predictor := service.NewPredictor(
		region.NewResolver(),
		region.NewDefaultsTable(),
		agronomy.NewAdjuster(log),
		agronomy.NewValidator(),
		nil,
		model.NewHeuristic(),
		gateway,
		nil,
		log,
	)

	return api.NewServer(cfg, predictor, nil, log).Handler()
}

func postPredict(t *testing.T, h http.Handler, body map[string]any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPredictEndToEnd(t *testing.T) {
	archiveURL, geocoderURL, cleanup := startWeatherStack(t)
	defer cleanup()
	h := newTestServer(t, archiveURL, geocoderURL)

	rec := postPredict(t, h, map[string]any{
		"location": "Punjab, India",
		"crop":     "rice",
		"year":     2024,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		PredictedYield     float64  `json:"predicted_yield"`
		Unit               string   `json:"unit"`
		Confidence         string   `json:"confidence"`
		AutoFetchedWeather []string `json:"auto_fetched_weather"`
		WeatherConditions  struct {
			Temperature float64 `json:"temperature"`
			Rainfall    float64 `json:"rainfall"`
		} `json:"weather_conditions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	assert.Greater(t, res.PredictedYield, 0.0)
	assert.Equal(t, "hg/ha", res.Unit)
	assert.Equal(t, "medium", res.Confidence)
	assert.InDelta(t, 25.0, res.WeatherConditions.Temperature, 0.01)
	assert.InDelta(t, 1095.0, res.WeatherConditions.Rainfall, 0.01)
	assert.Len(t, res.AutoFetchedWeather, 4)
}

func TestPredictWeatherIsCachedAcrossRequests(t *testing.T) {
	archiveCalls := 0
	archive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		archiveCalls++
		daily := map[string]any{
			"temperature_2m_max": repeat(30.0, 2),
			"temperature_2m_min": repeat(20.0, 2),
			"precipitation_sum":  repeat(3.0, 2),
			"rain_sum":           repeat(3.0, 2),
			"sunshine_duration":  repeat(27000.0, 2),
		}
		json.NewEncoder(w).Encode(map[string]any{"daily": daily})
	}))
	defer archive.Close()
	geocoder := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{{"lat": "20.0", "lon": "78.0"}})
	}))
	defer geocoder.Close()

	h := newTestServer(t, archive.URL, geocoder.URL)

	body := map[string]any{"location": "Punjab, India", "crop": "rice", "year": 2024}
	require.Equal(t, http.StatusOK, postPredict(t, h, body).Code)
	require.Equal(t, http.StatusOK, postPredict(t, h, body).Code)
	assert.Equal(t, 1, archiveCalls)
}

func TestPredictWeatherOutageDegradesGracefully(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	h := newTestServer(t, broken.URL, broken.URL)

	rec := postPredict(t, h, map[string]any{
		"location": "Punjab, India",
		"crop":     "rice",
		"year":     2024,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		WeatherConditions struct {
			Temperature float64 `json:"temperature"`
			Rainfall    float64 `json:"rainfall"`
		} `json:"weather_conditions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.InDelta(t, 22.0, res.WeatherConditions.Temperature, 0.01)
	assert.InDelta(t, 1000.0, res.WeatherConditions.Rainfall, 0.01)
}

func TestPredictNonViableCropReturns422(t *testing.T) {
	archiveURL, geocoderURL, cleanup := startWeatherStack(t)
	defer cleanup()
	h := newTestServer(t, archiveURL, geocoderURL)

	rec := postPredict(t, h, map[string]any{
		"location":       "Antarctica",
		"crop":           "wheat",
		"year":           2024,
		"avg_temp":       -30.0,
		"rainfall_mm":    100.0,
		"humidity":       40.0,
		"sunshine_hours": 2.0,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var verdict struct {
		Viable   bool   `json:"viable"`
		Severity string `json:"severity"`
		Reason   string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verdict))
	assert.False(t, verdict.Viable)
	assert.Equal(t, "critical", verdict.Severity)
	assert.NotEmpty(t, verdict.Reason)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	archiveURL, geocoderURL, cleanup := startWeatherStack(t)
	defer cleanup()
	h := newTestServer(t, archiveURL, geocoderURL)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
