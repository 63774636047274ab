package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/agriyield/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func fastHTTPClient() *RateLimitedHTTPClient {
	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	cfg.Timeout = 2 * time.Second
	return NewRateLimitedHTTPClient(cfg, testLogger())
}

func TestTargetYear(t *testing.T) {
	assert.Equal(t, 2023, TargetYear(2024))
	assert.Equal(t, 2020, TargetYear(2021))
	assert.Equal(t, 2020, TargetYear(2020))
	assert.Equal(t, 2020, TargetYear(1995))
}

func TestCentroidFor(t *testing.T) {
	india := CentroidFor("India")
	assert.InDelta(t, 20.5937, india.Latitude, 1e-6)
	assert.InDelta(t, 78.9629, india.Longitude, 1e-6)

	fallback := CentroidFor("Atlantis")
	assert.Equal(t, defaultCentroid, fallback)
	assert.Equal(t, defaultCentroid, CentroidFor("default"))
}

func TestHTTPClientBreakerOpensUnderConcurrentFailures(t *testing.T) {
	// Start and immediately close an upstream so every request fails at
	// the transport level.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	cfg.RateLimit = 10000
	cfg.CircuitBreakerMax = 3
	client := NewRateLimitedHTTPClient(cfg, testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				resp, err := client.Get(context.Background(), url)
				if err == nil {
					resp.Body.Close()
				}
			}
		}()
	}
	wg.Wait()

	_, err := client.Get(context.Background(), url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
}

func repeat(v float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = v
	}
	return xs
}

func TestReduce(t *testing.T) {
	daily := &DailySeries{
		TemperatureMax:   repeat(30, 365),
		TemperatureMin:   repeat(20, 365),
		PrecipitationSum: repeat(4, 365),
		RainSum:          repeat(3, 365),
		SunshineDuration: repeat(7.5*3600, 365),
	}

	snap := Reduce(daily)

	assert.Equal(t, 25.0, snap.AvgTemp)
	assert.Equal(t, 1095.0, snap.AnnualRainfallMM)
	// 70 - (25-15)*2 + 4*0.5 = 52
	assert.Equal(t, 52.0, snap.HumidityPct)
	assert.Equal(t, 7.5, snap.SunshineHours)
}

func TestReduceHumidityClamps(t *testing.T) {
	hot := &DailySeries{
		TemperatureMax:   repeat(48, 10),
		TemperatureMin:   repeat(34, 10),
		PrecipitationSum: repeat(0, 10),
		RainSum:          repeat(0, 10),
	}
	assert.Equal(t, 30.0, Reduce(hot).HumidityPct)

	wet := &DailySeries{
		TemperatureMax:   repeat(18, 10),
		TemperatureMin:   repeat(10, 10),
		PrecipitationSum: repeat(100, 10),
		RainSum:          repeat(90, 10),
	}
	assert.Equal(t, 100.0, Reduce(wet).HumidityPct)
}

func TestReduceEmptySeriesFallsBack(t *testing.T) {
	snap := Reduce(&DailySeries{})

	assert.Equal(t, models.FallbackAvgTemp, snap.AvgTemp)
	assert.Equal(t, models.FallbackRainfallMM, snap.AnnualRainfallMM)
	assert.Equal(t, 0.0, snap.SunshineHours)
}

func archiveHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.NotEmpty(t, q.Get("latitude"))
		assert.Equal(t, "auto", q.Get("timezone"))
		assert.True(t, strings.HasSuffix(q.Get("start_date"), "-01-01"))

		fmt.Fprint(w, `{"daily":{
			"temperature_2m_max":[30,32,28],
			"temperature_2m_min":[20,22,18],
			"precipitation_sum":[2,0,4],
			"rain_sum":[2,0,4],
			"sunshine_duration":[28800,25200,32400]
		}}`)
	}
}

func TestOpenMeteoFetchYear(t *testing.T) {
	srv := httptest.NewServer(archiveHandler(t))
	defer srv.Close()

	client := NewOpenMeteoClient(srv.URL, fastHTTPClient(), testLogger())
	daily, err := client.FetchYear(context.Background(), CentroidFor("India"), 2023)
	require.NoError(t, err)

	assert.Equal(t, []float64{30, 32, 28}, daily.TemperatureMax)
	assert.Equal(t, []float64{2, 0, 4}, daily.RainSum)
}

func TestOpenMeteoFetchYearUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewOpenMeteoClient(srv.URL, fastHTTPClient(), testLogger())
	_, err := client.FetchYear(context.Background(), defaultCentroid, 2023)

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrWeatherUnavailable))
}

func TestNominatimGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mumbai, India", r.URL.Query().Get("q"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		fmt.Fprint(w, `[{"lat":"19.0760","lon":"72.8777"}]`)
	}))
	defer srv.Close()

	geocoder := NewNominatimGeocoder(srv.URL, "", fastHTTPClient(), testLogger())
	coords, err := geocoder.Geocode(context.Background(), "Mumbai, India")
	require.NoError(t, err)

	assert.InDelta(t, 19.0760, coords.Latitude, 1e-6)
	assert.InDelta(t, 72.8777, coords.Longitude, 1e-6)
}

func TestNominatimGeocodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	geocoder := NewNominatimGeocoder(srv.URL, "", fastHTTPClient(), testLogger())
	_, err := geocoder.Geocode(context.Background(), "Nowhere At All")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrGeocodeFailed))
}

func TestClientForLocation(t *testing.T) {
	archive := httptest.NewServer(archiveHandler(t))
	defer archive.Close()
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"lat":"19.0760","lon":"72.8777"}]`)
	}))
	defer geo.Close()

	client := NewClient(
		NewOpenMeteoClient(archive.URL, fastHTTPClient(), testLogger()),
		NewNominatimGeocoder(geo.URL, "", fastHTTPClient(), testLogger()),
		testLogger(),
	)

	snap, err := client.ForLocation(context.Background(), "Mumbai, India", 2024)
	require.NoError(t, err)
	assert.Equal(t, 25.0, snap.AvgTemp)
	assert.Equal(t, 730.0, snap.AnnualRainfallMM)
}

func TestClientForRegionSkipsGeocoding(t *testing.T) {
	archive := httptest.NewServer(archiveHandler(t))
	defer archive.Close()

	client := NewClient(
		NewOpenMeteoClient(archive.URL, fastHTTPClient(), testLogger()),
		nil, // geocoder must not be touched
		testLogger(),
	)

	snap, err := client.ForRegion(context.Background(), "Brazil", 2024)
	require.NoError(t, err)
	assert.Equal(t, 25.0, snap.AvgTemp)
}

type countingGateway struct {
	calls int
	snap  models.WeatherSnapshot
	err   error
}

func (g *countingGateway) ForLocation(ctx context.Context, location string, year int) (models.WeatherSnapshot, error) {
	g.calls++
	return g.snap, g.err
}

func (g *countingGateway) ForRegion(ctx context.Context, regionKey string, year int) (models.WeatherSnapshot, error) {
	g.calls++
	return g.snap, g.err
}

func TestCachedGatewayMemoizesSuccess(t *testing.T) {
	inner := &countingGateway{snap: models.WeatherSnapshot{AvgTemp: 25.0}}
	cached := NewCachedGateway(inner, time.Minute, testLogger())
	ctx := context.Background()

	first, err := cached.ForLocation(ctx, "Mumbai", 2024)
	require.NoError(t, err)
	second, err := cached.ForLocation(ctx, "Mumbai", 2024)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)

	// Different archive year is a different entry.
	_, err = cached.ForLocation(ctx, "Mumbai", 2019)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedGatewayDoesNotCacheErrors(t *testing.T) {
	inner := &countingGateway{err: models.ErrWeatherUnavailable}
	cached := NewCachedGateway(inner, time.Minute, testLogger())
	ctx := context.Background()

	_, err := cached.ForRegion(ctx, "India", 2024)
	require.Error(t, err)
	_, err = cached.ForRegion(ctx, "India", 2024)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}
