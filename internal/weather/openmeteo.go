package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/agriyield/internal/models"
)

// DefaultArchiveBaseURL is the public Open-Meteo historical archive.
const DefaultArchiveBaseURL = "https://archive-api.open-meteo.com/v1/archive"

const dailyVariables = "temperature_2m_max,temperature_2m_min,precipitation_sum,rain_sum,sunshine_duration"

// DailySeries holds the per-day series returned by the archive for one
// calendar year.
type DailySeries struct {
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
	RainSum          []float64 `json:"rain_sum"`
	SunshineDuration []float64 `json:"sunshine_duration"`
}

type archiveResponse struct {
	Daily DailySeries `json:"daily"`
}

// OpenMeteoClient fetches historical daily weather from the Open-Meteo
// archive API.
type OpenMeteoClient struct {
	baseURL string
	http    *RateLimitedHTTPClient
	logger  *logrus.Logger
}

// NewOpenMeteoClient creates an archive client. An empty baseURL selects the
// public endpoint.
func NewOpenMeteoClient(baseURL string, httpClient *RateLimitedHTTPClient, logger *logrus.Logger) *OpenMeteoClient {
	if baseURL == "" {
		baseURL = DefaultArchiveBaseURL
	}
	return &OpenMeteoClient{baseURL: baseURL, http: httpClient, logger: logger}
}

// FetchYear fetches the full daily series for one archive year at the given
// coordinates.
func (c *OpenMeteoClient) FetchYear(ctx context.Context, coords Coordinates, year int) (*DailySeries, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", coords.Latitude))
	q.Set("longitude", fmt.Sprintf("%.4f", coords.Longitude))
	q.Set("start_date", fmt.Sprintf("%d-01-01", year))
	q.Set("end_date", fmt.Sprintf("%d-12-31", year))
	q.Set("daily", dailyVariables)
	q.Set("timezone", "auto")

	resp, err := c.http.Get(ctx, c.baseURL+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: archive API returned %d", models.ErrWeatherUnavailable, resp.StatusCode)
	}

	var parsed archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding archive response: %v", models.ErrWeatherUnavailable, err)
	}

	c.logger.WithFields(logrus.Fields{
		"latitude":  coords.Latitude,
		"longitude": coords.Longitude,
		"year":      year,
		"days":      len(parsed.Daily.RainSum),
	}).Debug("Fetched archive weather data")

	return &parsed.Daily, nil
}
