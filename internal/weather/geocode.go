package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/agriyield/internal/models"
)

// DefaultGeocoderBaseURL is the public Nominatim search endpoint.
const DefaultGeocoderBaseURL = "https://nominatim.openstreetmap.org/search"

// NominatimGeocoder resolves free-text locations to coordinates via the
// OpenStreetMap Nominatim API.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	http      *RateLimitedHTTPClient
	logger    *logrus.Logger
}

// NewNominatimGeocoder creates a geocoder. An empty baseURL selects the
// public endpoint. Nominatim's usage policy requires an identifying
// User-Agent.
func NewNominatimGeocoder(baseURL, userAgent string, httpClient *RateLimitedHTTPClient, logger *logrus.Logger) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocoderBaseURL
	}
	if userAgent == "" {
		userAgent = "agriyield/1.0"
	}
	return &NominatimGeocoder{baseURL: baseURL, userAgent: userAgent, http: httpClient, logger: logger}
}

// Nominatim returns lat/lon as JSON strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a location string to coordinates. Returns
// models.ErrGeocodeFailed (wrapped) when the service is unreachable or the
// location is unknown.
func (g *NominatimGeocoder) Geocode(ctx context.Context, location string) (Coordinates, error) {
	q := url.Values{}
	q.Set("q", location)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Coordinates{}, err
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.http.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: %v", models.ErrGeocodeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("%w: geocoder returned %d", models.ErrGeocodeFailed, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinates{}, fmt.Errorf("%w: decoding geocoder response: %v", models.ErrGeocodeFailed, err)
	}
	if len(results) == 0 {
		return Coordinates{}, fmt.Errorf("%w: no match for %q", models.ErrGeocodeFailed, location)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: bad latitude %q", models.ErrGeocodeFailed, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: bad longitude %q", models.ErrGeocodeFailed, results[0].Lon)
	}

	coords := Coordinates{Latitude: lat, Longitude: lon}
	g.logger.WithFields(logrus.Fields{
		"location":  location,
		"latitude":  coords.Latitude,
		"longitude": coords.Longitude,
	}).Debug("Geocoded location")

	return coords, nil
}
