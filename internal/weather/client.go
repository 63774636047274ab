package weather

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/agriyield/internal/models"
)

// Client is the archive-backed Gateway implementation: it geocodes
// free-text locations (or looks up region centroids), fetches a full
// archive year, and reduces it to annual metrics.
type Client struct {
	archive  *OpenMeteoClient
	geocoder *NominatimGeocoder
	logger   *logrus.Logger
}

// NewClient assembles the gateway from its two upstream clients.
func NewClient(archive *OpenMeteoClient, geocoder *NominatimGeocoder, logger *logrus.Logger) *Client {
	return &Client{archive: archive, geocoder: geocoder, logger: logger}
}

// ForLocation geocodes the location and fetches its climate. A geocoding
// failure propagates; callers fall back to region-level weather.
func (c *Client) ForLocation(ctx context.Context, location string, year int) (models.WeatherSnapshot, error) {
	coords, err := c.geocoder.Geocode(ctx, location)
	if err != nil {
		return models.WeatherSnapshot{}, err
	}
	return c.fetch(ctx, coords, year)
}

// ForRegion fetches climate at the region's agricultural centroid.
func (c *Client) ForRegion(ctx context.Context, regionKey string, year int) (models.WeatherSnapshot, error) {
	return c.fetch(ctx, CentroidFor(regionKey), year)
}

func (c *Client) fetch(ctx context.Context, coords Coordinates, year int) (models.WeatherSnapshot, error) {
	daily, err := c.archive.FetchYear(ctx, coords, TargetYear(year))
	if err != nil {
		return models.WeatherSnapshot{}, err
	}
	return Reduce(daily), nil
}
