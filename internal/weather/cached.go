package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/agriyield/internal/models"
)

// CachedGateway memoizes gateway results in-process. Archive weather for a
// past year never changes, so entries can live for hours; the TTL mostly
// bounds memory. Only successes are cached, keeping the fallback chain
// responsive to upstream recovery.
type CachedGateway struct {
	inner  Gateway
	cache  *cache.Cache
	logger *logrus.Logger
}

// NewCachedGateway wraps a gateway with a TTL cache.
func NewCachedGateway(inner Gateway, ttl time.Duration, logger *logrus.Logger) *CachedGateway {
	return &CachedGateway{
		inner:  inner,
		cache:  cache.New(ttl, ttl/2),
		logger: logger,
	}
}

// ForLocation returns cached weather for the location/year pair, fetching
// through on a miss.
func (g *CachedGateway) ForLocation(ctx context.Context, location string, year int) (models.WeatherSnapshot, error) {
	return g.lookup(fmt.Sprintf("loc|%s|%d", location, TargetYear(year)), func() (models.WeatherSnapshot, error) {
		return g.inner.ForLocation(ctx, location, year)
	})
}

// ForRegion returns cached weather for the region/year pair, fetching
// through on a miss.
func (g *CachedGateway) ForRegion(ctx context.Context, regionKey string, year int) (models.WeatherSnapshot, error) {
	return g.lookup(fmt.Sprintf("region|%s|%d", regionKey, TargetYear(year)), func() (models.WeatherSnapshot, error) {
		return g.inner.ForRegion(ctx, regionKey, year)
	})
}

func (g *CachedGateway) lookup(key string, fetch func() (models.WeatherSnapshot, error)) (models.WeatherSnapshot, error) {
	if cached, ok := g.cache.Get(key); ok {
		g.logger.WithField("key", key).Debug("Weather cache hit")
		return cached.(models.WeatherSnapshot), nil
	}

	snapshot, err := fetch()
	if err != nil {
		return models.WeatherSnapshot{}, err
	}

	g.cache.Set(key, snapshot, cache.DefaultExpiration)
	return snapshot, nil
}
