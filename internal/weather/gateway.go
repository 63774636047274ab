// Package weather fetches historical climate data for locations and regions
// and reduces it to the annual metrics the prediction pipeline consumes.
package weather

import (
	"context"

	"github.com/yourusername/agriyield/internal/models"
)

// Gateway is the weather source the prediction service depends on. Both
// methods return an error when the upstream is unreachable; callers decide
// the fallback policy.
type Gateway interface {
	// ForLocation geocodes a free-text location and fetches its climate for
	// the given growing year.
	ForLocation(ctx context.Context, location string, year int) (models.WeatherSnapshot, error)

	// ForRegion fetches climate for a country-level region key using its
	// agricultural centroid.
	ForRegion(ctx context.Context, regionKey string, year int) (models.WeatherSnapshot, error)
}

// TargetYear maps a requested growing year onto the archive year actually
// fetched: the prior year for recent requests (current-year archives are
// incomplete), pinned at 2020 for anything at or before it.
func TargetYear(year int) int {
	if year > 2020 {
		return year - 1
	}
	return 2020
}
