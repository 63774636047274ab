package weather

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// countryCentroids are approximate center points of each supported region's
// agricultural belt, used when only a region key is known.
var countryCentroids = map[string]Coordinates{
	"India":     {Latitude: 20.5937, Longitude: 78.9629},
	"USA":       {Latitude: 37.0902, Longitude: -95.7129},
	"China":     {Latitude: 35.8617, Longitude: 104.1954},
	"Brazil":    {Latitude: -14.2350, Longitude: -51.9253},
	"Australia": {Latitude: -25.2744, Longitude: 133.7751},
	"Canada":    {Latitude: 56.1304, Longitude: -106.3468},
	"Russia":    {Latitude: 61.5240, Longitude: 105.3188},
}

var defaultCentroid = Coordinates{Latitude: 20.0, Longitude: 0.0}

// CentroidFor returns the centroid for a region key, or the default point
// for unknown regions.
func CentroidFor(regionKey string) Coordinates {
	if c, ok := countryCentroids[regionKey]; ok {
		return c
	}
	return defaultCentroid
}
