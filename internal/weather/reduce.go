package weather

import (
	"math"

	"github.com/yourusername/agriyield/internal/models"
)

// Reduce collapses a year of daily observations into the annual metrics the
// feature pipeline consumes. The reductions mirror how the training data
// was aggregated:
//
//   - avg_temp is the mean of daily max/min midpoints, defaulting to 22.0
//     when either series is missing,
//   - annual rainfall extrapolates the mean daily rain sum over 365 days,
//   - humidity is estimated from temperature and precipitation (the archive
//     exposes no humidity series), clamped to [30, 100],
//   - sunshine hours convert the mean daily duration from seconds.
func Reduce(daily *DailySeries) models.WeatherSnapshot {
	avgMaxTemp := mean(daily.TemperatureMax)
	avgMinTemp := mean(daily.TemperatureMin)
	avgPrecipitation := mean(daily.PrecipitationSum)
	avgRain := mean(daily.RainSum)
	avgSunshineSeconds := mean(daily.SunshineDuration)

	avgTemp := models.FallbackAvgTemp
	if avgMaxTemp != 0 && avgMinTemp != 0 {
		avgTemp = (avgMaxTemp + avgMinTemp) / 2
	}

	humidity := math.Min(100, math.Max(30, 70-(avgTemp-15)*2+avgPrecipitation*0.5))

	annualRainfall := models.FallbackRainfallMM
	if len(daily.RainSum) > 0 {
		annualRainfall = avgRain * 365
	}

	return models.WeatherSnapshot{
		AvgTemp:          round1(avgTemp),
		AnnualRainfallMM: round1(annualRainfall),
		HumidityPct:      round1(humidity),
		SunshineHours:    round1(avgSunshineSeconds / 3600),
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
