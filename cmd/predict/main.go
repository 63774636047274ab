package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/agriyield/internal/agronomy"
	"github.com/yourusername/agriyield/internal/config"
	"github.com/yourusername/agriyield/internal/features"
	"github.com/yourusername/agriyield/internal/logger"
	"github.com/yourusername/agriyield/internal/model"
	"github.com/yourusername/agriyield/internal/models"
	"github.com/yourusername/agriyield/internal/region"
	"github.com/yourusername/agriyield/internal/service"
	"github.com/yourusername/agriyield/internal/weather"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	appLog     *logrus.Logger
	cfg        *config.Config
	predictor  *service.Predictor

	flagLocation string
	flagCrop     string
	flagYear     int

	flagTemp       float64
	flagRainfall   float64
	flagHumidity   float64
	flagSunshine   float64
	flagSoilPH     float64
	flagNitrogen   float64
	flagPhosphorus float64
	flagPotassium  float64
	flagPesticides float64
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	rootCmd.Flags().StringVarP(&flagLocation, "location", "l", "", "Location (country, state or city)")
	rootCmd.Flags().StringVar(&flagCrop, "crop", "", "Crop name (e.g. wheat, rice, corn)")
	rootCmd.Flags().IntVar(&flagYear, "year", 0, "Season year (defaults to the current year)")

	rootCmd.Flags().Float64Var(&flagTemp, "avg-temp", 0, "Average temperature in Celsius (overrides fetched weather)")
	rootCmd.Flags().Float64Var(&flagRainfall, "rainfall", 0, "Annual rainfall in mm (overrides fetched weather)")
	rootCmd.Flags().Float64Var(&flagHumidity, "humidity", 0, "Relative humidity percent")
	rootCmd.Flags().Float64Var(&flagSunshine, "sunshine-hours", 0, "Average daily sunshine hours")
	rootCmd.Flags().Float64Var(&flagSoilPH, "soil-ph", 0, "Soil pH")
	rootCmd.Flags().Float64Var(&flagNitrogen, "nitrogen", 0, "Soil nitrogen (kg/ha)")
	rootCmd.Flags().Float64Var(&flagPhosphorus, "phosphorus", 0, "Soil phosphorus (kg/ha)")
	rootCmd.Flags().Float64Var(&flagPotassium, "potassium", 0, "Soil potassium (kg/ha)")
	rootCmd.Flags().Float64Var(&flagPesticides, "pesticides", 0, "Pesticide usage in tonnes")

	_ = rootCmd.MarkFlagRequired("location")
	_ = rootCmd.MarkFlagRequired("crop")

	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict crop yield for a location",
	Long: `Runs a single yield prediction against the configured model. Missing
agronomic parameters are filled from regional defaults and historical weather,
exactly as the API server would fill them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrediction(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("predict %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	return config.Validate(cfg)
}

func setupDependencies() error {
	appLog = logger.NewLogger("warn", cfg.App.Environment)

	var (
		regressor model.RegressionModel
		scaler    *features.ScalerSpec
		err       error
	)
	if cfg.Model.ArtifactPath != "" {
		regressor, err = model.LoadForest(cfg.Model.ArtifactPath, appLog)
		if err != nil {
			return fmt.Errorf("failed to load model artifact: %w", err)
		}
		if cfg.Model.ScalerPath != "" {
			scaler, err = features.LoadScalerSpec(cfg.Model.ScalerPath)
			if err != nil {
				return fmt.Errorf("failed to load scaler spec: %w", err)
			}
		}
	} else {
		regressor = model.NewHeuristic()
	}

	defaultsTable := region.NewDefaultsTable()
	if cfg.Region.DefaultsPath != "" {
		defaultsTable, err = region.LoadDefaultsTable(cfg.Region.DefaultsPath)
		if err != nil {
			return fmt.Errorf("failed to load region defaults: %w", err)
		}
	}

	httpCfg := weather.DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.Weather.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.Weather.MaxRetries
	httpCfg.RateLimit = cfg.Weather.RateLimit
	httpCfg.CircuitBreakerMax = cfg.Weather.CircuitBreakerMax

	archive := weather.NewOpenMeteoClient(cfg.Weather.ArchiveURL,
		weather.NewRateLimitedHTTPClient(httpCfg, appLog), appLog)
	geocoder := weather.NewNominatimGeocoder(cfg.Geocoder.URL, cfg.Geocoder.UserAgent,
		weather.NewRateLimitedHTTPClient(httpCfg, appLog), appLog)
	gateway := weather.NewClient(archive, geocoder, appLog)

	predictor = service.NewPredictor(
		region.NewResolver(),
		defaultsTable,
		agronomy.NewAdjuster(appLog),
		agronomy.NewValidator(),
		scaler,
		regressor,
		gateway,
		nil,
		appLog,
	)
	return nil
}

func runPrediction(cmd *cobra.Command) error {
	req := &models.PredictionRequest{
		Location: flagLocation,
		Crop:     flagCrop,
		Year:     flagYear,
	}
	applyFloatFlag(cmd, "avg-temp", flagTemp, &req.AvgTemp)
	applyFloatFlag(cmd, "rainfall", flagRainfall, &req.RainfallMM)
	applyFloatFlag(cmd, "humidity", flagHumidity, &req.HumidityPct)
	applyFloatFlag(cmd, "sunshine-hours", flagSunshine, &req.SunshineHours)
	applyFloatFlag(cmd, "soil-ph", flagSoilPH, &req.SoilPH)
	applyFloatFlag(cmd, "nitrogen", flagNitrogen, &req.Nitrogen)
	applyFloatFlag(cmd, "phosphorus", flagPhosphorus, &req.Phosphorus)
	applyFloatFlag(cmd, "potassium", flagPotassium, &req.Potassium)
	applyFloatFlag(cmd, "pesticides", flagPesticides, &req.Pesticides)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := predictor.Predict(ctx, req)
	if err != nil {
		var vErr *models.ViabilityError
		if errors.As(err, &vErr) {
			printVerdict(vErr.Verdict)
			return nil
		}
		return err
	}

	printResult(result)
	return nil
}

// applyFloatFlag sets the request pointer only when the flag was given on
// the command line, so unset flags stay "absent" rather than zero.
func applyFloatFlag(cmd *cobra.Command, name string, value float64, dst **float64) {
	if cmd.Flags().Changed(name) {
		v := value
		*dst = &v
	}
}

func printResult(res *models.PredictionResult) {
	fmt.Println()
	fmt.Printf("Predicted Yield:  %.1f %s\n", res.PredictedYield, res.Unit)
	fmt.Printf("Confidence:       %s\n", res.Confidence)
	fmt.Printf("Model:            %s\n", res.ModelType)
	fmt.Printf("Region Used:      %s\n", res.RegionUsed)
	fmt.Println("\nGrowing Conditions:")
	fmt.Printf("  Avg Temperature:  %.1f C\n", res.WeatherConditions.AvgTemp)
	fmt.Printf("  Annual Rainfall:  %.1f mm\n", res.WeatherConditions.AnnualRainfallMM)
	fmt.Printf("  Humidity:         %.1f %%\n", res.WeatherConditions.HumidityPct)
	fmt.Printf("  Sunshine:         %.1f h/day\n", res.WeatherConditions.SunshineHours)
	if len(res.AutoFetchedWeather) > 0 {
		fmt.Printf("\nAuto-fetched weather: %s\n", strings.Join(res.AutoFetchedWeather, ", "))
	}
	if len(res.DefaultedParameters) > 0 {
		fmt.Printf("Regional defaults:    %s\n", strings.Join(res.DefaultedParameters, ", "))
	}
	fmt.Println()
}

func printVerdict(v models.ViabilityVerdict) {
	fmt.Println()
	fmt.Printf("Not viable: %s\n", v.Reason)
	fmt.Printf("Severity:   %s\n", v.Severity)
	if v.Recommendation != "" {
		fmt.Printf("Advice:     %s\n", v.Recommendation)
	}
	if len(v.Alternatives) > 0 {
		fmt.Printf("Try instead: %s\n", strings.Join(v.Alternatives, ", "))
	}
	fmt.Println()
}
