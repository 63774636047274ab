// Package main provides the entry point for the AgriYield API server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/agriyield/internal/agronomy"
	"github.com/yourusername/agriyield/internal/api"
	"github.com/yourusername/agriyield/internal/config"
	"github.com/yourusername/agriyield/internal/database"
	"github.com/yourusername/agriyield/internal/features"
	"github.com/yourusername/agriyield/internal/logger"
	"github.com/yourusername/agriyield/internal/metrics"
	"github.com/yourusername/agriyield/internal/model"
	"github.com/yourusername/agriyield/internal/region"
	"github.com/yourusername/agriyield/internal/repository"
	"github.com/yourusername/agriyield/internal/service"
	"github.com/yourusername/agriyield/internal/weather"
)

func main() {
	configPath := os.Getenv("AGRIYIELD_CONFIG_PATH")
	cfg, err := config.LoadWithDefaults(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("AgriYield prediction service starting")

	metrics.InitRegistry()

	// Model: trained artifact when configured, heuristic otherwise.
	var (
		regressor model.RegressionModel
		scaler    *features.ScalerSpec
	)
	if cfg.Model.ArtifactPath != "" {
		forest, err := model.LoadForest(cfg.Model.ArtifactPath, appLog)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to load model artifact")
		}
		regressor = forest

		if cfg.Model.ScalerPath != "" {
			scaler, err = features.LoadScalerSpec(cfg.Model.ScalerPath)
			if err != nil {
				appLog.WithError(err).Fatal("Failed to load scaler spec")
			}
		}
	} else {
		appLog.Warn("No model artifact configured, serving heuristic predictions")
		regressor = model.NewHeuristic()
	}
	metrics.SetModelLoaded(regressor.Info().Type, true)

	// Regional defaults: external table when configured, built-ins otherwise.
	defaultsTable := region.NewDefaultsTable()
	if cfg.Region.DefaultsPath != "" {
		defaultsTable, err = region.LoadDefaultsTable(cfg.Region.DefaultsPath)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to load region defaults")
		}
	}

	// Weather gateway.
	httpCfg := weather.HTTPClientConfig{
		Timeout:           time.Duration(cfg.Weather.TimeoutSeconds) * time.Second,
		MaxRetries:        cfg.Weather.MaxRetries,
		RetryWaitMin:      200 * time.Millisecond,
		RetryWaitMax:      5 * time.Second,
		RateLimit:         cfg.Weather.RateLimit,
		CircuitBreakerMax: cfg.Weather.CircuitBreakerMax,
	}
	archiveClient := weather.NewOpenMeteoClient(cfg.Weather.ArchiveURL,
		weather.NewRateLimitedHTTPClient(httpCfg, appLog), appLog)
	geocoder := weather.NewNominatimGeocoder(cfg.Geocoder.URL, cfg.Geocoder.UserAgent,
		weather.NewRateLimitedHTTPClient(httpCfg, appLog), appLog)

	var gateway weather.Gateway = weather.NewClient(archiveClient, geocoder, appLog)
	if cfg.Weather.CacheEnabled {
		gateway = weather.NewCachedGateway(gateway, cfg.WeatherCacheTTL(), appLog)
	}

	// Prediction history (optional).
	var history repository.PredictionRepository
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := database.NewDB(ctx, &cfg.Database)
		cancel()
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()
		history = repository.NewPostgresPredictionRepository(db)
		appLog.Info("Prediction history enabled")
	}

	predictor := service.NewPredictor(
		region.NewResolver(),
		defaultsTable,
		agronomy.NewAdjuster(appLog),
		agronomy.NewValidator(),
		scaler,
		regressor,
		gateway,
		historyStore(history),
		appLog,
	)

	server := api.NewServer(cfg, predictor, history, appLog)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		appLog.WithField("signal", sig).Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			appLog.WithError(err).Fatal("API server failed")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("Graceful shutdown failed")
	}
	appLog.Info("Server stopped")
}

// historyStore adapts the optional repository to the service interface
// without handing it a typed-nil interface value.
func historyStore(repo repository.PredictionRepository) service.HistoryStore {
	if repo == nil {
		return nil
	}
	return repo
}
