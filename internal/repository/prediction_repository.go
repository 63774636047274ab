// Package repository persists prediction history to PostgreSQL.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/agriyield/internal/database"
	"github.com/yourusername/agriyield/internal/models"
)

// PredictionRepository stores and retrieves prediction history.
type PredictionRepository interface {
	SavePrediction(ctx context.Context, req *models.PredictionRequest, res *models.PredictionResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.StoredPrediction, error)
	ListRecent(ctx context.Context, limit int) ([]*models.StoredPrediction, error)
}

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// SavePrediction inserts a completed prediction with its request context
func (r *PostgresPredictionRepository) SavePrediction(ctx context.Context, req *models.PredictionRequest, res *models.PredictionResult) error {
	query := `
		INSERT INTO predictions (id, location, crop, year, region_used, predicted_yield, unit,
		                         confidence, model_type, avg_temp, rainfall_mm, humidity, sunshine_hours,
		                         defaulted_parameters, auto_fetched_weather, predicted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		res.ID, req.Location, req.Crop, req.Year, res.RegionUsed, res.PredictedYield, res.Unit,
		res.Confidence, res.ModelType,
		res.WeatherConditions.AvgTemp, res.WeatherConditions.AnnualRainfallMM,
		res.WeatherConditions.HumidityPct, res.WeatherConditions.SunshineHours,
		res.DefaultedParameters, res.AutoFetchedWeather, res.PredictedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}

	return nil
}

// GetByID retrieves a stored prediction by ID
func (r *PostgresPredictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.StoredPrediction, error) {
	query := `
		SELECT id, location, crop, year, region_used, predicted_yield, unit, confidence,
		       model_type, avg_temp, rainfall_mm, humidity, sunshine_hours,
		       defaulted_parameters, auto_fetched_weather, predicted_at
		FROM predictions WHERE id = $1
	`

	stored := &models.StoredPrediction{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&stored.ID, &stored.Location, &stored.Crop, &stored.Year, &stored.RegionUsed,
		&stored.PredictedYield, &stored.Unit, &stored.Confidence, &stored.ModelType,
		&stored.AvgTemp, &stored.RainfallMM, &stored.Humidity, &stored.SunshineHours,
		&stored.DefaultedParameters, &stored.AutoFetchedWeather, &stored.PredictedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}

	return stored, nil
}

// ListRecent retrieves the most recent predictions, newest first
func (r *PostgresPredictionRepository) ListRecent(ctx context.Context, limit int) ([]*models.StoredPrediction, error) {
	query := `
		SELECT id, location, crop, year, region_used, predicted_yield, unit, confidence,
		       model_type, avg_temp, rainfall_mm, humidity, sunshine_hours,
		       defaulted_parameters, auto_fetched_weather, predicted_at
		FROM predictions
		ORDER BY predicted_at DESC
		LIMIT $1
	`

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*models.StoredPrediction
	for rows.Next() {
		stored := &models.StoredPrediction{}
		err := rows.Scan(
			&stored.ID, &stored.Location, &stored.Crop, &stored.Year, &stored.RegionUsed,
			&stored.PredictedYield, &stored.Unit, &stored.Confidence, &stored.ModelType,
			&stored.AvgTemp, &stored.RainfallMM, &stored.Humidity, &stored.SunshineHours,
			&stored.DefaultedParameters, &stored.AutoFetchedWeather, &stored.PredictedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read predictions: %w", err)
	}

	return predictions, nil
}
