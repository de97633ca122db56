package api

import (
	"context"
	"fmt"

	"weather-insurance-go/internal/models"
	"weather-insurance-go/internal/store"

	"go.uber.org/zap"
)

// GetWeatherSnapshot returns the latest reading for a location.
func (s *InsuranceService) GetWeatherSnapshot(ctx context.Context, location string) (*models.WeatherSnapshot, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}
	return s.store.GetSnapshot(ctx, location)
}

// ListWeatherSnapshots returns the latest reading for every known location.
func (s *InsuranceService) ListWeatherSnapshots(ctx context.Context) ([]models.WeatherSnapshot, error) {
	snapshots, err := s.store.ListSnapshots(ctx)
	if err != nil {
		zap.L().Error("Failed to list weather snapshots", zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve weather snapshots: %w", err)
	}
	return snapshots, nil
}

// UpdateWeatherSnapshot applies a partial oracle update to a location's
// reading. lastUpdated is always refreshed.
func (s *InsuranceService) UpdateWeatherSnapshot(ctx context.Context, location string, patch store.SnapshotPatch) (*models.WeatherSnapshot, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}
	if patch.DaysWithoutRain != nil && *patch.DaysWithoutRain < 0 {
		return nil, fmt.Errorf("%w: days without rain cannot be negative", ErrValidation)
	}
	if patch.Rainfall24h != nil && patch.Rainfall24h.IsNegative() {
		return nil, fmt.Errorf("%w: rainfall cannot be negative", ErrValidation)
	}
	if patch.Rainfall30d != nil && patch.Rainfall30d.IsNegative() {
		return nil, fmt.Errorf("%w: rainfall cannot be negative", ErrValidation)
	}
	if patch.WindSpeed != nil && patch.WindSpeed.IsNegative() {
		return nil, fmt.Errorf("%w: wind speed cannot be negative", ErrValidation)
	}

	return s.store.UpdateSnapshot(ctx, location, patch)
}
