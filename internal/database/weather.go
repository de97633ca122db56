package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"weather-insurance-go/internal/models"
	"weather-insurance-go/internal/store"

	"go.uber.org/zap"
)

func scanSnapshot(row rowScanner) (*models.WeatherSnapshot, error) {
	var snapshot models.WeatherSnapshot
	var temperatureStr, rainfall24hStr, rainfall30dStr, humidityStr, windSpeedStr string

	err := row.Scan(&snapshot.Location, &temperatureStr, &rainfall24hStr, &rainfall30dStr,
		&snapshot.DaysWithoutRain, &humidityStr, &windSpeedStr,
		&snapshot.Forecast, &snapshot.LastUpdated)
	if err != nil {
		return nil, err
	}

	if snapshot.Temperature, err = parseDecimal("temperature", temperatureStr); err != nil {
		return nil, err
	}
	if snapshot.Rainfall24h, err = parseDecimal("rainfall_24h", rainfall24hStr); err != nil {
		return nil, err
	}
	if snapshot.Rainfall30d, err = parseDecimal("rainfall_30d", rainfall30dStr); err != nil {
		return nil, err
	}
	if snapshot.Humidity, err = parseDecimal("humidity", humidityStr); err != nil {
		return nil, err
	}
	if snapshot.WindSpeed, err = parseDecimal("wind_speed", windSpeedStr); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// CreateSnapshot stores the reading for a location, replacing any previous
// one. There is at most one row per location.
func (s *Service) CreateSnapshot(ctx context.Context, params store.CreateSnapshotParams) (*models.WeatherSnapshot, error) {
	_, err := s.db.ExecContext(ctx, queryUpsertSnapshot,
		params.Location, params.Temperature.String(), params.Rainfall24h.String(),
		params.Rainfall30d.String(), params.DaysWithoutRain,
		params.Humidity.String(), params.WindSpeed.String(), params.Forecast)
	if err != nil {
		zap.L().Error("Failed to store weather snapshot", zap.String("location", params.Location), zap.Error(err))
		return nil, fmt.Errorf("unable to store weather snapshot: %w", err)
	}

	return s.GetSnapshot(ctx, params.Location)
}

func (s *Service) GetSnapshot(ctx context.Context, location string) (*models.WeatherSnapshot, error) {
	zap.L().Debug("Querying weather snapshot", zap.String("location", location))

	snapshot, err := scanSnapshot(s.db.QueryRowContext(ctx, queryGetSnapshot, location))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrSnapshotNotFound, location)
		}
		zap.L().Error("Failed to query weather snapshot", zap.String("location", location), zap.Error(err))
		return nil, fmt.Errorf("unable to query weather snapshot: %w", err)
	}

	return snapshot, nil
}

func (s *Service) ListSnapshots(ctx context.Context) ([]models.WeatherSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, queryListSnapshots)
	if err != nil {
		zap.L().Error("Failed to list weather snapshots", zap.Error(err))
		return nil, fmt.Errorf("unable to list weather snapshots: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var snapshots []models.WeatherSnapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("unable to scan weather row: %w", err)
		}
		snapshots = append(snapshots, *snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weather rows: %w", err)
	}

	return snapshots, nil
}

// UpdateSnapshot applies a partial update. last_updated is always refreshed,
// even when the patch changes nothing.
func (s *Service) UpdateSnapshot(ctx context.Context, location string, patch store.SnapshotPatch) (*models.WeatherSnapshot, error) {
	snapshot, err := s.GetSnapshot(ctx, location)
	if err != nil {
		return nil, err
	}

	if patch.Temperature != nil {
		snapshot.Temperature = *patch.Temperature
	}
	if patch.Rainfall24h != nil {
		snapshot.Rainfall24h = *patch.Rainfall24h
	}
	if patch.Rainfall30d != nil {
		snapshot.Rainfall30d = *patch.Rainfall30d
	}
	if patch.DaysWithoutRain != nil {
		snapshot.DaysWithoutRain = *patch.DaysWithoutRain
	}
	if patch.Humidity != nil {
		snapshot.Humidity = *patch.Humidity
	}
	if patch.WindSpeed != nil {
		snapshot.WindSpeed = *patch.WindSpeed
	}
	if patch.Forecast != nil {
		snapshot.Forecast = *patch.Forecast
	}

	_, err = s.db.ExecContext(ctx, queryUpdateSnapshot,
		snapshot.Temperature.String(), snapshot.Rainfall24h.String(),
		snapshot.Rainfall30d.String(), snapshot.DaysWithoutRain,
		snapshot.Humidity.String(), snapshot.WindSpeed.String(),
		snapshot.Forecast, location)
	if err != nil {
		zap.L().Error("Failed to update weather snapshot", zap.String("location", location), zap.Error(err))
		return nil, fmt.Errorf("unable to update weather snapshot: %w", err)
	}

	zap.L().Info("Weather snapshot updated", zap.String("location", location))
	return s.GetSnapshot(ctx, location)
}
