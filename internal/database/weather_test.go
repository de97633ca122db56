package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"weather-insurance-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func setupSeededTestDB(t *testing.T) (*Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	service := &Service{db: db}
	if err := service.initSchema(true); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	return service, func() { db.Close() }
}

func TestSeedWeatherData(t *testing.T) {
	service, cleanup := setupSeededTestDB(t)
	defer cleanup()
	ctx := context.Background()

	snapshots, err := service.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(snapshots) != 5 {
		t.Fatalf("Expected 5 seeded locations, got %d", len(snapshots))
	}

	mumbai, err := service.GetSnapshot(ctx, "mumbai")
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if !mumbai.Temperature.Equal(decimal.NewFromInt(32)) {
		t.Errorf("Expected mumbai temperature 32, got %s", mumbai.Temperature.String())
	}
	if mumbai.DaysWithoutRain != 32 {
		t.Errorf("Expected mumbai days without rain 32, got %d", mumbai.DaysWithoutRain)
	}
	if mumbai.LastUpdated.IsZero() {
		t.Error("Expected seeded snapshot to carry a reading time")
	}
}

func TestSeedWeatherData_KeepsOracleUpdates(t *testing.T) {
	service, cleanup := setupSeededTestDB(t)
	defer cleanup()
	ctx := context.Background()

	rainfall := decimal.NewFromInt(120)
	if _, err := service.UpdateSnapshot(ctx, "mumbai", store.SnapshotPatch{Rainfall30d: &rainfall}); err != nil {
		t.Fatalf("UpdateSnapshot failed: %v", err)
	}

	// Re-running the seed (a restart) must not clobber the oracle's value.
	if err := service.seedWeatherData(); err != nil {
		t.Fatalf("seedWeatherData failed: %v", err)
	}

	mumbai, err := service.GetSnapshot(ctx, "mumbai")
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if !mumbai.Rainfall30d.Equal(rainfall) {
		t.Errorf("Expected rainfall 120 to survive reseeding, got %s", mumbai.Rainfall30d.String())
	}
}

func TestUpdateSnapshot_PartialPatch(t *testing.T) {
	service, cleanup := setupSeededTestDB(t)
	defer cleanup()
	ctx := context.Background()

	days := 15
	windSpeed := decimal.NewFromInt(45)
	updated, err := service.UpdateSnapshot(ctx, "sydney", store.SnapshotPatch{
		DaysWithoutRain: &days,
		WindSpeed:       &windSpeed,
	})
	if err != nil {
		t.Fatalf("UpdateSnapshot failed: %v", err)
	}
	if updated.DaysWithoutRain != 15 {
		t.Errorf("Expected 15 days without rain, got %d", updated.DaysWithoutRain)
	}
	if !updated.WindSpeed.Equal(windSpeed) {
		t.Errorf("Expected wind speed 45, got %s", updated.WindSpeed.String())
	}
	// Untouched fields survive the patch.
	if !updated.Temperature.Equal(decimal.NewFromInt(26)) {
		t.Errorf("Expected temperature 26 to survive patch, got %s", updated.Temperature.String())
	}
	if updated.Forecast != "Mostly sunny" {
		t.Errorf("Expected forecast to survive patch, got %q", updated.Forecast)
	}
}

func TestGetSnapshot_NotFound(t *testing.T) {
	service, cleanup := setupSeededTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := service.GetSnapshot(ctx, "atlantis")
	if !errors.Is(err, store.ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound, got: %v", err)
	}

	_, err = service.UpdateSnapshot(ctx, "atlantis", store.SnapshotPatch{})
	if !errors.Is(err, store.ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound, got: %v", err)
	}
}

func TestCreateSnapshot_ReplacesExisting(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := service.CreateSnapshot(ctx, store.CreateSnapshotParams{
		Location:    "reykjavik",
		Temperature: decimal.NewFromInt(4),
		Forecast:    "Snow",
	})
	if err != nil {
		t.Fatalf("CreateSnapshot failed: %v", err)
	}

	replaced, err := service.CreateSnapshot(ctx, store.CreateSnapshotParams{
		Location:    "reykjavik",
		Temperature: decimal.NewFromInt(7),
		Forecast:    "Sleet",
	})
	if err != nil {
		t.Fatalf("CreateSnapshot failed: %v", err)
	}
	if !replaced.Temperature.Equal(decimal.NewFromInt(7)) {
		t.Errorf("Expected temperature 7 after replace, got %s", replaced.Temperature.String())
	}

	snapshots, err := service.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(snapshots) != 1 {
		t.Errorf("Expected a single row per location, got %d", len(snapshots))
	}
}
