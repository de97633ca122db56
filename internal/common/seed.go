package common

import (
	"context"
	"fmt"

	"weather-insurance-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SeedWeatherData loads the demo readings for the five known locations into
// a freshly constructed store. The SQLite backend seeds itself during schema
// init; this path serves the in-memory backend.
func SeedWeatherData(ctx context.Context, insuranceStore store.InsuranceStore) error {
	seeds := []store.CreateSnapshotParams{
		{Location: "mumbai", Temperature: decimal.NewFromInt(32), DaysWithoutRain: 32,
			Humidity: decimal.NewFromInt(65), WindSpeed: decimal.NewFromInt(12), Forecast: "Clear sky"},
		{Location: "new-york", Temperature: decimal.NewFromInt(24), Rainfall24h: decimal.NewFromInt(22),
			Rainfall30d: decimal.NewFromInt(85), Humidity: decimal.NewFromInt(78),
			WindSpeed: decimal.NewFromInt(8), Forecast: "Partly cloudy"},
		{Location: "london", Temperature: decimal.NewFromInt(18), Rainfall24h: decimal.NewFromInt(5),
			Rainfall30d: decimal.NewFromInt(65), Humidity: decimal.NewFromInt(82),
			WindSpeed: decimal.NewFromInt(15), Forecast: "Light rain"},
		{Location: "tokyo", Temperature: decimal.NewFromInt(28), Rainfall30d: decimal.NewFromInt(45),
			DaysWithoutRain: 3, Humidity: decimal.NewFromInt(70),
			WindSpeed: decimal.NewFromInt(10), Forecast: "Sunny"},
		{Location: "sydney", Temperature: decimal.NewFromInt(26), Rainfall30d: decimal.NewFromInt(20),
			DaysWithoutRain: 10, Humidity: decimal.NewFromInt(75),
			WindSpeed: decimal.NewFromInt(18), Forecast: "Mostly sunny"},
	}

	for _, seed := range seeds {
		if _, err := insuranceStore.CreateSnapshot(ctx, seed); err != nil {
			return fmt.Errorf("unable to seed weather data for %s: %w", seed.Location, err)
		}
	}

	zap.L().Info("Weather data seeded", zap.Int("locations", len(seeds)))
	return nil
}
