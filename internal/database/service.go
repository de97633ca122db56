/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"fmt"

	"weather-insurance-go/internal/models"
	"weather-insurance-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.InsuranceStore.
var _ store.InsuranceStore = (*Service)(nil)

type Service struct {
	db *sql.DB
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	// Set connection timeouts and limits
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection with timeout
	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		err := db.Close()
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := &Service{db: db}
	if err := service.initSchema(cfg.SeedWeatherData); err != nil {
		err := db.Close()
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) initSchema(seedWeatherData bool) error {
	schema := `
	-- Insurance policies
	CREATE TABLE IF NOT EXISTS policies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		wallet_address TEXT NOT NULL,
		location TEXT NOT NULL,
		event_type TEXT NOT NULL,
		threshold TEXT NOT NULL,
		coverage TEXT NOT NULL,
		premium TEXT NOT NULL,
		duration INTEGER NOT NULL,
		start_date TIMESTAMP NOT NULL,
		end_date TIMESTAMP NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		current_value TEXT NOT NULL DEFAULT '0',
		tx_hash TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_policies_wallet ON policies(wallet_address);
	CREATE INDEX IF NOT EXISTS idx_policies_status ON policies(status);
	CREATE INDEX IF NOT EXISTS idx_policies_end_date ON policies(end_date);

	-- Money-event log (append-only)
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		wallet_address TEXT NOT NULL,
		type TEXT NOT NULL,
		amount TEXT NOT NULL,
		tx_hash TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL,
		policy_id INTEGER,
		details TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_wallet ON transactions(wallet_address);
	CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions(timestamp);
	CREATE INDEX IF NOT EXISTS idx_transactions_policy_id ON transactions(policy_id);

	-- Latest weather reading per location
	CREATE TABLE IF NOT EXISTS weather_data (
		location TEXT PRIMARY KEY,
		temperature TEXT NOT NULL DEFAULT '0',
		rainfall_24h TEXT NOT NULL DEFAULT '0',
		rainfall_30d TEXT NOT NULL DEFAULT '0',
		days_without_rain INTEGER NOT NULL DEFAULT 0,
		humidity TEXT NOT NULL DEFAULT '0',
		wind_speed TEXT NOT NULL DEFAULT '0',
		forecast TEXT NOT NULL DEFAULT '',
		last_updated TIMESTAMP NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return err
	}

	if seedWeatherData {
		return s.seedWeatherData()
	}
	zap.L().Info("Skipping weather data seeding (SEED_WEATHER_DATA=false)")
	return nil
}

// seedWeatherData inserts the demo readings for the five known locations.
// INSERT OR IGNORE keeps restarts from overwriting live oracle updates.
func (s *Service) seedWeatherData() error {
	seeds := []struct {
		location        string
		temperature     string
		rainfall24h     string
		rainfall30d     string
		daysWithoutRain int
		humidity        string
		windSpeed       string
		forecast        string
	}{
		{"mumbai", "32", "0", "0", 32, "65", "12", "Clear sky"},
		{"new-york", "24", "22", "85", 0, "78", "8", "Partly cloudy"},
		{"london", "18", "5", "65", 0, "82", "15", "Light rain"},
		{"tokyo", "28", "0", "45", 3, "70", "10", "Sunny"},
		{"sydney", "26", "0", "20", 10, "75", "18", "Mostly sunny"},
	}

	for _, seed := range seeds {
		_, err := s.db.Exec(querySeedSnapshot,
			seed.location, seed.temperature, seed.rainfall24h, seed.rainfall30d,
			seed.daysWithoutRain, seed.humidity, seed.windSpeed, seed.forecast)
		if err != nil {
			zap.L().Error("Failed to seed weather data", zap.String("location", seed.location), zap.Error(err))
			return fmt.Errorf("unable to seed weather data for %s: %w", seed.location, err)
		}
	}

	zap.L().Info("Weather data seeded", zap.Int("locations", len(seeds)))
	return nil
}

// parseDecimal wraps decimal parsing of TEXT columns with a column name for
// error context.
func parseDecimal(column, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s '%s': %w", column, value, err)
	}
	return d, nil
}
