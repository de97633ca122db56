package models

import "time"

// Config represents the application configuration
type Config struct {
	Database  DatabaseConfig
	Store     StoreConfig
	Scheduler SchedulerConfig
	Options   OptionsConfig
}

// DatabaseConfig holds SQLite connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	SeedWeatherData bool
}

// StoreConfig selects the storage backend
type StoreConfig struct {
	// Backend is "sqlite" or "memory".
	Backend string
}

// SchedulerConfig holds policy expiry sweep settings
type SchedulerConfig struct {
	ExpiryEnabled  bool
	ExpirySchedule string
}

// OptionsConfig points at an optional YAML file overriding the built-in
// location / event type / duration enumerations.
type OptionsConfig struct {
	File string
}
