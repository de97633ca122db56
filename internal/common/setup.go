package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"weather-insurance-go/internal/database"
	"weather-insurance-go/internal/lifecycle"
	"weather-insurance-go/internal/memstore"
	"weather-insurance-go/internal/models"
	"weather-insurance-go/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Try to load .env file - if it doesn't exist, that's okay
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	Store   store.InsuranceStore
	Manager *lifecycle.Manager
	Options *Options
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	insuranceStore, err := InitializeStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	options, err := LoadOptions(cfg.Options.File)
	if err != nil {
		insuranceStore.Close()
		return nil, err
	}

	return &Services{
		Store:   insuranceStore,
		Manager: lifecycle.NewManager(insuranceStore),
		Options: options,
	}, nil
}

// InitializeStore builds the configured storage backend. The memory backend
// carries the reference in-memory semantics; SQLite is the persistent one.
func InitializeStore(ctx context.Context, cfg *models.Config) (store.InsuranceStore, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return database.NewService(ctx, cfg.Database)
	case "memory":
		zap.L().Info("Using in-memory store (records do not survive restarts)")
		memStore := memstore.New()
		if cfg.Database.SeedWeatherData {
			if err := SeedWeatherData(ctx, memStore); err != nil {
				return nil, err
			}
		}
		return memStore, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}
}

func (cs *Services) Close() {
	if cs.Store != nil {
		cs.Store.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
