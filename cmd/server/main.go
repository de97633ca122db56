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

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"weather-insurance-go/internal/common"
	"weather-insurance-go/internal/config"
	"weather-insurance-go/internal/scheduler"

	"go.uber.org/zap"
)

func main() {
	optionsFile := flag.String("options", "", "Optional path to options.yaml overriding the built-in locations/event types/durations")
	flag.Parse()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}
	if *optionsFile != "" {
		cfg.Options.File = *optionsFile
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	zap.L().Info("Starting weather insurance service",
		zap.String("store_backend", cfg.Store.Backend))

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	var expiry *scheduler.ExpiryScheduler
	if cfg.Scheduler.ExpiryEnabled {
		expiry = scheduler.NewExpiryScheduler(services.Manager, cfg.Scheduler.ExpirySchedule)
		if err := expiry.Start(ctx); err != nil {
			zap.L().Fatal("Failed to start expiry scheduler", zap.Error(err))
		}
	} else {
		zap.L().Info("Expiry scheduler disabled (EXPIRY_ENABLED=false)")
	}

	zap.L().Info("Service running")
	zap.L().Info("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zap.L().Info("Shutdown signal received, stopping...")

	if expiry != nil {
		expiry.Stop()
	}
	cancel()

	zap.L().Info("Service stopped gracefully")
}
