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
	"fmt"

	"weather-insurance-go/internal/api"
	"weather-insurance-go/internal/common"
	"weather-insurance-go/internal/config"
	"weather-insurance-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// parseSnapshotFlags builds a snapshot patch from the provided flags. Only
// flags the operator actually set end up in the patch.
func parseSnapshotFlags() (string, store.SnapshotPatch, error) {
	locationFlag := flag.String("location", "", "Location id to update, e.g. mumbai (required)")
	temperatureFlag := flag.String("temperature", "", "Temperature in °C")
	rainfall24hFlag := flag.String("rainfall24h", "", "Rainfall over the last 24h in mm")
	rainfall30dFlag := flag.String("rainfall30d", "", "Rainfall over the last 30 days in mm")
	daysWithoutRainFlag := flag.Int("days-without-rain", -1, "Consecutive days without rain")
	humidityFlag := flag.String("humidity", "", "Relative humidity in percent")
	windSpeedFlag := flag.String("wind-speed", "", "Wind speed in km/h")
	forecastFlag := flag.String("forecast", "", "Free-text forecast label")
	flag.Parse()

	if *locationFlag == "" {
		return "", store.SnapshotPatch{}, fmt.Errorf("missing required flag: --location")
	}

	var patch store.SnapshotPatch
	decimalFlags := []struct {
		value  string
		name   string
		target **decimal.Decimal
	}{
		{*temperatureFlag, "temperature", &patch.Temperature},
		{*rainfall24hFlag, "rainfall24h", &patch.Rainfall24h},
		{*rainfall30dFlag, "rainfall30d", &patch.Rainfall30d},
		{*humidityFlag, "humidity", &patch.Humidity},
		{*windSpeedFlag, "wind-speed", &patch.WindSpeed},
	}
	for _, f := range decimalFlags {
		if f.value == "" {
			continue
		}
		parsed, err := decimal.NewFromString(f.value)
		if err != nil {
			return "", store.SnapshotPatch{}, fmt.Errorf("invalid %s format: %w", f.name, err)
		}
		*f.target = &parsed
	}

	if *daysWithoutRainFlag >= 0 {
		days := *daysWithoutRainFlag
		patch.DaysWithoutRain = &days
	}
	if *forecastFlag != "" {
		forecast := *forecastFlag
		patch.Forecast = &forecast
	}

	return *locationFlag, patch, nil
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	location, patch, err := parseSnapshotFlags()
	if err != nil {
		logger.Fatal("Invalid flags", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	service := api.NewInsuranceService(services.Store, services.Manager, services.Options)

	snapshot, err := service.UpdateWeatherSnapshot(ctx, location, patch)
	if err != nil {
		logger.Fatal("Failed to update weather snapshot", zap.Error(err))
	}

	common.PrintHeader("WEATHER SNAPSHOT UPDATED", common.DefaultWidth)
	fmt.Printf("Location:          %s\n", snapshot.Location)
	fmt.Printf("Temperature:       %s°C\n", snapshot.Temperature.String())
	fmt.Printf("Rainfall 24h/30d:  %smm / %smm\n", snapshot.Rainfall24h.String(), snapshot.Rainfall30d.String())
	fmt.Printf("Days without rain: %d\n", snapshot.DaysWithoutRain)
	fmt.Printf("Humidity:          %s%%\n", snapshot.Humidity.String())
	fmt.Printf("Wind speed:        %skm/h\n", snapshot.WindSpeed.String())
	fmt.Printf("Forecast:          %s\n", snapshot.Forecast)
	common.PrintFooter(fmt.Sprintf("Last updated: %s", snapshot.LastUpdated.Format("2006-01-02 15:04:05")), common.DefaultWidth)

	logger.Info("Weather snapshot update completed", zap.String("location", location))
}
