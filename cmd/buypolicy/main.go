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
	"weather-insurance-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type purchaseRequest struct {
	wallet    string
	location  string
	eventType string
	threshold decimal.Decimal
	coverage  decimal.Decimal
	premium   decimal.Decimal
	duration  int
	txHash    string
}

func parseAndValidateFlags() (*purchaseRequest, error) {
	walletFlag := flag.String("wallet", "", "Wallet address owning the policy (required)")
	locationFlag := flag.String("location", "", "Insured location id, e.g. mumbai (required)")
	eventFlag := flag.String("event", "", "Weather event type: rainfall, drought, heatwave, storm (required)")
	thresholdFlag := flag.String("threshold", "", "Payout trigger threshold (required)")
	coverageFlag := flag.String("coverage", "", "Payout amount on a successful claim (required)")
	premiumFlag := flag.String("premium", "", "Premium paid for the policy (required)")
	durationFlag := flag.Int("duration", 30, "Coverage duration in days")
	txHashFlag := flag.String("txhash", "", "Optional ledger transaction hash backing the purchase")
	flag.Parse()

	if *walletFlag == "" || *locationFlag == "" || *eventFlag == "" ||
		*thresholdFlag == "" || *coverageFlag == "" || *premiumFlag == "" {
		return nil, fmt.Errorf("required flags: --wallet, --location, --event, --threshold, --coverage, --premium")
	}

	threshold, err := decimal.NewFromString(*thresholdFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid threshold format: %w", err)
	}
	coverage, err := decimal.NewFromString(*coverageFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid coverage format: %w", err)
	}
	premium, err := decimal.NewFromString(*premiumFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid premium format: %w", err)
	}

	return &purchaseRequest{
		wallet:    *walletFlag,
		location:  *locationFlag,
		eventType: *eventFlag,
		threshold: threshold,
		coverage:  coverage,
		premium:   premium,
		duration:  *durationFlag,
		txHash:    *txHashFlag,
	}, nil
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	request, err := parseAndValidateFlags()
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

	policy, err := service.CreatePolicy(ctx, models.CreatePolicyRequest{
		WalletAddress: request.wallet,
		Location:      request.location,
		EventType:     models.EventType(request.eventType),
		Threshold:     request.threshold,
		Coverage:      request.coverage,
		Premium:       request.premium,
		Duration:      request.duration,
		TxHash:        request.txHash,
	})
	if err != nil {
		logger.Fatal("Failed to create policy", zap.Error(err))
	}

	common.PrintHeader("POLICY PURCHASED", common.DefaultWidth)
	fmt.Printf("Policy ID:  %d\n", policy.Id)
	fmt.Printf("Wallet:     %s\n", policy.WalletAddress)
	fmt.Printf("Location:   %s\n", policy.Location)
	fmt.Printf("Event:      %s (threshold %s)\n", policy.EventType, policy.Threshold.String())
	fmt.Printf("Coverage:   %s (premium %s)\n", policy.Coverage.String(), policy.Premium.String())
	fmt.Printf("Window:     %s to %s\n",
		policy.StartDate.Format("2006-01-02"), policy.EndDate.Format("2006-01-02"))
	common.PrintFooter(fmt.Sprintf("Status: %s", policy.Status), common.DefaultWidth)

	logger.Info("Policy purchase completed", zap.Int64("policy_id", policy.Id))
}
