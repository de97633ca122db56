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

	"go.uber.org/zap"
)

func printPolicy(policy models.Policy, isLast bool) {
	symbol := common.BoxPrefix(isLast)
	fmt.Printf("%s #%-4d %-10s %-9s threshold=%-8s coverage=%-10s %s (until %s)\n",
		symbol,
		policy.Id,
		policy.Location,
		policy.EventType,
		policy.Threshold.String(),
		policy.Coverage.String(),
		policy.Status,
		policy.EndDate.Format("2006-01-02"))
}

func printTransaction(tx models.Transaction, isLast bool) {
	symbol := common.BoxPrefix(isLast)
	fmt.Printf("%s %-16s %12s  policy=%-4d tx=%s  %s\n",
		symbol,
		tx.Type,
		tx.Amount.String(),
		tx.PolicyId,
		common.FormatTxHash(tx.TxHash),
		tx.Timestamp.Format("2006-01-02 15:04:05"))
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	walletFlag := flag.String("wallet", "", "Wallet address to report on (required)")
	flag.Parse()

	if *walletFlag == "" {
		logger.Fatal("Missing required flag: --wallet")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Connecting to store", zap.String("backend", cfg.Store.Backend))
	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	service := api.NewInsuranceService(services.Store, services.Manager, services.Options)

	policies, err := service.ListPolicies(ctx, *walletFlag)
	if err != nil {
		logger.Fatal("Failed to list policies", zap.Error(err))
	}

	transactions, err := service.ListTransactions(ctx, *walletFlag)
	if err != nil {
		logger.Fatal("Failed to list transactions", zap.Error(err))
	}

	common.PrintHeader("WALLET POLICY REPORT", common.DefaultWidth)
	fmt.Printf("\n┌─ Wallet: %s\n", *walletFlag)
	fmt.Printf("│  Policies: %d\n", len(policies))
	common.PrintBoxSeparator(78)
	for i, policy := range policies {
		printPolicy(policy, i == len(policies)-1)
	}

	fmt.Printf("\n┌─ Transactions (most recent first): %d\n", len(transactions))
	common.PrintBoxSeparator(78)
	for i, tx := range transactions {
		printTransaction(tx, i == len(transactions)-1)
	}

	summary := fmt.Sprintf("SUMMARY: %d policies, %d transactions", len(policies), len(transactions))
	common.PrintFooter(summary, common.DefaultWidth)

	logger.Info("Report completed",
		zap.Int("policies", len(policies)),
		zap.Int("transactions", len(transactions)))
}
