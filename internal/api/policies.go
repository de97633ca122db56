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

package api

import (
	"context"
	"fmt"

	"weather-insurance-go/internal/models"
	"weather-insurance-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ListPolicies returns all policies owned by a wallet (case-insensitive).
func (s *InsuranceService) ListPolicies(ctx context.Context, walletAddress string) ([]models.Policy, error) {
	if walletAddress == "" {
		return nil, fmt.Errorf("%w: wallet address is required", ErrValidation)
	}

	policies, err := s.store.GetPoliciesByWallet(ctx, walletAddress)
	if err != nil {
		zap.L().Error("Failed to list policies", zap.String("wallet", walletAddress), zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve policies: %w", err)
	}

	return policies, nil
}

func (s *InsuranceService) GetPolicy(ctx context.Context, id int64) (*models.Policy, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid policy id %d", ErrValidation, id)
	}
	return s.store.GetPolicy(ctx, id)
}

// CreatePolicy validates the purchase request against the configured
// options and delegates to the lifecycle manager.
func (s *InsuranceService) CreatePolicy(ctx context.Context, req models.CreatePolicyRequest) (*models.Policy, error) {
	if req.WalletAddress == "" {
		return nil, fmt.Errorf("%w: wallet address is required", ErrValidation)
	}
	if !s.options.HasLocation(req.Location) {
		return nil, fmt.Errorf("%w: unknown location %q", ErrValidation, req.Location)
	}
	if !s.options.HasEventType(string(req.EventType)) {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrValidation, req.EventType)
	}
	if !s.options.HasDuration(req.Duration) {
		return nil, fmt.Errorf("%w: unsupported duration %d days", ErrValidation, req.Duration)
	}
	if req.Threshold.IsNegative() {
		return nil, fmt.Errorf("%w: threshold cannot be negative", ErrValidation)
	}
	if req.Coverage.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: coverage must be positive", ErrValidation)
	}
	if req.Premium.IsNegative() {
		return nil, fmt.Errorf("%w: premium cannot be negative", ErrValidation)
	}

	return s.manager.CreatePolicy(ctx, req)
}

// UpdatePolicy applies a partial update. Only the fields the patch type
// enumerates are mutable; identity fields cannot be overwritten.
func (s *InsuranceService) UpdatePolicy(ctx context.Context, id int64, patch store.PolicyPatch) (*models.Policy, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid policy id %d", ErrValidation, id)
	}
	if patch.Status != nil {
		switch *patch.Status {
		case models.StatusActive, models.StatusClaimEligible, models.StatusClaimed, models.StatusExpired:
		default:
			return nil, fmt.Errorf("%w: unknown policy status %q", ErrValidation, *patch.Status)
		}
	}

	policy, err := s.store.UpdatePolicy(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Policy updated", zap.Int64("policy_id", id))
	return policy, nil
}
