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
)

// CheckEligibility evaluates whether the policy's trigger condition is met
// by the latest weather snapshot for its location. Repeatable: a policy that
// already left the active state is evaluated but never moved backward.
func (s *InsuranceService) CheckEligibility(ctx context.Context, policyId int64) (*models.EligibilityResponse, error) {
	if policyId <= 0 {
		return nil, fmt.Errorf("%w: invalid policy id %d", ErrValidation, policyId)
	}
	return s.manager.CheckEligibility(ctx, policyId)
}

// ClaimPayout settles a claim-eligible policy. The ledger transaction that
// funds the payout is submitted by the caller beforehand; its hash is
// recorded here.
func (s *InsuranceService) ClaimPayout(ctx context.Context, policyId int64, txHash string) (*models.ClaimResult, error) {
	if policyId <= 0 {
		return nil, fmt.Errorf("%w: invalid policy id %d", ErrValidation, policyId)
	}
	if txHash == "" {
		return nil, fmt.Errorf("%w: transaction hash is required", ErrValidation)
	}
	return s.manager.ClaimPayout(ctx, policyId, txHash)
}
