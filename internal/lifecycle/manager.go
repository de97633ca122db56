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

package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"weather-insurance-go/internal/eligibility"
	"weather-insurance-go/internal/models"
	"weather-insurance-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Manager orchestrates the policy lifecycle: it is the single writer of
// policy status and the only appender of money events. It never retries
// internally; retry policy belongs to the caller.
type Manager struct {
	store store.InsuranceStore
	rule  eligibility.Rule
}

func NewManager(insuranceStore store.InsuranceStore) *Manager {
	return &Manager{
		store: insuranceStore,
		rule:  eligibility.ThresholdRule{},
	}
}

// CreatePolicy persists a new active policy and appends the policy_created
// money event carrying the premium.
func (m *Manager) CreatePolicy(ctx context.Context, req models.CreatePolicyRequest) (*models.Policy, error) {
	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = time.Now()
	}

	policy, err := m.store.CreatePolicy(ctx, store.CreatePolicyParams{
		WalletAddress: req.WalletAddress,
		Location:      req.Location,
		EventType:     req.EventType,
		Threshold:     req.Threshold,
		Coverage:      req.Coverage,
		Premium:       req.Premium,
		Duration:      req.Duration,
		StartDate:     startDate,
		EndDate:       startDate.AddDate(0, 0, req.Duration),
		Status:        models.StatusActive,
		CurrentValue:  decimal.Zero,
		TxHash:        req.TxHash,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating policy: %w", err)
	}

	details, _ := json.Marshal(map[string]any{
		"location":  policy.Location,
		"eventType": policy.EventType,
		"duration":  policy.Duration,
	})

	_, err = m.store.AppendTransaction(ctx, store.AppendTransactionParams{
		WalletAddress: policy.WalletAddress,
		Type:          models.TxTypePolicyCreated,
		Amount:        policy.Premium,
		TxHash:        policy.TxHash,
		Timestamp:     time.Now(),
		PolicyId:      policy.Id,
		Details:       details,
	})
	if err != nil {
		return nil, fmt.Errorf("error recording policy creation: %w", err)
	}

	zap.L().Info("Policy created",
		zap.Int64("policy_id", policy.Id),
		zap.String("wallet", policy.WalletAddress),
		zap.String("event_type", string(policy.EventType)),
		zap.String("premium", policy.Premium.String()),
		zap.Time("end_date", policy.EndDate))

	return policy, nil
}

// CheckEligibility evaluates a policy against the latest snapshot for its
// location. When the trigger condition is met and the policy is still
// active, it moves to claim_eligible; otherwise nothing is mutated. The
// evaluation result is returned to the caller either way, so the check is a
// safe, repeatable operation. No money event is appended here.
func (m *Manager) CheckEligibility(ctx context.Context, policyId int64) (*models.EligibilityResponse, error) {
	policy, err := m.store.GetPolicy(ctx, policyId)
	if err != nil {
		return nil, err
	}

	snapshot, err := m.store.GetSnapshot(ctx, policy.Location)
	if err != nil {
		return nil, err
	}

	result, err := m.rule.Evaluate(policy, snapshot)
	if err != nil {
		return nil, err
	}

	if result.Eligible && policy.Status == models.StatusActive {
		observed := result.ObservedValue
		_, err := m.store.TransitionPolicyStatus(ctx, policyId,
			models.StatusActive, models.StatusClaimEligible,
			store.PolicyPatch{CurrentValue: &observed})
		if err != nil && !errors.Is(err, store.ErrStateConflict) {
			return nil, fmt.Errorf("error marking policy claim-eligible: %w", err)
		}
		// A lost race means another check already moved the policy forward;
		// the decision we report is still correct.
	}

	zap.L().Info("Eligibility checked",
		zap.Int64("policy_id", policyId),
		zap.Bool("eligible", result.Eligible),
		zap.String("observed", result.ObservedValue.String()))

	return &models.EligibilityResponse{
		PolicyId:    policyId,
		IsEligible:  result.Eligible,
		Reason:      result.Reason,
		WeatherData: snapshot,
	}, nil
}

// ClaimPayout moves a claim_eligible policy to claimed, records the backing
// ledger transaction hash, and appends exactly one claim_paid money event
// for the coverage amount. The status swap is atomic, so two concurrent
// claims on the same policy cannot both pay out.
func (m *Manager) ClaimPayout(ctx context.Context, policyId int64, txHash string) (*models.ClaimResult, error) {
	if txHash == "" {
		return nil, fmt.Errorf("transaction hash is required")
	}

	policy, err := m.store.TransitionPolicyStatus(ctx, policyId,
		models.StatusClaimEligible, models.StatusClaimed,
		store.PolicyPatch{TxHash: &txHash})
	if err != nil {
		if errors.Is(err, store.ErrStateConflict) {
			return nil, fmt.Errorf("policy %d is not eligible for claim payout: %w", policyId, err)
		}
		return nil, err
	}

	details, _ := json.Marshal(map[string]any{
		"reason":   "Claim payout for policy",
		"location": policy.Location,
	})

	transaction, err := m.store.AppendTransaction(ctx, store.AppendTransactionParams{
		WalletAddress: policy.WalletAddress,
		Type:          models.TxTypeClaimPaid,
		Amount:        policy.Coverage,
		TxHash:        txHash,
		Timestamp:     time.Now(),
		PolicyId:      policy.Id,
		Details:       details,
	})
	if err != nil {
		return nil, fmt.Errorf("error recording claim payout: %w", err)
	}

	zap.L().Info("Claim paid",
		zap.Int64("policy_id", policy.Id),
		zap.String("wallet", policy.WalletAddress),
		zap.String("amount", policy.Coverage.String()),
		zap.String("tx_hash", txHash))

	return &models.ClaimResult{
		Success:     true,
		Policy:      policy,
		Transaction: transaction,
	}, nil
}

// ExpirePolicies sweeps active and claim_eligible policies whose coverage
// window has passed. Claimed policies are terminal and never touched.
func (m *Manager) ExpirePolicies(ctx context.Context, asOf time.Time) (int64, error) {
	expired, err := m.store.ExpirePolicies(ctx, asOf)
	if err != nil {
		return 0, fmt.Errorf("error expiring policies: %w", err)
	}
	return expired, nil
}
