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

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePolicyRequest carries the caller-supplied fields for a new policy.
// Id, status and currentValue are assigned by the lifecycle manager.
type CreatePolicyRequest struct {
	WalletAddress string          `json:"walletAddress"`
	Location      string          `json:"location"`
	EventType     EventType       `json:"eventType"`
	Threshold     decimal.Decimal `json:"threshold"`
	Coverage      decimal.Decimal `json:"coverage"`
	Premium       decimal.Decimal `json:"premium"`
	Duration      int             `json:"duration"`
	StartDate     time.Time       `json:"startDate"`
	TxHash        string          `json:"txHash,omitempty"`
}

// EligibilityResponse is the result of a checkEligibility call. The decision
// is returned even when no state transition took place.
type EligibilityResponse struct {
	PolicyId    int64            `json:"policyId"`
	IsEligible  bool             `json:"isEligible"`
	Reason      string           `json:"reason"`
	WeatherData *WeatherSnapshot `json:"weatherData"`
}

// ClaimResult is the outcome of a successful claim payout.
type ClaimResult struct {
	Success     bool         `json:"success"`
	Policy      *Policy      `json:"policy"`
	Transaction *Transaction `json:"transaction"`
}
