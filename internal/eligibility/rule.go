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

package eligibility

import (
	"errors"

	"weather-insurance-go/internal/models"

	"github.com/shopspring/decimal"
)

// ErrUnknownEventType is returned when a policy carries an event type no
// rule set recognizes. Callers decide whether to treat this as fatal.
var ErrUnknownEventType = errors.New("unknown event type")

// Result is an eligibility decision for a single policy against a single
// weather snapshot.
type Result struct {
	Eligible      bool
	Reason        string
	ObservedValue decimal.Decimal
}

// Rule decides whether current weather conditions satisfy a policy's payout
// trigger. Implementations are pure: no side effects, deterministic, safe to
// call repeatedly. The caller is responsible for passing the snapshot that
// matches the policy's location.
type Rule interface {
	Evaluate(policy *models.Policy, snapshot *models.WeatherSnapshot) (Result, error)
}
