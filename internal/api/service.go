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
	"errors"

	"weather-insurance-go/internal/common"
	"weather-insurance-go/internal/lifecycle"
	"weather-insurance-go/internal/store"
)

// ErrValidation marks malformed or missing request fields. Transport layers
// map it to a 400-class response; errors.Is distinguishes it from not-found
// and state-conflict failures.
var ErrValidation = errors.New("validation failed")

// InsuranceService is the operations surface exposed to the API-layer
// collaborator. It validates inputs, delegates to the lifecycle manager and
// the store, and never retries.
type InsuranceService struct {
	store   store.InsuranceStore
	manager *lifecycle.Manager
	options *common.Options
}

func NewInsuranceService(insuranceStore store.InsuranceStore, manager *lifecycle.Manager, options *common.Options) *InsuranceService {
	return &InsuranceService{
		store:   insuranceStore,
		manager: manager,
		options: options,
	}
}

// GetOptions returns the static location / event type / duration
// enumerations the policy purchase form is built from.
func (s *InsuranceService) GetOptions() *common.Options {
	return s.options
}
