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

package database

const (
	// Policy queries
	queryInsertPolicy = `
		INSERT INTO policies (
			wallet_address, location, event_type, threshold, coverage, premium,
			duration, start_date, end_date, status, current_value, tx_hash
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryGetPolicyById = `
		SELECT id, wallet_address, location, event_type, threshold, coverage, premium,
		       duration, start_date, end_date, status, current_value, tx_hash,
		       created_at, updated_at
		FROM policies
		WHERE id = ?`

	queryGetPoliciesByWallet = `
		SELECT id, wallet_address, location, event_type, threshold, coverage, premium,
		       duration, start_date, end_date, status, current_value, tx_hash,
		       created_at, updated_at
		FROM policies
		WHERE LOWER(wallet_address) = LOWER(?)
		ORDER BY id`

	queryUpdatePolicy = `
		UPDATE policies
		SET status = ?, current_value = ?, tx_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	// Status compare-and-swap: the WHERE clause re-checks the expected status
	// so a concurrent transition makes RowsAffected report zero.
	queryTransitionPolicyStatus = `
		UPDATE policies
		SET status = ?, current_value = ?, tx_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?`

	queryExpirePolicies = `
		UPDATE policies
		SET status = 'expired', updated_at = CURRENT_TIMESTAMP
		WHERE status IN ('active', 'claim_eligible') AND end_date < ?`

	// Transaction queries
	queryInsertTransaction = `
		INSERT INTO transactions (id, wallet_address, type, amount, tx_hash, timestamp, policy_id, details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	queryGetTransactionsByWallet = `
		SELECT id, wallet_address, type, amount, tx_hash, timestamp, policy_id, details
		FROM transactions
		WHERE LOWER(wallet_address) = LOWER(?)
		ORDER BY timestamp DESC`

	// Weather snapshot queries
	querySeedSnapshot = `
		INSERT OR IGNORE INTO weather_data (
			location, temperature, rainfall_24h, rainfall_30d, days_without_rain,
			humidity, wind_speed, forecast, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`

	queryUpsertSnapshot = `
		INSERT INTO weather_data (
			location, temperature, rainfall_24h, rainfall_30d, days_without_rain,
			humidity, wind_speed, forecast, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(location) DO UPDATE SET
			temperature = excluded.temperature,
			rainfall_24h = excluded.rainfall_24h,
			rainfall_30d = excluded.rainfall_30d,
			days_without_rain = excluded.days_without_rain,
			humidity = excluded.humidity,
			wind_speed = excluded.wind_speed,
			forecast = excluded.forecast,
			last_updated = CURRENT_TIMESTAMP`

	queryGetSnapshot = `
		SELECT location, temperature, rainfall_24h, rainfall_30d, days_without_rain,
		       humidity, wind_speed, forecast, last_updated
		FROM weather_data
		WHERE location = ?`

	queryListSnapshots = `
		SELECT location, temperature, rainfall_24h, rainfall_30d, days_without_rain,
		       humidity, wind_speed, forecast, last_updated
		FROM weather_data
		ORDER BY location`

	queryUpdateSnapshot = `
		UPDATE weather_data
		SET temperature = ?, rainfall_24h = ?, rainfall_30d = ?, days_without_rain = ?,
		    humidity = ?, wind_speed = ?, forecast = ?, last_updated = CURRENT_TIMESTAMP
		WHERE location = ?`
)
