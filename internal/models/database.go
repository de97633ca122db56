package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// EventType identifies the weather event a policy insures against.
type EventType string

const (
	EventRainfall EventType = "rainfall"
	EventDrought  EventType = "drought"
	EventHeatwave EventType = "heatwave"
	EventStorm    EventType = "storm"
)

// PolicyStatus is the lifecycle state of a policy. Status only moves
// forward: active -> claim_eligible -> claimed, with active/claim_eligible
// -> expired once the coverage window passes. claimed is terminal.
type PolicyStatus string

const (
	StatusActive        PolicyStatus = "active"
	StatusClaimEligible PolicyStatus = "claim_eligible"
	StatusClaimed       PolicyStatus = "claimed"
	StatusExpired       PolicyStatus = "expired"
)

// Policy represents a purchased coverage record tied to a location, weather
// event type, and payout threshold.
type Policy struct {
	Id            int64           `db:"id"`
	WalletAddress string          `db:"wallet_address"`
	Location      string          `db:"location"`
	EventType     EventType       `db:"event_type"`
	Threshold     decimal.Decimal `db:"threshold"`
	Coverage      decimal.Decimal `db:"coverage"`
	Premium       decimal.Decimal `db:"premium"`
	Duration      int             `db:"duration"`
	StartDate     time.Time       `db:"start_date"`
	EndDate       time.Time       `db:"end_date"`
	Status        PolicyStatus    `db:"status"`
	CurrentValue  decimal.Decimal `db:"current_value"`
	TxHash        string          `db:"tx_hash"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// Transaction types recorded in the money-event log.
const (
	TxTypePolicyCreated = "policy_created"
	TxTypeClaimPaid     = "claim_paid"
)

// Transaction represents an immutable money-relevant event (append-only)
type Transaction struct {
	Id            string          `db:"id"`
	WalletAddress string          `db:"wallet_address"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	TxHash        string          `db:"tx_hash"`
	Timestamp     time.Time       `db:"timestamp"`
	PolicyId      int64           `db:"policy_id"`
	Details       json.RawMessage `db:"details"`
}

// WeatherSnapshot is the latest known weather reading for a location.
// At most one snapshot exists per location; updates overwrite in place and
// always refresh LastUpdated.
type WeatherSnapshot struct {
	Location        string          `db:"location"`
	Temperature     decimal.Decimal `db:"temperature"`
	Rainfall24h     decimal.Decimal `db:"rainfall_24h"`
	Rainfall30d     decimal.Decimal `db:"rainfall_30d"`
	DaysWithoutRain int             `db:"days_without_rain"`
	Humidity        decimal.Decimal `db:"humidity"`
	WindSpeed       decimal.Decimal `db:"wind_speed"`
	Forecast        string          `db:"forecast"`
	LastUpdated     time.Time       `db:"last_updated"`
}
