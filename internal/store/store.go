package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"weather-insurance-go/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrPolicyNotFound   = errors.New("policy not found")
	ErrSnapshotNotFound = errors.New("weather snapshot not found")
	ErrStateConflict    = errors.New("policy not in required state for this transition")
)

// CreatePolicyParams contains the fields persisted for a new policy.
// The backend assigns the id; everything else is set by the caller.
type CreatePolicyParams struct {
	WalletAddress string
	Location      string
	EventType     models.EventType
	Threshold     decimal.Decimal
	Coverage      decimal.Decimal
	Premium       decimal.Decimal
	Duration      int
	StartDate     time.Time
	EndDate       time.Time
	Status        models.PolicyStatus
	CurrentValue  decimal.Decimal
	TxHash        string
}

// PolicyPatch enumerates the mutable policy fields. Identity fields (id,
// walletAddress) and the coverage terms are deliberately not patchable.
// Nil pointers leave the stored value untouched.
type PolicyPatch struct {
	Status       *models.PolicyStatus
	CurrentValue *decimal.Decimal
	TxHash       *string
}

// SnapshotPatch enumerates the mutable weather snapshot fields. The backend
// always refreshes LastUpdated on apply, whether or not a field changed.
type SnapshotPatch struct {
	Temperature     *decimal.Decimal
	Rainfall24h     *decimal.Decimal
	Rainfall30d     *decimal.Decimal
	DaysWithoutRain *int
	Humidity        *decimal.Decimal
	WindSpeed       *decimal.Decimal
	Forecast        *string
}

// AppendTransactionParams contains the fields for a new money-event record.
// The backend assigns the id; a zero Timestamp defaults to now.
type AppendTransactionParams struct {
	WalletAddress string
	Type          string
	Amount        decimal.Decimal
	TxHash        string
	Timestamp     time.Time
	PolicyId      int64
	Details       json.RawMessage
}

// CreateSnapshotParams contains the full reading stored for a location.
type CreateSnapshotParams struct {
	Location        string
	Temperature     decimal.Decimal
	Rainfall24h     decimal.Decimal
	Rainfall30d     decimal.Decimal
	DaysWithoutRain int
	Humidity        decimal.Decimal
	WindSpeed       decimal.Decimal
	Forecast        string
}

// InsuranceStore defines the contract that every backend (SQLite, in-memory)
// must satisfy. The lifecycle manager is the only writer of policy status and
// the only appender of money events; snapshot writes come from the oracle
// ingestion side.
type InsuranceStore interface {
	// --- Policies ---
	CreatePolicy(ctx context.Context, params CreatePolicyParams) (*models.Policy, error)
	GetPolicy(ctx context.Context, id int64) (*models.Policy, error)
	GetPoliciesByWallet(ctx context.Context, walletAddress string) ([]models.Policy, error)
	UpdatePolicy(ctx context.Context, id int64, patch PolicyPatch) (*models.Policy, error)

	// TransitionPolicyStatus atomically moves a policy from one status to
	// another, applying the patch in the same step. Returns ErrStateConflict
	// when the stored status does not match from.
	TransitionPolicyStatus(ctx context.Context, id int64, from, to models.PolicyStatus, patch PolicyPatch) (*models.Policy, error)

	// ExpirePolicies moves every active or claim_eligible policy whose
	// endDate precedes asOf into the expired state and reports the count.
	// Claimed policies are never touched.
	ExpirePolicies(ctx context.Context, asOf time.Time) (int64, error)

	// --- Transactions (append-only) ---
	AppendTransaction(ctx context.Context, params AppendTransactionParams) (*models.Transaction, error)
	GetTransactionsByWallet(ctx context.Context, walletAddress string) ([]models.Transaction, error)

	// --- Weather snapshots ---
	CreateSnapshot(ctx context.Context, params CreateSnapshotParams) (*models.WeatherSnapshot, error)
	GetSnapshot(ctx context.Context, location string) (*models.WeatherSnapshot, error)
	ListSnapshots(ctx context.Context) ([]models.WeatherSnapshot, error)
	UpdateSnapshot(ctx context.Context, location string, patch SnapshotPatch) (*models.WeatherSnapshot, error)

	// --- Lifecycle ---
	Close()
}
