package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"weather-insurance-go/internal/models"
	"weather-insurance-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check: *Store must satisfy store.InsuranceStore.
var _ store.InsuranceStore = (*Store)(nil)

// Store is the in-memory reference backend. All records live in maps behind
// a single mutex, so status transitions are check-and-set under the lock and
// two concurrent claims on the same policy cannot both succeed.
type Store struct {
	mu           sync.Mutex
	policies     map[int64]models.Policy
	transactions map[string]models.Transaction
	snapshots    map[string]models.WeatherSnapshot
	nextPolicyId int64
}

func New() *Store {
	return &Store{
		policies:     make(map[int64]models.Policy),
		transactions: make(map[string]models.Transaction),
		snapshots:    make(map[string]models.WeatherSnapshot),
		nextPolicyId: 1,
	}
}

func (s *Store) CreatePolicy(_ context.Context, params store.CreatePolicyParams) (*models.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	policy := models.Policy{
		Id:            s.nextPolicyId,
		WalletAddress: params.WalletAddress,
		Location:      params.Location,
		EventType:     params.EventType,
		Threshold:     params.Threshold,
		Coverage:      params.Coverage,
		Premium:       params.Premium,
		Duration:      params.Duration,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
		Status:        params.Status,
		CurrentValue:  params.CurrentValue,
		TxHash:        params.TxHash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.nextPolicyId++
	s.policies[policy.Id] = policy

	zap.L().Debug("Policy stored", zap.Int64("policy_id", policy.Id))
	return &policy, nil
}

func (s *Store) GetPolicy(_ context.Context, id int64) (*models.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	policy, ok := s.policies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", store.ErrPolicyNotFound, id)
	}
	return &policy, nil
}

func (s *Store) GetPoliciesByWallet(_ context.Context, walletAddress string) ([]models.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var policies []models.Policy
	for _, policy := range s.policies {
		if strings.EqualFold(policy.WalletAddress, walletAddress) {
			policies = append(policies, policy)
		}
	}
	sort.Slice(policies, func(i, j int) bool { return policies[i].Id < policies[j].Id })
	return policies, nil
}

func (s *Store) UpdatePolicy(_ context.Context, id int64, patch store.PolicyPatch) (*models.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	policy, ok := s.policies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", store.ErrPolicyNotFound, id)
	}

	applyPolicyPatch(&policy, patch)
	policy.UpdatedAt = time.Now()
	s.policies[id] = policy
	return &policy, nil
}

func (s *Store) TransitionPolicyStatus(_ context.Context, id int64, from, to models.PolicyStatus, patch store.PolicyPatch) (*models.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	policy, ok := s.policies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", store.ErrPolicyNotFound, id)
	}
	if policy.Status != from {
		return nil, fmt.Errorf("%w: policy %d is %s, expected %s", store.ErrStateConflict, id, policy.Status, from)
	}

	policy.Status = to
	applyPolicyPatch(&policy, patch)
	policy.UpdatedAt = time.Now()
	s.policies[id] = policy

	zap.L().Info("Policy status transitioned",
		zap.Int64("policy_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	return &policy, nil
}

func (s *Store) ExpirePolicies(_ context.Context, asOf time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired int64
	for id, policy := range s.policies {
		if policy.Status != models.StatusActive && policy.Status != models.StatusClaimEligible {
			continue
		}
		if !policy.EndDate.Before(asOf) {
			continue
		}
		policy.Status = models.StatusExpired
		policy.UpdatedAt = time.Now()
		s.policies[id] = policy
		expired++
	}
	return expired, nil
}

func (s *Store) AppendTransaction(_ context.Context, params store.AppendTransactionParams) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timestamp := params.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	tx := models.Transaction{
		Id:            uuid.New().String(),
		WalletAddress: params.WalletAddress,
		Type:          params.Type,
		Amount:        params.Amount,
		TxHash:        params.TxHash,
		Timestamp:     timestamp,
		PolicyId:      params.PolicyId,
		Details:       params.Details,
	}
	s.transactions[tx.Id] = tx
	return &tx, nil
}

func (s *Store) GetTransactionsByWallet(_ context.Context, walletAddress string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var transactions []models.Transaction
	for _, tx := range s.transactions {
		if strings.EqualFold(tx.WalletAddress, walletAddress) {
			transactions = append(transactions, tx)
		}
	}
	// Most recent first, sorted at query time.
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Timestamp.After(transactions[j].Timestamp)
	})
	return transactions, nil
}

func (s *Store) CreateSnapshot(_ context.Context, params store.CreateSnapshotParams) (*models.WeatherSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := models.WeatherSnapshot{
		Location:        params.Location,
		Temperature:     params.Temperature,
		Rainfall24h:     params.Rainfall24h,
		Rainfall30d:     params.Rainfall30d,
		DaysWithoutRain: params.DaysWithoutRain,
		Humidity:        params.Humidity,
		WindSpeed:       params.WindSpeed,
		Forecast:        params.Forecast,
		LastUpdated:     time.Now(),
	}
	s.snapshots[params.Location] = snapshot
	return &snapshot, nil
}

func (s *Store) GetSnapshot(_ context.Context, location string) (*models.WeatherSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.snapshots[location]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrSnapshotNotFound, location)
	}
	return &snapshot, nil
}

func (s *Store) ListSnapshots(_ context.Context) ([]models.WeatherSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshots := make([]models.WeatherSnapshot, 0, len(s.snapshots))
	for _, snapshot := range s.snapshots {
		snapshots = append(snapshots, snapshot)
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Location < snapshots[j].Location })
	return snapshots, nil
}

func (s *Store) UpdateSnapshot(_ context.Context, location string, patch store.SnapshotPatch) (*models.WeatherSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.snapshots[location]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrSnapshotNotFound, location)
	}

	if patch.Temperature != nil {
		snapshot.Temperature = *patch.Temperature
	}
	if patch.Rainfall24h != nil {
		snapshot.Rainfall24h = *patch.Rainfall24h
	}
	if patch.Rainfall30d != nil {
		snapshot.Rainfall30d = *patch.Rainfall30d
	}
	if patch.DaysWithoutRain != nil {
		snapshot.DaysWithoutRain = *patch.DaysWithoutRain
	}
	if patch.Humidity != nil {
		snapshot.Humidity = *patch.Humidity
	}
	if patch.WindSpeed != nil {
		snapshot.WindSpeed = *patch.WindSpeed
	}
	if patch.Forecast != nil {
		snapshot.Forecast = *patch.Forecast
	}
	// Updates always refresh the reading time, even for a no-op patch.
	snapshot.LastUpdated = time.Now()
	s.snapshots[location] = snapshot
	return &snapshot, nil
}

func (s *Store) Close() {}

func applyPolicyPatch(policy *models.Policy, patch store.PolicyPatch) {
	if patch.Status != nil {
		policy.Status = *patch.Status
	}
	if patch.CurrentValue != nil {
		policy.CurrentValue = *patch.CurrentValue
	}
	if patch.TxHash != nil {
		policy.TxHash = *patch.TxHash
	}
}
