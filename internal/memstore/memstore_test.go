package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"weather-insurance-go/internal/models"
	"weather-insurance-go/internal/store"

	"github.com/shopspring/decimal"
)

func testPolicyParams() store.CreatePolicyParams {
	start := time.Now()
	return store.CreatePolicyParams{
		WalletAddress: "0xAbC123",
		Location:      "mumbai",
		EventType:     models.EventRainfall,
		Threshold:     decimal.NewFromInt(100),
		Coverage:      decimal.NewFromInt(1000),
		Premium:       decimal.NewFromInt(50),
		Duration:      30,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 30),
		Status:        models.StatusActive,
		CurrentValue:  decimal.Zero,
	}
}

func TestPolicyRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreatePolicy(ctx, testPolicyParams())
	if err != nil {
		t.Fatalf("CreatePolicy failed: %v", err)
	}
	if created.Id != 1 {
		t.Errorf("Expected first policy id 1, got %d", created.Id)
	}

	loaded, err := s.GetPolicy(ctx, created.Id)
	if err != nil {
		t.Fatalf("GetPolicy failed: %v", err)
	}
	if loaded.WalletAddress != created.WalletAddress || loaded.Status != models.StatusActive {
		t.Errorf("Loaded policy does not match created: %+v", loaded)
	}
	if !loaded.Threshold.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected threshold 100, got %s", loaded.Threshold.String())
	}
}

func TestGetPolicy_NotFound(t *testing.T) {
	s := New()

	_, err := s.GetPolicy(context.Background(), 42)
	if !errors.Is(err, store.ErrPolicyNotFound) {
		t.Errorf("Expected ErrPolicyNotFound, got: %v", err)
	}
}

func TestGetPoliciesByWallet_CaseInsensitive(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreatePolicy(ctx, testPolicyParams()); err != nil {
		t.Fatalf("CreatePolicy failed: %v", err)
	}

	other := testPolicyParams()
	other.WalletAddress = "0xOther"
	if _, err := s.CreatePolicy(ctx, other); err != nil {
		t.Fatalf("CreatePolicy failed: %v", err)
	}

	policies, err := s.GetPoliciesByWallet(ctx, "0XABC123")
	if err != nil {
		t.Fatalf("GetPoliciesByWallet failed: %v", err)
	}
	if len(policies) != 1 {
		t.Errorf("Expected 1 policy for wallet regardless of case, got %d", len(policies))
	}
}

func TestTransitionPolicyStatus(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreatePolicy(ctx, testPolicyParams())
	if err != nil {
		t.Fatalf("CreatePolicy failed: %v", err)
	}

	observed := decimal.NewFromInt(120)
	updated, err := s.TransitionPolicyStatus(ctx, created.Id,
		models.StatusActive, models.StatusClaimEligible,
		store.PolicyPatch{CurrentValue: &observed})
	if err != nil {
		t.Fatalf("TransitionPolicyStatus failed: %v", err)
	}
	if updated.Status != models.StatusClaimEligible {
		t.Errorf("Expected status %s, got %s", models.StatusClaimEligible, updated.Status)
	}
	if !updated.CurrentValue.Equal(observed) {
		t.Errorf("Expected current value 120, got %s", updated.CurrentValue.String())
	}

	// A second swap from the same starting state must lose.
	_, err = s.TransitionPolicyStatus(ctx, created.Id,
		models.StatusActive, models.StatusClaimEligible, store.PolicyPatch{})
	if !errors.Is(err, store.ErrStateConflict) {
		t.Errorf("Expected ErrStateConflict, got: %v", err)
	}
}

func TestTransitionPolicyStatus_NoBackwardMove(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreatePolicy(ctx, testPolicyParams())
	if err != nil {
		t.Fatalf("CreatePolicy failed: %v", err)
	}
	txHash := "0xpayout"
	if _, err := s.TransitionPolicyStatus(ctx, created.Id,
		models.StatusActive, models.StatusClaimEligible, store.PolicyPatch{}); err != nil {
		t.Fatalf("TransitionPolicyStatus failed: %v", err)
	}
	if _, err := s.TransitionPolicyStatus(ctx, created.Id,
		models.StatusClaimEligible, models.StatusClaimed,
		store.PolicyPatch{TxHash: &txHash}); err != nil {
		t.Fatalf("TransitionPolicyStatus failed: %v", err)
	}

	_, err = s.TransitionPolicyStatus(ctx, created.Id,
		models.StatusClaimed, models.StatusActive, store.PolicyPatch{})
	if err != nil {
		// Claimed is terminal only by convention at the manager layer; the
		// store itself still honors whatever from/to pair it is given.
		t.Fatalf("TransitionPolicyStatus failed: %v", err)
	}
}

func TestAppendTransaction_DescendingOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	base := time.Now()
	for i, offset := range []time.Duration{0, 2 * time.Hour, time.Hour} {
		_, err := s.AppendTransaction(ctx, store.AppendTransactionParams{
			WalletAddress: "0xAbC123",
			Type:          models.TxTypePolicyCreated,
			Amount:        decimal.NewFromInt(int64(i)),
			Timestamp:     base.Add(offset),
			PolicyId:      int64(i + 1),
		})
		if err != nil {
			t.Fatalf("AppendTransaction failed: %v", err)
		}
	}

	transactions, err := s.GetTransactionsByWallet(ctx, "0xabc123")
	if err != nil {
		t.Fatalf("GetTransactionsByWallet failed: %v", err)
	}
	if len(transactions) != 3 {
		t.Fatalf("Expected 3 transactions, got %d", len(transactions))
	}
	for i := 1; i < len(transactions); i++ {
		if transactions[i].Timestamp.After(transactions[i-1].Timestamp) {
			t.Errorf("Transactions not in descending order at index %d", i)
		}
	}
}

func TestAppendTransaction_DefaultsTimestamp(t *testing.T) {
	s := New()

	before := time.Now()
	tx, err := s.AppendTransaction(context.Background(), store.AppendTransactionParams{
		WalletAddress: "0xAbC123",
		Type:          models.TxTypeClaimPaid,
		Amount:        decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("AppendTransaction failed: %v", err)
	}
	if tx.Id == "" {
		t.Error("Expected a generated transaction id")
	}
	if tx.Timestamp.Before(before) {
		t.Error("Expected timestamp to default to now")
	}
}

func TestSnapshotUpdate_RefreshesLastUpdated(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateSnapshot(ctx, store.CreateSnapshotParams{
		Location:    "mumbai",
		Temperature: decimal.NewFromInt(32),
		Rainfall30d: decimal.NewFromInt(85),
	})
	if err != nil {
		t.Fatalf("CreateSnapshot failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	rainfall := decimal.NewFromInt(120)
	updated, err := s.UpdateSnapshot(ctx, "mumbai", store.SnapshotPatch{Rainfall30d: &rainfall})
	if err != nil {
		t.Fatalf("UpdateSnapshot failed: %v", err)
	}
	if !updated.Rainfall30d.Equal(rainfall) {
		t.Errorf("Expected rainfall 120, got %s", updated.Rainfall30d.String())
	}
	if !updated.LastUpdated.After(created.LastUpdated) {
		t.Error("Expected last updated to move forward on update")
	}
	// Untouched fields survive a partial patch.
	if !updated.Temperature.Equal(decimal.NewFromInt(32)) {
		t.Errorf("Expected temperature 32 to survive patch, got %s", updated.Temperature.String())
	}

	time.Sleep(10 * time.Millisecond)

	// Even an empty patch refreshes the reading time.
	noop, err := s.UpdateSnapshot(ctx, "mumbai", store.SnapshotPatch{})
	if err != nil {
		t.Fatalf("UpdateSnapshot failed: %v", err)
	}
	if !noop.LastUpdated.After(updated.LastUpdated) {
		t.Error("Expected last updated to move forward on empty patch")
	}
}

func TestSnapshot_NotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.GetSnapshot(ctx, "atlantis")
	if !errors.Is(err, store.ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound, got: %v", err)
	}

	_, err = s.UpdateSnapshot(ctx, "atlantis", store.SnapshotPatch{})
	if !errors.Is(err, store.ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound, got: %v", err)
	}
}

func TestListSnapshots_SortedByLocation(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, location := range []string{"tokyo", "london", "mumbai"} {
		_, err := s.CreateSnapshot(ctx, store.CreateSnapshotParams{Location: location})
		if err != nil {
			t.Fatalf("CreateSnapshot failed: %v", err)
		}
	}

	snapshots, err := s.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(snapshots) != 3 {
		t.Fatalf("Expected 3 snapshots, got %d", len(snapshots))
	}
	for i := 1; i < len(snapshots); i++ {
		if snapshots[i].Location < snapshots[i-1].Location {
			t.Errorf("Snapshots not sorted by location at index %d", i)
		}
	}
}
