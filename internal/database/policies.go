package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"weather-insurance-go/internal/models"
	"weather-insurance-go/internal/store"

	"go.uber.org/zap"
)

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPolicy(row rowScanner) (*models.Policy, error) {
	var policy models.Policy
	var thresholdStr, coverageStr, premiumStr, currentValueStr string
	var txHash sql.NullString

	err := row.Scan(&policy.Id, &policy.WalletAddress, &policy.Location, &policy.EventType,
		&thresholdStr, &coverageStr, &premiumStr, &policy.Duration,
		&policy.StartDate, &policy.EndDate, &policy.Status, &currentValueStr,
		&txHash, &policy.CreatedAt, &policy.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if policy.Threshold, err = parseDecimal("threshold", thresholdStr); err != nil {
		return nil, err
	}
	if policy.Coverage, err = parseDecimal("coverage", coverageStr); err != nil {
		return nil, err
	}
	if policy.Premium, err = parseDecimal("premium", premiumStr); err != nil {
		return nil, err
	}
	if policy.CurrentValue, err = parseDecimal("current_value", currentValueStr); err != nil {
		return nil, err
	}
	policy.TxHash = txHash.String

	return &policy, nil
}

func (s *Service) CreatePolicy(ctx context.Context, params store.CreatePolicyParams) (*models.Policy, error) {
	zap.L().Info("Creating policy",
		zap.String("wallet", params.WalletAddress),
		zap.String("location", params.Location),
		zap.String("event_type", string(params.EventType)),
		zap.String("threshold", params.Threshold.String()),
		zap.String("coverage", params.Coverage.String()))

	result, err := s.db.ExecContext(ctx, queryInsertPolicy,
		params.WalletAddress, params.Location, string(params.EventType),
		params.Threshold.String(), params.Coverage.String(), params.Premium.String(),
		params.Duration, params.StartDate, params.EndDate,
		string(params.Status), params.CurrentValue.String(), params.TxHash)
	if err != nil {
		zap.L().Error("Failed to insert policy", zap.Error(err))
		return nil, fmt.Errorf("unable to insert policy: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("unable to get policy id: %w", err)
	}

	return s.GetPolicy(ctx, id)
}

func (s *Service) GetPolicy(ctx context.Context, id int64) (*models.Policy, error) {
	zap.L().Debug("Querying policy by id", zap.Int64("policy_id", id))

	policy, err := scanPolicy(s.db.QueryRowContext(ctx, queryGetPolicyById, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", store.ErrPolicyNotFound, id)
		}
		zap.L().Error("Failed to query policy", zap.Int64("policy_id", id), zap.Error(err))
		return nil, fmt.Errorf("unable to query policy: %w", err)
	}

	return policy, nil
}

func (s *Service) GetPoliciesByWallet(ctx context.Context, walletAddress string) ([]models.Policy, error) {
	zap.L().Debug("Querying policies by wallet", zap.String("wallet", walletAddress))

	rows, err := s.db.QueryContext(ctx, queryGetPoliciesByWallet, walletAddress)
	if err != nil {
		zap.L().Error("Failed to query policies", zap.String("wallet", walletAddress), zap.Error(err))
		return nil, fmt.Errorf("unable to query policies: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var policies []models.Policy
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("unable to scan policy row: %w", err)
		}
		policies = append(policies, *policy)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during policy row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating policy rows: %w", err)
	}

	return policies, nil
}

func (s *Service) UpdatePolicy(ctx context.Context, id int64, patch store.PolicyPatch) (*models.Policy, error) {
	policy, err := s.GetPolicy(ctx, id)
	if err != nil {
		return nil, err
	}

	status := policy.Status
	if patch.Status != nil {
		status = *patch.Status
	}
	currentValue := policy.CurrentValue
	if patch.CurrentValue != nil {
		currentValue = *patch.CurrentValue
	}
	txHash := policy.TxHash
	if patch.TxHash != nil {
		txHash = *patch.TxHash
	}

	_, err = s.db.ExecContext(ctx, queryUpdatePolicy,
		string(status), currentValue.String(), txHash, id)
	if err != nil {
		zap.L().Error("Failed to update policy", zap.Int64("policy_id", id), zap.Error(err))
		return nil, fmt.Errorf("unable to update policy: %w", err)
	}

	return s.GetPolicy(ctx, id)
}

// TransitionPolicyStatus atomically moves a policy between lifecycle states.
// The UPDATE re-checks the expected status, so a concurrent transition loses
// the race and gets ErrStateConflict instead of double-applying.
func (s *Service) TransitionPolicyStatus(ctx context.Context, id int64, from, to models.PolicyStatus, patch store.PolicyPatch) (*models.Policy, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	policy, err := scanPolicy(tx.QueryRowContext(ctx, queryGetPolicyById, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", store.ErrPolicyNotFound, id)
		}
		return nil, fmt.Errorf("unable to query policy: %w", err)
	}

	if policy.Status != from {
		return nil, fmt.Errorf("%w: policy %d is %s, expected %s", store.ErrStateConflict, id, policy.Status, from)
	}

	currentValue := policy.CurrentValue
	if patch.CurrentValue != nil {
		currentValue = *patch.CurrentValue
	}
	txHash := policy.TxHash
	if patch.TxHash != nil {
		txHash = *patch.TxHash
	}

	result, err := tx.ExecContext(ctx, queryTransitionPolicyStatus,
		string(to), currentValue.String(), txHash, id, string(from))
	if err != nil {
		return nil, fmt.Errorf("unable to transition policy status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("%w: policy %d left %s concurrently", store.ErrStateConflict, id, from)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Policy status transitioned",
		zap.Int64("policy_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)))

	return s.GetPolicy(ctx, id)
}

func (s *Service) ExpirePolicies(ctx context.Context, asOf time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, queryExpirePolicies, asOf)
	if err != nil {
		zap.L().Error("Failed to expire policies", zap.Error(err))
		return 0, fmt.Errorf("unable to expire policies: %w", err)
	}

	expired, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	if expired > 0 {
		zap.L().Info("Policies expired", zap.Int64("count", expired))
	}
	return expired, nil
}
