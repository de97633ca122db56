package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"weather-insurance-go/internal/models"
	"weather-insurance-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppendTransaction records a money-relevant event. The log is append-only:
// there is no update or delete path for transactions.
func (s *Service) AppendTransaction(ctx context.Context, params store.AppendTransactionParams) (*models.Transaction, error) {
	zap.L().Info("Appending transaction",
		zap.String("wallet", params.WalletAddress),
		zap.String("type", params.Type),
		zap.String("amount", params.Amount.String()),
		zap.Int64("policy_id", params.PolicyId))

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

	var details any
	if len(tx.Details) > 0 {
		details = string(tx.Details)
	}

	_, err := s.db.ExecContext(ctx, queryInsertTransaction,
		tx.Id, tx.WalletAddress, tx.Type, tx.Amount.String(), tx.TxHash,
		tx.Timestamp, tx.PolicyId, details)
	if err != nil {
		zap.L().Error("Failed to insert transaction", zap.Error(err))
		return nil, fmt.Errorf("unable to insert transaction: %w", err)
	}

	return &tx, nil
}

// GetTransactionsByWallet returns the wallet's money events, most recent
// first. Ordering happens at query time, not at insertion time.
func (s *Service) GetTransactionsByWallet(ctx context.Context, walletAddress string) ([]models.Transaction, error) {
	zap.L().Debug("Querying transactions by wallet", zap.String("wallet", walletAddress))

	rows, err := s.db.QueryContext(ctx, queryGetTransactionsByWallet, walletAddress)
	if err != nil {
		zap.L().Error("Failed to query transactions", zap.String("wallet", walletAddress), zap.Error(err))
		return nil, fmt.Errorf("unable to query transactions: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var amountStr string
		var policyId sql.NullInt64
		var details sql.NullString

		err := rows.Scan(&tx.Id, &tx.WalletAddress, &tx.Type, &amountStr,
			&tx.TxHash, &tx.Timestamp, &policyId, &details)
		if err != nil {
			return nil, fmt.Errorf("unable to scan transaction row: %w", err)
		}

		if tx.Amount, err = parseDecimal("amount", amountStr); err != nil {
			return nil, err
		}
		tx.PolicyId = policyId.Int64
		if details.Valid {
			tx.Details = []byte(details.String)
		}

		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during transaction row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return transactions, nil
}
