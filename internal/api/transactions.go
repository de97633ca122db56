package api

import (
	"context"
	"fmt"

	"weather-insurance-go/internal/models"
	"weather-insurance-go/internal/store"

	"go.uber.org/zap"
)

// ListTransactions returns the wallet's money events, most recent first.
func (s *InsuranceService) ListTransactions(ctx context.Context, walletAddress string) ([]models.Transaction, error) {
	if walletAddress == "" {
		return nil, fmt.Errorf("%w: wallet address is required", ErrValidation)
	}

	transactions, err := s.store.GetTransactionsByWallet(ctx, walletAddress)
	if err != nil {
		zap.L().Error("Failed to list transactions", zap.String("wallet", walletAddress), zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return transactions, nil
}

// CreateTransaction appends an arbitrary money-relevant record. The
// lifecycle manager writes its own policy_created and claim_paid events;
// this path exists for records originating outside the lifecycle, such as a
// ledger-backed purchase flow run by the frontend.
func (s *InsuranceService) CreateTransaction(ctx context.Context, params store.AppendTransactionParams) (*models.Transaction, error) {
	if params.WalletAddress == "" {
		return nil, fmt.Errorf("%w: wallet address is required", ErrValidation)
	}
	if params.Type == "" {
		return nil, fmt.Errorf("%w: transaction type is required", ErrValidation)
	}

	return s.store.AppendTransaction(ctx, params)
}
