package wallet

import (
	"context"
	"errors"
	"fmt"

	walletRepo "kerjalink/database/repository/wallet"
	"kerjalink/models"

	"github.com/google/uuid"
)

// InsufficientBalanceError signals a withdrawal larger than the balance.
type InsufficientBalanceError struct {
	WorkerID string
	Amount   float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("worker %s has insufficient balance for withdrawal of %.2f", e.WorkerID, e.Amount)
}

// Service exposes the worker wallet and its ledger.
type Service interface {
	GetWallet(ctx context.Context, workerID string) (*models.Wallet, error)
	GetLedger(ctx context.Context, workerID string, limit int64) ([]models.WalletTransaction, error)
	RequestWithdrawal(ctx context.Context, workerID string, amount float64, reference string) (*models.WalletTransaction, error)
}

// DefaultWalletService implements Service.
type DefaultWalletService struct {
	WalletRepo walletRepo.WalletRepository
}

// GetWallet returns the worker's wallet; a worker with no earnings yet gets
// a zero balance.
func (s *DefaultWalletService) GetWallet(ctx context.Context, workerID string) (*models.Wallet, error) {
	return s.WalletRepo.GetByWorker(workerID)
}

// GetLedger returns the most recent ledger entries.
func (s *DefaultWalletService) GetLedger(ctx context.Context, workerID string, limit int64) ([]models.WalletTransaction, error) {
	return s.WalletRepo.ListTransactions(workerID, limit)
}

// RequestWithdrawal deducts from the wallet and records a ledger entry.
func (s *DefaultWalletService) RequestWithdrawal(ctx context.Context, workerID string, amount float64, reference string) (*models.WalletTransaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("withdrawal amount must be positive")
	}

	txn := &models.WalletTransaction{
		ID:        uuid.New().String(),
		WorkerID:  workerID,
		Type:      models.WalletTxnWithdrawal,
		Amount:    amount,
		Reference: reference,
	}
	if err := s.WalletRepo.Withdraw(txn); err != nil {
		if errors.Is(err, walletRepo.ErrInsufficientBalance) {
			return nil, &InsufficientBalanceError{WorkerID: workerID, Amount: amount}
		}
		return nil, err
	}
	return txn, nil
}
