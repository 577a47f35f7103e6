package models

import "time"

// Wallet transaction types.
const (
	WalletTxnCredit     = "credit"     // Shift pay on completion
	WalletTxnWithdrawal = "withdrawal" // Worker cash-out
)

// Wallet tracks a worker's earned balance.
type Wallet struct {
	WorkerID  string    `bson:"worker_id" json:"worker_id"`
	Balance   float64   `bson:"balance" json:"balance"` // IDR
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// WalletTransaction is one append-only ledger entry.
type WalletTransaction struct {
	ID        string    `bson:"id" json:"id"`
	WorkerID  string    `bson:"worker_id" json:"worker_id"`
	BookingID string    `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	Type      string    `bson:"type" json:"type"` // "credit" or "withdrawal"
	Amount    float64   `bson:"amount" json:"amount"`
	Reference string    `bson:"reference,omitempty" json:"reference,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
