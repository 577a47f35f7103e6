package walletRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kerjalink/database"
	"kerjalink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInsufficientBalance means a withdrawal exceeded the wallet balance.
var ErrInsufficientBalance = errors.New("insufficient wallet balance")

// WalletRepository defines data access methods for worker wallets and their
// transaction ledger.
type WalletRepository interface {
	GetByWorker(workerID string) (*models.Wallet, error)
	ListTransactions(workerID string, limit int64) ([]models.WalletTransaction, error)

	// Credit adds shift pay to the wallet and appends a ledger entry.
	Credit(txn *models.WalletTransaction) error

	// Withdraw deducts from the wallet, guarded on balance >= amount, and
	// appends a ledger entry. Returns ErrInsufficientBalance on shortfall.
	Withdraw(txn *models.WalletTransaction) error
}

// MongoWalletRepo implements WalletRepository using MongoDB.
type MongoWalletRepo struct {
	coll       *mongo.Collection
	ledgerColl *mongo.Collection
}

// NewMongoWalletRepo creates a new instance of WalletRepository using MongoDB.
func NewMongoWalletRepo() WalletRepository {
	db := database.DB()
	repo := &MongoWalletRepo{
		coll:       db.Collection("wallets"),
		ledgerColl: db.Collection("wallet_transactions"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoWalletRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "worker_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create wallet indexes: %w", err)
	}

	if _, err := r.ledgerColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "worker_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("failed to create ledger indexes: %w", err)
	}
	return nil
}

// GetByWorker retrieves a worker's wallet. A worker with no wallet yet gets
// a zero-balance view rather than an error.
func (r *MongoWalletRepo) GetByWorker(workerID string) (*models.Wallet, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var wallet models.Wallet
	if err := r.coll.FindOne(ctx, bson.M{"worker_id": workerID}).Decode(&wallet); err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.Wallet{WorkerID: workerID, Balance: 0}, nil
		}
		return nil, fmt.Errorf("failed to fetch wallet for worker %s: %w", workerID, err)
	}
	return &wallet, nil
}

// ListTransactions retrieves the most recent ledger entries for a worker.
func (r *MongoWalletRepo) ListTransactions(workerID string, limit int64) ([]models.WalletTransaction, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.ledgerColl.Find(ctx, bson.M{"worker_id": workerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve wallet transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txns []models.WalletTransaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, fmt.Errorf("failed to decode wallet transactions: %w", err)
	}
	return txns, nil
}

// Credit upserts the wallet balance and appends the ledger entry.
func (r *MongoWalletRepo) Credit(txn *models.WalletTransaction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	txn.CreatedAt = time.Now()

	update := bson.M{
		"$inc": bson.M{"balance": txn.Amount},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"worker_id": txn.WorkerID}, update, opts); err != nil {
		return fmt.Errorf("failed to credit wallet for worker %s: %w", txn.WorkerID, err)
	}

	if _, err := r.ledgerColl.InsertOne(ctx, txn); err != nil {
		return fmt.Errorf("failed to append wallet transaction: %w", err)
	}
	return nil
}

// Withdraw deducts from the wallet with an atomic balance guard.
func (r *MongoWalletRepo) Withdraw(txn *models.WalletTransaction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	txn.CreatedAt = time.Now()

	filter := bson.M{
		"worker_id": txn.WorkerID,
		"balance":   bson.M{"$gte": txn.Amount},
	}
	update := bson.M{
		"$inc": bson.M{"balance": -txn.Amount},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to withdraw from wallet for worker %s: %w", txn.WorkerID, err)
	}
	if result.MatchedCount == 0 {
		return ErrInsufficientBalance
	}

	if _, err := r.ledgerColl.InsertOne(ctx, txn); err != nil {
		return fmt.Errorf("failed to append wallet transaction: %w", err)
	}
	return nil
}
