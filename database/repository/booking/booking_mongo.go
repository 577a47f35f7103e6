package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"kerjalink/database"
	"kerjalink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB. It also holds
// handles to the compliance and job collections for the transactional accept.
type MongoBookingRepo struct {
	coll           *mongo.Collection
	complianceColl *mongo.Collection
	jobColl        *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	repo := &MongoBookingRepo{
		coll:           db.Collection("bookings"),
		complianceColl: db.Collection("compliance_records"),
		jobColl:        db.Collection("jobs"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "worker_id", Value: 1}, {Key: "scheduled_start", Value: 1}}},
		{Keys: bson.D{{Key: "business_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "job_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID. Returns (nil, nil) when the
// booking does not exist.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// ListByWorker retrieves all bookings for a worker, most recent first.
func (r *MongoBookingRepo) ListByWorker(workerID string) ([]models.Booking, error) {
	return r.list(bson.M{"worker_id": workerID})
}

// ListByJob retrieves all bookings attached to a job post.
func (r *MongoBookingRepo) ListByJob(jobID string) ([]models.Booking, error) {
	return r.list(bson.M{"job_id": jobID})
}

// ListByBusiness retrieves bookings for a business, optionally filtered by status.
func (r *MongoBookingRepo) ListByBusiness(businessID, status string) ([]models.Booking, error) {
	filter := bson.M{"business_id": businessID}
	if status != "" {
		filter["status"] = status
	}
	return r.list(filter)
}

func (r *MongoBookingRepo) list(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "scheduled_start", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus moves a booking between statuses. The from-status is part of
// the filter so concurrent transitions cannot double-apply.
func (r *MongoBookingRepo) UpdateStatus(id, from, to, reason string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"status": to, "updated_at": time.Now()}
	if reason != "" {
		set["cancel_reason"] = reason
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "status": from}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update status for booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking %s is not in status %q", id, from)
	}
	return nil
}

// SetCheckIn stamps the actual start time and moves the booking to in_progress.
func (r *MongoBookingRepo) SetCheckIn(id string, at time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.BookingStatusAccepted}
	update := bson.M{"$set": bson.M{
		"status":       models.BookingStatusInProgress,
		"actual_start": at,
		"updated_at":   time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to check in booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking %s is not in status %q", id, models.BookingStatusAccepted)
	}
	return nil
}

// SetCheckOut stamps the actual end time and completes the booking.
func (r *MongoBookingRepo) SetCheckOut(id string, at time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.BookingStatusInProgress}
	update := bson.M{"$set": bson.M{
		"status":     models.BookingStatusCompleted,
		"actual_end": at,
		"updated_at": time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to check out booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking %s is not in status %q", id, models.BookingStatusInProgress)
	}
	return nil
}

// SetRating stamps a review rating onto a completed booking.
func (r *MongoBookingRepo) SetRating(id string, rating int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.BookingStatusCompleted}
	update := bson.M{"$set": bson.M{"rating": rating, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set rating for booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking %s is not completed", id)
	}
	return nil
}

// CountWorkedDays counts accepted/completed bookings for a worker-business
// pair scheduled inside [from, to).
func (r *MongoBookingRepo) CountWorkedDays(workerID, businessID string, from, to time.Time) (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"worker_id":   workerID,
		"business_id": businessID,
		"status":      bson.M{"$in": bson.A{models.BookingStatusAccepted, models.BookingStatusCompleted}},
		"scheduled_start": bson.M{
			"$gte": from,
			"$lt":  to,
		},
	}

	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count worked days: %w", err)
	}
	return int(count), nil
}
