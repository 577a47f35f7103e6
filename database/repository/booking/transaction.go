package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kerjalink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func mongoUpsert() *options.UpdateOptions {
	return options.Update().SetUpsert(true)
}

// Sentinel errors returned by AcceptWithinDayLimit.
var (
	// ErrDayLimitReached means the (worker, business, month) counter is
	// already at the statutory limit.
	ErrDayLimitReached = errors.New("monthly day limit reached for worker-business pair")
	// ErrNotPending means the booking left the pending status before the
	// transaction committed.
	ErrNotPending = errors.New("booking is no longer pending")
	// ErrJobFull means the job post ran out of slots.
	ErrJobFull = errors.New("job has no remaining slots")
)

// AcceptWithinDayLimit accepts a pending booking under the monthly day limit.
//
// The day-limit check and the acceptance write happen inside one Mongo
// transaction, with the counter increment guarded by a days_worked < limit
// filter. Two concurrent accepts near the limit therefore cannot both pass:
// the second increment finds no matching document and the whole transaction
// aborts.
func (r *MongoBookingRepo) AcceptWithinDayLimit(ctx context.Context, booking *models.Booking, codeHash, month string, limit int) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		// Atomic increment-and-check on the compliance counter. The upsert
		// creates the counter for a pair with no history this month; when a
		// counter exists at the limit, the filter misses and the upsert
		// collides with the unique (worker, business, month) index.
		counterFilter := bson.M{
			"worker_id":   booking.WorkerID,
			"business_id": booking.BusinessID,
			"month":       month,
			"days_worked": bson.M{"$lt": limit},
		}
		counterUpdate := bson.M{
			"$inc": bson.M{"days_worked": 1},
			"$set": bson.M{"updated_at": time.Now()},
		}
		opts := mongoUpsert()
		if _, err := r.complianceColl.UpdateOne(sc, counterFilter, counterUpdate, opts); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDayLimitReached
			}
			return fmt.Errorf("compliance counter increment failed: %w", err)
		}

		// Flip the booking to accepted, guarded on pending.
		bookingFilter := bson.M{"id": booking.ID, "status": models.BookingStatusPending}
		bookingUpdate := bson.M{"$set": bson.M{
			"status":               models.BookingStatusAccepted,
			"attendance_code_hash": codeHash,
			"updated_at":           time.Now(),
		}}
		res, err := r.coll.UpdateOne(sc, bookingFilter, bookingUpdate)
		if err != nil {
			return fmt.Errorf("booking accept update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotPending
		}

		// Claim a slot on the job post.
		jobFilter := bson.M{
			"id":     booking.JobID,
			"status": models.JobStatusOpen,
			"$expr":  bson.M{"$lt": bson.A{"$filled", "$slots"}},
		}
		jobUpdate := bson.M{
			"$inc": bson.M{"filled": 1},
			"$set": bson.M{"updated_at": time.Now()},
		}
		jres, err := r.jobColl.UpdateOne(sc, jobFilter, jobUpdate)
		if err != nil {
			return fmt.Errorf("job slot claim failed: %w", err)
		}
		if jres.MatchedCount == 0 {
			return ErrJobFull
		}

		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrDayLimitReached) || errors.Is(err, ErrNotPending) || errors.Is(err, ErrJobFull) {
			return err
		}
		return fmt.Errorf("booking accept transaction failed: %w", err)
	}

	return nil
}
