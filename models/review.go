package models

import "time"

// Review is a business's rating of a worker, tied to a completed booking.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	WorkerID   string    `bson:"worker_id" json:"worker_id"`
	BusinessID string    `bson:"business_id" json:"business_id"`
	Rating     int       `bson:"rating" json:"rating"` // 1-5
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
