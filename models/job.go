package models

import "time"

// Job post statuses.
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// Job represents a gig job post created by a business.
type Job struct {
	ID          string    `bson:"id" json:"id"`
	BusinessID  string    `bson:"business_id" json:"business_id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	PayAmount   float64   `bson:"pay_amount" json:"pay_amount"` // Pay per shift (IDR)
	ShiftStart  time.Time `bson:"shift_start" json:"shift_start"`
	ShiftEnd    time.Time `bson:"shift_end" json:"shift_end"`
	Slots       int       `bson:"slots" json:"slots"`   // Number of workers needed
	Filled      int       `bson:"filled" json:"filled"` // Accepted bookings so far
	Status      string    `bson:"status" json:"status"` // "open" or "closed"
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
