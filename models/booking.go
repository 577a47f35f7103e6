package models

import "time"

// Booking lifecycle statuses.
const (
	BookingStatusPending    = "pending"
	BookingStatusAccepted   = "accepted"
	BookingStatusRejected   = "rejected"
	BookingStatusInProgress = "in_progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// Booking represents a worker's engagement on a job post.
type Booking struct {
	ID         string `bson:"id" json:"id"`                   // Unique booking identifier (UUID)
	JobID      string `bson:"job_id" json:"job_id"`           // Job post this booking belongs to
	WorkerID   string `bson:"worker_id" json:"worker_id"`     // Worker who applied / was booked
	BusinessID string `bson:"business_id" json:"business_id"` // Business that posted the job
	Status     string `bson:"status" json:"status"`           // One of the BookingStatus* constants

	ScheduledStart time.Time  `bson:"scheduled_start" json:"scheduled_start"`
	ScheduledEnd   time.Time  `bson:"scheduled_end" json:"scheduled_end"`
	ActualStart    *time.Time `bson:"actual_start,omitempty" json:"actual_start,omitempty"` // Set at check-in
	ActualEnd      *time.Time `bson:"actual_end,omitempty" json:"actual_end,omitempty"`     // Set at check-out

	PayAmount float64 `bson:"pay_amount" json:"pay_amount"` // Agreed pay for the shift (IDR)
	Rating    *int    `bson:"rating,omitempty" json:"rating,omitempty"` // 1-5, stamped when the business reviews

	// AttendanceCodeHash is the bcrypt hash of the check-in code issued at
	// acceptance. The plaintext code is returned once and never stored.
	AttendanceCodeHash string `bson:"attendance_code_hash,omitempty" json:"-"`

	CancelReason string    `bson:"cancel_reason,omitempty" json:"cancel_reason,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// IsTerminal reports whether the booking can no longer change status.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingStatusRejected, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}
