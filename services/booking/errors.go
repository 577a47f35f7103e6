package booking

import (
	"fmt"

	"kerjalink/models"
)

// NotFoundError signals that a referenced booking, job, or worker is absent.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InvalidTransitionError signals an action that does not apply to the
// booking's current status.
type InvalidTransitionError struct {
	BookingID string
	Status    string
	Action    string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s booking %s in status %q", e.Action, e.BookingID, e.Status)
}

// DayLimitError signals that acceptance was refused because the statutory
// monthly day limit is reached for the worker-business pair.
type DayLimitError struct {
	Status models.ComplianceStatus
}

func (e *DayLimitError) Error() string {
	return e.Status.Message
}

// AttendanceCodeError signals a check-in attempt with the wrong code.
type AttendanceCodeError struct {
	BookingID string
}

func (e *AttendanceCodeError) Error() string {
	return fmt.Sprintf("invalid attendance code for booking %s", e.BookingID)
}

// JobFullError signals that the job post has no remaining slots.
type JobFullError struct {
	JobID string
}

func (e *JobFullError) Error() string {
	return fmt.Sprintf("job %s has no remaining slots", e.JobID)
}
