package reliability

import "fmt"

// NotFoundError signals that the referenced worker does not exist.
type NotFoundError struct {
	WorkerID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("worker %s not found", e.WorkerID)
}

// DataUnavailableError signals that an upstream fetch of bookings or reviews
// failed. The scorer never substitutes fabricated history; the caller decides
// whether to retry or surface the failure.
type DataUnavailableError struct {
	Op  string
	Err error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}
