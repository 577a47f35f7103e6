package compliance

import "fmt"

// NotFoundError signals that a referenced worker or business does not exist.
// A pair with zero history is not an error; only a missing entity is.
type NotFoundError struct {
	Resource string // "worker" or "business"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// DataUnavailableError signals that an upstream fetch failed.
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
