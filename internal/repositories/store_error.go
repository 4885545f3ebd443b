package repositories

import "fmt"

// Cause classifies a store failure without exposing driver detail.
type Cause string

const (
	// CauseConflict means the store's uniqueness constraint rejected a write.
	CauseConflict Cause = "conflict"
	// CauseConnectivity covers connection failures, timeouts, and every
	// other store-side error.
	CauseConnectivity Cause = "connectivity"
)

// StoreError is the single error type the store repositories return.
// Callers branch on Cause and never see driver-specific error types.
type StoreError struct {
	Cause Cause
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error (%s): %v", e.Cause, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
