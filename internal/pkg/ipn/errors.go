package ipn

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured means no active webhook configuration exists. It is a
	// system state, not a notification outcome, and is never written to the
	// ledger.
	ErrNotConfigured = errors.New("IPN processing is not configured or inactive")

	// ErrInvalidSignature means verification ran and the digests did not match.
	ErrInvalidSignature = errors.New("Invalid signature")

	// ErrLogNotFound is returned by Retry for an unknown ledger id.
	ErrLogNotFound = errors.New("IPN log not found")

	// ErrNotRetryable is returned by Retry when the entry is not in a failed
	// state.
	ErrNotRetryable = errors.New("only failed notifications can be retried")
)

// ReconciliationError wraps any persistence or mapping failure during
// reconciliation with a human-readable cause.
type ReconciliationError struct {
	Cause string
	Err   error
}

func (e *ReconciliationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Cause, e.Err)
	}
	return e.Cause
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}
