package chain

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by every client operation when the chain
// connection parameters are incomplete. Absence of configuration is a valid
// local-only mode, not a failure; callers branch on IsConfigured rather than
// treating this as an exception path.
var ErrNotConfigured = errors.New("chain client is not configured")

// ExecutionError indicates the transaction was mined but the contract
// reverted or otherwise failed.
type ExecutionError struct {
	TxHash string
	Err    error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("chain execution failed for %s: %v", e.TxHash, e.Err)
	}
	return fmt.Sprintf("chain execution failed for %s", e.TxHash)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// TimeoutError indicates no receipt arrived within the wait bound. The
// transaction may still mine later; it is logged distinctly from execution
// failures so an operator can tell "failed" from "unknown, possibly pending".
type TimeoutError struct {
	TxHash string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for receipt of %s", e.TxHash)
}

// EventNotFoundError indicates a mined transaction did not emit the expected
// event. This means an ABI mismatch or unexpected contract behavior; any id
// derived from the receipt would be wrong, so it is never silently ignored.
type EventNotFoundError struct {
	Event  string
	TxHash string
}

func (e *EventNotFoundError) Error() string {
	return fmt.Sprintf("event %s not found in receipt of %s", e.Event, e.TxHash)
}
