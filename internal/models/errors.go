package models

import "errors"

// Error kinds surfaced to the web and RPC layers. Callers match them with
// errors.Is; the wrapped message carries the detail.
var (
	// ErrValidation means a required field is missing or a value is out of range.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means a referenced member, bill or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDivisionUndefined means an allocation was attempted with zero members.
	ErrDivisionUndefined = errors.New("cannot divide among zero members")

	// ErrPersistence means a storage read or write failed.
	ErrPersistence = errors.New("storage failure")

	// ErrLogPersistence means the event log append failed. The ledger change
	// it belonged to was rolled back with it.
	ErrLogPersistence = errors.New("event log failure")

	// ErrAuth means bad credentials or a missing or invalid session.
	ErrAuth = errors.New("authentication failed")
)
