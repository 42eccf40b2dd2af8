package domain

import "errors"

// Sentinel error kinds for the ledger and lifecycle operations. Services wrap
// these with context via fmt.Errorf("...: %w", Err...) and callers match with
// errors.Is. The HTTP layer maps each kind to a status code.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidState        = errors.New("invalid state")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrCapacityExceeded    = errors.New("capacity exceeded")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrAlreadyProcessed    = errors.New("already processed")
)
