package domain

import (
	"errors"
	"fmt"
)

var (
	// Validation errors
	ErrInvalidAmount           = errors.New("amount must be non-negative")
	ErrInvalidDiscount         = errors.New("discount must be between 0 and 100")
	ErrInvalidDirection        = errors.New("invalid movement direction")
	ErrUnsupportedCurrencyPair = errors.New("unsupported currency pair")
	ErrInvalidAccountName      = errors.New("invalid account name")
	ErrSameAccount             = errors.New("cannot pair a movement with the same account")

	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountInactive = errors.New("account is inactive")

	// Movement errors
	ErrMovementNotFound   = errors.New("movement not found")
	ErrMovementConfirmed  = errors.New("movement is already confirmed")
	ErrMovementNotPending = errors.New("movement is not pending")
	ErrNotInflow          = errors.New("only inflow movements can be confirmed")
)

// CompoundError reports a failed inflow leg of a compound creation after the
// outflow leg was persisted. RolledBack tells the caller whether the
// compensating delete succeeded: when it did, nothing happened; when it did
// not, OrphanMovementID names the outflow that may remain persisted and needs
// manual reconciliation.
type CompoundError struct {
	Cause            error
	RolledBack       bool
	OrphanMovementID string
}

func (e *CompoundError) Error() string {
	if e.RolledBack {
		return fmt.Sprintf("compound movement failed, outflow rolled back: %v", e.Cause)
	}
	return fmt.Sprintf("compound movement failed and rollback failed, orphan outflow %s may remain: %v", e.OrphanMovementID, e.Cause)
}

func (e *CompoundError) Unwrap() error {
	return e.Cause
}
