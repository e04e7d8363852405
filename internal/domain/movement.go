package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction of a cash movement. It fixes the arithmetic sign applied
// uniformly to every field of Subtotal and Total.
type Direction string

const (
	DirectionInflow  Direction = "inflow"
	DirectionOutflow Direction = "outflow"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionInflow || d == DirectionOutflow
}

// Sign returns +1 for inflows and -1 for outflows.
func (d Direction) Sign() int64 {
	if d == DirectionOutflow {
		return -1
	}
	return 1
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == DirectionOutflow {
		return DirectionInflow
	}
	return DirectionOutflow
}

// MovementState is the lifecycle state of a movement.
type MovementState string

const (
	MovementStatePending   MovementState = "pending"
	MovementStateConfirmed MovementState = "confirmed"
)

// FieldChange is one record of the movement's edit history.
type FieldChange struct {
	Field     string
	OldValue  string
	NewValue  string
	ChangedBy string
	ChangedAt time.Time
}

// Movement is a single cash movement on one account, carried simultaneously
// in the three currency bases. RawAmount is the magnitude as entered, always
// non-negative; Direction supplies the sign.
type Movement struct {
	ID              string
	AccountID       string
	Direction       Direction
	PaymentCurrency Currency
	LedgerCurrency  LedgerCurrency
	RawAmount       decimal.Decimal
	DiscountPercent decimal.Decimal
	Subtotal        MultiCurrencyAmount
	Total           MultiCurrencyAmount
	RateApplied     decimal.Decimal
	RateFallback    bool
	CorrelationID   *string
	State           MovementState
	History         []FieldChange
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the movement's entered fields before any conversion or
// persistence attempt.
func (m *Movement) Validate() error {
	if !m.Direction.Valid() {
		return ErrInvalidDirection
	}
	if !m.PaymentCurrency.Valid() || !m.LedgerCurrency.Valid() {
		return ErrUnsupportedCurrencyPair
	}
	if m.RawAmount.IsNegative() {
		return ErrInvalidAmount
	}
	if m.DiscountPercent.IsNegative() || m.DiscountPercent.GreaterThan(hundred) {
		return ErrInvalidDiscount
	}
	return nil
}

// Confirmable checks eligibility for the PENDING to CONFIRMED transition.
// Only pending inflows are confirmed during conciliation.
func (m *Movement) Confirmable() error {
	if m.State == MovementStateConfirmed {
		return ErrMovementConfirmed
	}
	if m.State != MovementStatePending {
		return ErrMovementNotPending
	}
	if m.Direction != DirectionInflow {
		return ErrNotInflow
	}
	return nil
}

// Editable reports whether the movement still accepts field edits.
func (m *Movement) Editable() error {
	if m.State == MovementStateConfirmed {
		return ErrMovementConfirmed
	}
	return nil
}
