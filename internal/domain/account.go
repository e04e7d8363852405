package domain

import (
	"strings"
	"time"
)

// CashAccount is a "caja": a cash account denominated in one of the three
// currency bases. Movements posted against it inherit its ledger currency.
type CashAccount struct {
	ID             string
	Name           string
	LedgerCurrency LedgerCurrency
	CounterpartyID string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const (
	MaxAccountNameLength = 255
	MinAccountNameLength = 1
)

// ValidateAccountName validates a cash account name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength || len(name) > MaxAccountNameLength {
		return ErrInvalidAccountName
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
