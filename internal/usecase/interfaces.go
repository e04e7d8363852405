package usecase

import (
	"context"
	"time"

	"github.com/surcofin/cajaflow/internal/domain"
)

// MovementRepository defines data access for cash movements.
type MovementRepository interface {
	Save(ctx context.Context, movement *domain.Movement) error
	GetByID(ctx context.Context, id string) (*domain.Movement, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Movement, error)
	ListPending(ctx context.Context, direction domain.Direction, limit, offset int) ([]*domain.Movement, error)
	Update(ctx context.Context, movement *domain.Movement) error
	UpdateState(ctx context.Context, id string, state domain.MovementState, updatedAt time.Time) error
	AppendHistory(ctx context.Context, id string, change domain.FieldChange) error
	Delete(ctx context.Context, id string) error
}

// AccountRepository defines data access for the cash-account directory.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.CashAccount) error
	GetByID(ctx context.Context, id string) (*domain.CashAccount, error)
	List(ctx context.Context, limit, offset int) ([]*domain.CashAccount, error)
	EnabledLedgerCurrencies(ctx context.Context, counterpartyID string) ([]domain.LedgerCurrency, error)
}

// RateSource supplies the current exchange-rate snapshot. The engine never
// fetches rates itself beyond this collaborator.
type RateSource interface {
	Snapshot(ctx context.Context) (domain.RateSnapshot, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
