package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/surcofin/cajaflow/internal/domain"
)

// MovementUseCase handles the lifecycle of single cash movements.
type MovementUseCase struct {
	movementRepo MovementRepository
	accountRepo  AccountRepository
	rates        RateSource
	idGen        IDGenerator
}

// NewMovementUseCase creates a new MovementUseCase.
func NewMovementUseCase(
	movementRepo MovementRepository,
	accountRepo AccountRepository,
	rates RateSource,
	idGen IDGenerator,
) *MovementUseCase {
	return &MovementUseCase{
		movementRepo: movementRepo,
		accountRepo:  accountRepo,
		rates:        rates,
		idGen:        idGen,
	}
}

// CreateMovementInput represents input for creating a movement. RateOverride
// is a per-call manual rate: it is never stored, so it cannot leak across
// currency changes.
type CreateMovementInput struct {
	AccountID       string
	Direction       domain.Direction
	PaymentCurrency domain.Currency
	RawAmount       decimal.Decimal
	DiscountPercent decimal.Decimal
	RateOverride    *decimal.Decimal
	EnteredBy       string
}

// CreateMovement converts and persists a single movement in pending state.
func (uc *MovementUseCase) CreateMovement(ctx context.Context, input CreateMovementInput) (*domain.Movement, error) {
	movement, err := uc.buildMovement(ctx, input, nil)
	if err != nil {
		return nil, err
	}

	if err := uc.movementRepo.Save(ctx, movement); err != nil {
		return nil, err
	}

	return movement, nil
}

// buildMovement resolves the account, rate and conversion for a movement but
// does not persist it. The compound coordinator builds both legs up front so
// conversion errors surface before anything is written.
func (uc *MovementUseCase) buildMovement(ctx context.Context, input CreateMovementInput, correlationID *string) (*domain.Movement, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, domain.ErrAccountInactive
	}

	now := time.Now().UTC()

	movement := &domain.Movement{
		ID:              uc.idGen.Generate(),
		AccountID:       account.ID,
		Direction:       input.Direction,
		PaymentCurrency: input.PaymentCurrency,
		LedgerCurrency:  account.LedgerCurrency,
		RawAmount:       input.RawAmount,
		DiscountPercent: input.DiscountPercent,
		CorrelationID:   correlationID,
		State:           domain.MovementStatePending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := movement.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := uc.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	rate, err := domain.ResolveRate(input.PaymentCurrency, account.LedgerCurrency, input.RateOverride, snapshot)
	if err != nil {
		return nil, err
	}

	conv, err := domain.Convert(domain.ConvertInput{
		RawAmount:       input.RawAmount,
		Direction:       input.Direction,
		PaymentCurrency: input.PaymentCurrency,
		LedgerCurrency:  account.LedgerCurrency,
		Rate:            rate,
		Snapshot:        snapshot,
		DiscountPercent: input.DiscountPercent,
	})
	if err != nil {
		return nil, err
	}

	movement.Subtotal = conv.Subtotal
	movement.Total = conv.Total
	movement.RateApplied = rate.Rate
	movement.RateFallback = rate.Fallback

	return movement, nil
}

// currentSnapshot fetches the rate snapshot. A source failure degrades to an
// empty snapshot, which resolution reports through the fallback flag; absent
// market data is not a reason to refuse a movement.
func (uc *MovementUseCase) currentSnapshot(ctx context.Context) (domain.RateSnapshot, error) {
	snapshot, err := uc.rates.Snapshot(ctx)
	if err != nil {
		return domain.RateSnapshot{}, nil
	}
	return snapshot, nil
}

// UpdateMovementInput represents a pre-confirmation edit. Nil fields are left
// untouched. When PaymentCurrency changes, a previously meaningful override
// no longer applies; pass RateOverride together with the new currency if one
// is wanted.
type UpdateMovementInput struct {
	RawAmount       *decimal.Decimal
	DiscountPercent *decimal.Decimal
	PaymentCurrency *domain.Currency
	RateOverride    *decimal.Decimal
	EditedBy        string
}

// UpdateMovement edits a pending movement, reconverts it and appends a
// field-change record per modified field.
func (uc *MovementUseCase) UpdateMovement(ctx context.Context, id string, input UpdateMovementInput) (*domain.Movement, error) {
	movement, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := movement.Editable(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var changes []domain.FieldChange
	record := func(field, oldValue, newValue string) {
		changes = append(changes, domain.FieldChange{
			Field:     field,
			OldValue:  oldValue,
			NewValue:  newValue,
			ChangedBy: input.EditedBy,
			ChangedAt: now,
		})
	}

	if input.RawAmount != nil && !input.RawAmount.Equal(movement.RawAmount) {
		record("raw_amount", movement.RawAmount.String(), input.RawAmount.String())
		movement.RawAmount = *input.RawAmount
	}
	if input.DiscountPercent != nil && !input.DiscountPercent.Equal(movement.DiscountPercent) {
		record("discount_percent", movement.DiscountPercent.String(), input.DiscountPercent.String())
		movement.DiscountPercent = *input.DiscountPercent
	}
	if input.PaymentCurrency != nil && *input.PaymentCurrency != movement.PaymentCurrency {
		record("payment_currency", string(movement.PaymentCurrency), string(*input.PaymentCurrency))
		movement.PaymentCurrency = *input.PaymentCurrency
	}

	if err := movement.Validate(); err != nil {
		return nil, err
	}

	if len(changes) == 0 && input.RateOverride == nil {
		return movement, nil
	}

	snapshot, err := uc.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	rate, err := domain.ResolveRate(movement.PaymentCurrency, movement.LedgerCurrency, input.RateOverride, snapshot)
	if err != nil {
		return nil, err
	}

	conv, err := domain.Convert(domain.ConvertInput{
		RawAmount:       movement.RawAmount,
		Direction:       movement.Direction,
		PaymentCurrency: movement.PaymentCurrency,
		LedgerCurrency:  movement.LedgerCurrency,
		Rate:            rate,
		Snapshot:        snapshot,
		DiscountPercent: movement.DiscountPercent,
	})
	if err != nil {
		return nil, err
	}

	movement.Subtotal = conv.Subtotal
	movement.Total = conv.Total
	movement.RateApplied = rate.Rate
	movement.RateFallback = rate.Fallback
	movement.UpdatedAt = now

	if err := uc.movementRepo.Update(ctx, movement); err != nil {
		return nil, err
	}

	for _, change := range changes {
		if err := uc.movementRepo.AppendHistory(ctx, movement.ID, change); err != nil {
			return nil, err
		}
		movement.History = append(movement.History, change)
	}

	return movement, nil
}

// GetMovement retrieves a movement by ID.
func (uc *MovementUseCase) GetMovement(ctx context.Context, id string) (*domain.Movement, error) {
	return uc.movementRepo.GetByID(ctx, id)
}

// ListMovementsByAccountInput represents input for listing movements.
type ListMovementsByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListMovementsByAccount lists movements for a cash account.
func (uc *MovementUseCase) ListMovementsByAccount(ctx context.Context, input ListMovementsByAccountInput) ([]*domain.Movement, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.movementRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// ListPendingInflows lists the pending inflows awaiting conciliation.
func (uc *MovementUseCase) ListPendingInflows(ctx context.Context, limit, offset int) ([]*domain.Movement, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.movementRepo.ListPending(ctx, domain.DirectionInflow, limit, offset)
}
