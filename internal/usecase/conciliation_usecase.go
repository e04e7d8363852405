package usecase

import (
	"context"
	"time"

	"github.com/surcofin/cajaflow/internal/domain"
)

// ConciliationUseCase batch-confirms pending inflows during bank
// reconciliation.
type ConciliationUseCase struct {
	movementRepo MovementRepository
}

// NewConciliationUseCase creates a new ConciliationUseCase.
func NewConciliationUseCase(movementRepo MovementRepository) *ConciliationUseCase {
	return &ConciliationUseCase{movementRepo: movementRepo}
}

// ConfirmItemFailure is a per-movement confirmation failure.
type ConfirmItemFailure struct {
	ID     string
	Reason string
}

// ConfirmResult is the outcome of a batch confirmation.
type ConfirmResult struct {
	Confirmed []string
	Failed    []ConfirmItemFailure
}

// ConfirmSelected transitions each selected movement from pending to
// confirmed. The batch is a collection of independent transitions, not a
// transaction: one item's failure never blocks or rolls back the others.
// Only pending inflows are eligible; anything else fails per item.
func (uc *ConciliationUseCase) ConfirmSelected(ctx context.Context, ids []string, actor string) *ConfirmResult {
	result := &ConfirmResult{}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		if err := uc.confirmOne(ctx, id, actor); err != nil {
			result.Failed = append(result.Failed, ConfirmItemFailure{ID: id, Reason: err.Error()})
			continue
		}

		result.Confirmed = append(result.Confirmed, id)
	}

	return result
}

func (uc *ConciliationUseCase) confirmOne(ctx context.Context, id, actor string) error {
	movement, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := movement.Confirmable(); err != nil {
		return err
	}

	now := time.Now().UTC()

	if err := uc.movementRepo.UpdateState(ctx, id, domain.MovementStateConfirmed, now); err != nil {
		return err
	}

	return uc.movementRepo.AppendHistory(ctx, id, domain.FieldChange{
		Field:     "state",
		OldValue:  string(domain.MovementStatePending),
		NewValue:  string(domain.MovementStateConfirmed),
		ChangedBy: actor,
		ChangedAt: now,
	})
}
