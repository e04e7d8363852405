package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/surcofin/cajaflow/internal/domain"
	"github.com/surcofin/cajaflow/internal/usecase"
	"github.com/surcofin/cajaflow/internal/usecase/mocks"
)

func seedMovement(repo *mocks.MockMovementRepository, id string, dir domain.Direction, state domain.MovementState) {
	repo.Insert(&domain.Movement{
		ID:              id,
		AccountID:       "acc-1",
		Direction:       dir,
		PaymentCurrency: domain.CurrencyLocal,
		LedgerCurrency:  domain.LedgerLocal,
		RawAmount:       decimal.NewFromInt(100),
		State:           state,
	})
}

func TestConciliationUseCase_ConfirmSelected(t *testing.T) {
	movementRepo := mocks.NewMockMovementRepository()

	seedMovement(movementRepo, "mov-1", domain.DirectionInflow, domain.MovementStatePending)
	seedMovement(movementRepo, "mov-2", domain.DirectionInflow, domain.MovementStateConfirmed)
	seedMovement(movementRepo, "mov-3", domain.DirectionOutflow, domain.MovementStatePending)
	seedMovement(movementRepo, "mov-4", domain.DirectionInflow, domain.MovementStatePending)

	uc := usecase.NewConciliationUseCase(movementRepo)

	result := uc.ConfirmSelected(context.Background(), []string{"mov-1", "mov-2", "mov-3", "mov-4", "mov-missing"}, "lucia")

	if len(result.Confirmed) != 2 {
		t.Fatalf("confirmed = %v, want mov-1 and mov-4", result.Confirmed)
	}
	if len(result.Failed) != 3 {
		t.Fatalf("failed = %v, want 3 failures", result.Failed)
	}

	for _, id := range result.Confirmed {
		stored := movementRepo.Stored(id)
		if stored.State != domain.MovementStateConfirmed {
			t.Errorf("%s: state = %s, want confirmed", id, stored.State)
		}
		if len(stored.History) != 1 {
			t.Fatalf("%s: history length = %d, want 1", id, len(stored.History))
		}
		change := stored.History[0]
		if change.Field != "state" || change.ChangedBy != "lucia" {
			t.Errorf("%s: unexpected history record %+v", id, change)
		}
	}

	// Siblings are untouched by the failures.
	if movementRepo.Stored("mov-3").State != domain.MovementStatePending {
		t.Error("outflow must remain pending")
	}
}

func TestConciliationUseCase_ConfirmSelected_Idempotence(t *testing.T) {
	movementRepo := mocks.NewMockMovementRepository()
	seedMovement(movementRepo, "mov-1", domain.DirectionInflow, domain.MovementStatePending)

	uc := usecase.NewConciliationUseCase(movementRepo)

	first := uc.ConfirmSelected(context.Background(), []string{"mov-1"}, "lucia")
	if len(first.Confirmed) != 1 {
		t.Fatalf("first pass: confirmed = %v", first.Confirmed)
	}

	second := uc.ConfirmSelected(context.Background(), []string{"mov-1"}, "lucia")
	if len(second.Confirmed) != 0 {
		t.Fatal("second pass must not re-confirm")
	}
	if len(second.Failed) != 1 || second.Failed[0].Reason != domain.ErrMovementConfirmed.Error() {
		t.Errorf("second pass failures = %+v", second.Failed)
	}

	// Exactly one history record: no duplicate state change.
	if got := len(movementRepo.Stored("mov-1").History); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}

func TestConciliationUseCase_ConfirmSelected_FailureIsolation(t *testing.T) {
	movementRepo := mocks.NewMockMovementRepository()
	seedMovement(movementRepo, "mov-1", domain.DirectionInflow, domain.MovementStatePending)
	seedMovement(movementRepo, "mov-2", domain.DirectionInflow, domain.MovementStatePending)

	updateErr := errors.New("row lock timeout")
	movementRepo.UpdateStateFunc = func(ctx context.Context, id string, state domain.MovementState, updatedAt time.Time) error {
		if id == "mov-1" {
			return updateErr
		}
		movementRepo.Stored(id).State = state
		return nil
	}

	uc := usecase.NewConciliationUseCase(movementRepo)

	result := uc.ConfirmSelected(context.Background(), []string{"mov-1", "mov-2"}, "lucia")

	if len(result.Confirmed) != 1 || result.Confirmed[0] != "mov-2" {
		t.Errorf("confirmed = %v, want [mov-2]", result.Confirmed)
	}
	if len(result.Failed) != 1 || result.Failed[0].ID != "mov-1" {
		t.Errorf("failed = %+v, want mov-1", result.Failed)
	}
}

func TestConciliationUseCase_ConfirmSelected_DuplicateIDsProcessedOnce(t *testing.T) {
	movementRepo := mocks.NewMockMovementRepository()
	seedMovement(movementRepo, "mov-1", domain.DirectionInflow, domain.MovementStatePending)

	uc := usecase.NewConciliationUseCase(movementRepo)

	result := uc.ConfirmSelected(context.Background(), []string{"mov-1", "mov-1", "mov-1"}, "lucia")

	if len(result.Confirmed) != 1 {
		t.Errorf("confirmed = %v, want single mov-1", result.Confirmed)
	}
	if len(result.Failed) != 0 {
		t.Errorf("failed = %+v, want none", result.Failed)
	}
}
