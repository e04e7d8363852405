package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/surcofin/cajaflow/internal/domain"
	"github.com/surcofin/cajaflow/internal/usecase"
	"github.com/surcofin/cajaflow/internal/usecase/mocks"
)

func testSnapshot() domain.RateSnapshot {
	return domain.RateSnapshot{
		Official: decimal.NewFromInt(1000),
		Blue:     decimal.NewFromInt(1200),
	}
}

func seedAccount(t *testing.T, repo *mocks.MockAccountRepository, id string, ledger domain.LedgerCurrency, active bool) {
	t.Helper()

	err := repo.Create(context.Background(), &domain.CashAccount{
		ID:             id,
		Name:           "caja " + id,
		LedgerCurrency: ledger,
		Active:         active,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func TestMovementUseCase_CreateMovement(t *testing.T) {
	tests := []struct {
		name         string
		input        usecase.CreateMovementInput
		ledger       domain.LedgerCurrency
		active       bool
		wantSubtotal domain.MultiCurrencyAmount
		expectError  bool
		errorType    error
	}{
		{
			name: "local inflow to official account",
			input: usecase.CreateMovementInput{
				AccountID:       "acc-1",
				Direction:       domain.DirectionInflow,
				PaymentCurrency: domain.CurrencyLocal,
				RawAmount:       decimal.NewFromInt(10000),
			},
			ledger:       domain.LedgerForeignOfficial,
			active:       true,
			wantSubtotal: domain.MultiCurrencyAmount{Local: 10000, ForeignOfficial: 10, ForeignBlue: 10},
		},
		{
			name: "outflow carries negative sign",
			input: usecase.CreateMovementInput{
				AccountID:       "acc-1",
				Direction:       domain.DirectionOutflow,
				PaymentCurrency: domain.CurrencyLocal,
				RawAmount:       decimal.NewFromInt(10000),
			},
			ledger:       domain.LedgerForeignOfficial,
			active:       true,
			wantSubtotal: domain.MultiCurrencyAmount{Local: -10000, ForeignOfficial: -10, ForeignBlue: -10},
		},
		{
			name: "inactive account is rejected",
			input: usecase.CreateMovementInput{
				AccountID:       "acc-1",
				Direction:       domain.DirectionInflow,
				PaymentCurrency: domain.CurrencyLocal,
				RawAmount:       decimal.NewFromInt(100),
			},
			ledger:      domain.LedgerLocal,
			active:      false,
			expectError: true,
			errorType:   domain.ErrAccountInactive,
		},
		{
			name: "negative amount is rejected",
			input: usecase.CreateMovementInput{
				AccountID:       "acc-1",
				Direction:       domain.DirectionInflow,
				PaymentCurrency: domain.CurrencyLocal,
				RawAmount:       decimal.NewFromInt(-10),
			},
			ledger:      domain.LedgerLocal,
			active:      true,
			expectError: true,
			errorType:   domain.ErrInvalidAmount,
		},
		{
			name: "unknown payment currency is rejected",
			input: usecase.CreateMovementInput{
				AccountID:       "acc-1",
				Direction:       domain.DirectionInflow,
				PaymentCurrency: "EUR",
				RawAmount:       decimal.NewFromInt(10),
			},
			ledger:      domain.LedgerLocal,
			active:      true,
			expectError: true,
			errorType:   domain.ErrUnsupportedCurrencyPair,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movementRepo := mocks.NewMockMovementRepository()
			accountRepo := mocks.NewMockAccountRepository()
			rates := mocks.NewMockRateSource(testSnapshot())
			idGen := mocks.NewMockIDGenerator()

			seedAccount(t, accountRepo, "acc-1", tt.ledger, tt.active)

			uc := usecase.NewMovementUseCase(movementRepo, accountRepo, rates, idGen)
			movement, err := uc.CreateMovement(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				if movementRepo.Count() != 0 {
					t.Error("nothing should be persisted on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if movement.Subtotal != tt.wantSubtotal {
				t.Errorf("subtotal = %+v, want %+v", movement.Subtotal, tt.wantSubtotal)
			}
			if movement.State != domain.MovementStatePending {
				t.Errorf("state = %s, want pending", movement.State)
			}
			if movementRepo.Stored(movement.ID) == nil {
				t.Error("movement not persisted")
			}
		})
	}
}

func TestMovementUseCase_CreateMovement_RateSourceFailureDegrades(t *testing.T) {
	movementRepo := mocks.NewMockMovementRepository()
	accountRepo := mocks.NewMockAccountRepository()
	idGen := mocks.NewMockIDGenerator()

	rates := mocks.NewMockRateSource(domain.RateSnapshot{})
	rates.SnapshotFunc = func(context.Context) (domain.RateSnapshot, error) {
		return domain.RateSnapshot{}, errors.New("quote service down")
	}

	seedAccount(t, accountRepo, "acc-1", domain.LedgerForeignBlue, true)

	uc := usecase.NewMovementUseCase(movementRepo, accountRepo, rates, idGen)
	movement, err := uc.CreateMovement(context.Background(), usecase.CreateMovementInput{
		AccountID:       "acc-1",
		Direction:       domain.DirectionInflow,
		PaymentCurrency: domain.CurrencyLocal,
		RawAmount:       decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !movement.RateFallback {
		t.Error("rate fallback must be flagged when no market data is available")
	}
	if !movement.RateApplied.Equal(decimal.NewFromInt(1)) {
		t.Errorf("rate applied = %s, want 1", movement.RateApplied)
	}
}

func TestMovementUseCase_UpdateMovement(t *testing.T) {
	movementRepo := mocks.NewMockMovementRepository()
	accountRepo := mocks.NewMockAccountRepository()
	rates := mocks.NewMockRateSource(testSnapshot())
	idGen := mocks.NewMockIDGenerator()

	seedAccount(t, accountRepo, "acc-1", domain.LedgerLocal, true)

	uc := usecase.NewMovementUseCase(movementRepo, accountRepo, rates, idGen)

	created, err := uc.CreateMovement(context.Background(), usecase.CreateMovementInput{
		AccountID:       "acc-1",
		Direction:       domain.DirectionInflow,
		PaymentCurrency: domain.CurrencyLocal,
		RawAmount:       decimal.NewFromInt(5000),
		EnteredBy:       "maria",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("edit amount and discount", func(t *testing.T) {
		newAmount := decimal.NewFromInt(6000)
		newDiscount := decimal.NewFromInt(10)

		updated, err := uc.UpdateMovement(context.Background(), created.ID, usecase.UpdateMovementInput{
			RawAmount:       &newAmount,
			DiscountPercent: &newDiscount,
			EditedBy:        "maria",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if updated.Subtotal.Local != 6000 {
			t.Errorf("subtotal.local = %d, want 6000", updated.Subtotal.Local)
		}
		if updated.Total.Local != 5400 {
			t.Errorf("total.local = %d, want 5400", updated.Total.Local)
		}
		if len(updated.History) != 2 {
			t.Fatalf("history length = %d, want 2", len(updated.History))
		}
		if updated.History[0].Field != "raw_amount" || updated.History[0].ChangedBy != "maria" {
			t.Errorf("unexpected first history record: %+v", updated.History[0])
		}
	})

	t.Run("confirmed movement rejects edits", func(t *testing.T) {
		stored := movementRepo.Stored(created.ID)
		stored.State = domain.MovementStateConfirmed

		amount := decimal.NewFromInt(1)
		_, err := uc.UpdateMovement(context.Background(), created.ID, usecase.UpdateMovementInput{
			RawAmount: &amount,
			EditedBy:  "maria",
		})
		if !errors.Is(err, domain.ErrMovementConfirmed) {
			t.Errorf("expected ErrMovementConfirmed, got %v", err)
		}
	})
}

func TestMovementUseCase_ListPendingInflows(t *testing.T) {
	movementRepo := mocks.NewMockMovementRepository()
	accountRepo := mocks.NewMockAccountRepository()
	rates := mocks.NewMockRateSource(testSnapshot())
	idGen := mocks.NewMockIDGenerator()

	seedAccount(t, accountRepo, "acc-1", domain.LedgerLocal, true)

	uc := usecase.NewMovementUseCase(movementRepo, accountRepo, rates, idGen)

	for _, dir := range []domain.Direction{domain.DirectionInflow, domain.DirectionOutflow, domain.DirectionInflow} {
		_, err := uc.CreateMovement(context.Background(), usecase.CreateMovementInput{
			AccountID:       "acc-1",
			Direction:       dir,
			PaymentCurrency: domain.CurrencyLocal,
			RawAmount:       decimal.NewFromInt(100),
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	pending, err := uc.ListPendingInflows(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("pending inflows = %d, want 2", len(pending))
	}
}
