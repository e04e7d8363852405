package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMovement_Validate(t *testing.T) {
	valid := Movement{
		Direction:       DirectionInflow,
		PaymentCurrency: CurrencyLocal,
		LedgerCurrency:  LedgerLocal,
		RawAmount:       decimal.NewFromInt(100),
		DiscountPercent: decimal.NewFromInt(10),
	}

	tests := []struct {
		name    string
		mutate  func(*Movement)
		wantErr error
	}{
		{
			name:   "valid movement",
			mutate: func(*Movement) {},
		},
		{
			name:    "negative amount",
			mutate:  func(m *Movement) { m.RawAmount = decimal.NewFromInt(-5) },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "discount above 100",
			mutate:  func(m *Movement) { m.DiscountPercent = decimal.NewFromInt(101) },
			wantErr: ErrInvalidDiscount,
		},
		{
			name:    "negative discount",
			mutate:  func(m *Movement) { m.DiscountPercent = decimal.NewFromInt(-1) },
			wantErr: ErrInvalidDiscount,
		},
		{
			name:    "unknown direction",
			mutate:  func(m *Movement) { m.Direction = "sideways" },
			wantErr: ErrInvalidDirection,
		},
		{
			name:    "unknown payment currency",
			mutate:  func(m *Movement) { m.PaymentCurrency = "EUR" },
			wantErr: ErrUnsupportedCurrencyPair,
		},
		{
			name:    "unknown ledger currency",
			mutate:  func(m *Movement) { m.LedgerCurrency = "crypto" },
			wantErr: ErrUnsupportedCurrencyPair,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)

			err := m.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMovement_Confirmable(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		state     MovementState
		wantErr   error
	}{
		{
			name:      "pending inflow is confirmable",
			direction: DirectionInflow,
			state:     MovementStatePending,
		},
		{
			name:      "confirmed inflow is rejected",
			direction: DirectionInflow,
			state:     MovementStateConfirmed,
			wantErr:   ErrMovementConfirmed,
		},
		{
			name:      "pending outflow is rejected",
			direction: DirectionOutflow,
			state:     MovementStatePending,
			wantErr:   ErrNotInflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Movement{Direction: tt.direction, State: tt.state}

			if err := m.Confirmable(); err != tt.wantErr {
				t.Errorf("Confirmable() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDirection_Sign(t *testing.T) {
	if DirectionInflow.Sign() != 1 {
		t.Error("inflow sign should be +1")
	}
	if DirectionOutflow.Sign() != -1 {
		t.Error("outflow sign should be -1")
	}
	if DirectionOutflow.Opposite() != DirectionInflow {
		t.Error("opposite of outflow should be inflow")
	}
}
