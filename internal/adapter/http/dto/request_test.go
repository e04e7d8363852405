package dto

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/surcofin/cajaflow/internal/domain"
)

func TestCreateMovementRequest_ToUseCaseInput(t *testing.T) {
	override := decimal.NewFromInt(1300)
	req := CreateMovementRequest{
		AccountID:       "acc-1",
		Direction:       "inflow",
		PaymentCurrency: "ars",
		RawAmount:       decimal.NewFromInt(10000),
		DiscountPercent: decimal.NewFromInt(10),
		RateOverride:    &override,
		EnteredBy:       "maria",
	}

	input := req.ToUseCaseInput()

	if input.Direction != domain.DirectionInflow {
		t.Errorf("direction = %s, want inflow", input.Direction)
	}
	if input.PaymentCurrency != domain.CurrencyLocal {
		t.Errorf("payment currency = %s, want ars", input.PaymentCurrency)
	}
	if input.RateOverride == nil || !input.RateOverride.Equal(override) {
		t.Errorf("override not carried over: %v", input.RateOverride)
	}
}

func TestCreatePairRequest_ToUseCaseInputs(t *testing.T) {
	req := CreatePairRequest{
		From:      PairLeg{AccountID: "acc-1", PaymentCurrency: "ars", RawAmount: decimal.NewFromInt(500)},
		To:        PairLeg{AccountID: "acc-2", PaymentCurrency: "ars", RawAmount: decimal.NewFromInt(500)},
		EnteredBy: "maria",
	}

	outflow, inflow := req.ToUseCaseInputs()

	if outflow.AccountID != "acc-1" || inflow.AccountID != "acc-2" {
		t.Errorf("legs mapped to wrong accounts: %s, %s", outflow.AccountID, inflow.AccountID)
	}
	if outflow.EnteredBy != "maria" || inflow.EnteredBy != "maria" {
		t.Error("entered_by must propagate to both legs")
	}
	if outflow.Direction != "" || inflow.Direction != "" {
		t.Error("pair legs must not carry a direction; the coordinator assigns them")
	}
}

func TestUpdateMovementRequest_ToUseCaseInput(t *testing.T) {
	currency := "usd"
	amount := decimal.NewFromInt(250)
	req := UpdateMovementRequest{
		RawAmount:       &amount,
		PaymentCurrency: &currency,
		EditedBy:        "jorge",
	}

	input := req.ToUseCaseInput()

	if input.PaymentCurrency == nil || *input.PaymentCurrency != domain.CurrencyForeign {
		t.Errorf("payment currency = %v, want usd", input.PaymentCurrency)
	}
	if input.DiscountPercent != nil {
		t.Error("absent discount must stay nil")
	}
	if input.EditedBy != "jorge" {
		t.Errorf("edited_by = %s, want jorge", input.EditedBy)
	}
}
