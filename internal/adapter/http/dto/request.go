package dto

import (
	"github.com/shopspring/decimal"

	"github.com/surcofin/cajaflow/internal/domain"
	"github.com/surcofin/cajaflow/internal/usecase"
)

// CreateAccountRequest represents a request to create a cash account.
type CreateAccountRequest struct {
	Name           string `json:"name"`
	LedgerCurrency string `json:"ledger_currency"`
	CounterpartyID string `json:"counterparty_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:           r.Name,
		LedgerCurrency: domain.LedgerCurrency(r.LedgerCurrency),
		CounterpartyID: r.CounterpartyID,
	}
}

// CreateMovementRequest represents a request to create a single movement.
type CreateMovementRequest struct {
	AccountID       string           `json:"account_id"`
	Direction       string           `json:"direction"`
	PaymentCurrency string           `json:"payment_currency"`
	RawAmount       decimal.Decimal  `json:"raw_amount"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	RateOverride    *decimal.Decimal `json:"rate_override,omitempty"`
	EnteredBy       string           `json:"entered_by"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateMovementRequest) ToUseCaseInput() usecase.CreateMovementInput {
	return usecase.CreateMovementInput{
		AccountID:       r.AccountID,
		Direction:       domain.Direction(r.Direction),
		PaymentCurrency: domain.Currency(r.PaymentCurrency),
		RawAmount:       r.RawAmount,
		DiscountPercent: r.DiscountPercent,
		RateOverride:    r.RateOverride,
		EnteredBy:       r.EnteredBy,
	}
}

// PairLeg is one side of a compound movement request. Directions are not
// part of the payload; the coordinator assigns them.
type PairLeg struct {
	AccountID       string           `json:"account_id"`
	PaymentCurrency string           `json:"payment_currency"`
	RawAmount       decimal.Decimal  `json:"raw_amount"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	RateOverride    *decimal.Decimal `json:"rate_override,omitempty"`
}

// CreatePairRequest represents a request to create a compound movement:
// money leaves the "from" account and enters the "to" account.
type CreatePairRequest struct {
	From      PairLeg `json:"from"`
	To        PairLeg `json:"to"`
	EnteredBy string  `json:"entered_by"`
}

// ToUseCaseInputs converts to the two leg inputs.
func (r *CreatePairRequest) ToUseCaseInputs() (outflow, inflow usecase.CreateMovementInput) {
	return r.From.toInput(r.EnteredBy), r.To.toInput(r.EnteredBy)
}

func (l PairLeg) toInput(enteredBy string) usecase.CreateMovementInput {
	return usecase.CreateMovementInput{
		AccountID:       l.AccountID,
		PaymentCurrency: domain.Currency(l.PaymentCurrency),
		RawAmount:       l.RawAmount,
		DiscountPercent: l.DiscountPercent,
		RateOverride:    l.RateOverride,
		EnteredBy:       enteredBy,
	}
}

// UpdateMovementRequest represents a pre-confirmation edit. Absent fields
// are left untouched.
type UpdateMovementRequest struct {
	RawAmount       *decimal.Decimal `json:"raw_amount,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	PaymentCurrency *string          `json:"payment_currency,omitempty"`
	RateOverride    *decimal.Decimal `json:"rate_override,omitempty"`
	EditedBy        string           `json:"edited_by"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateMovementRequest) ToUseCaseInput() usecase.UpdateMovementInput {
	input := usecase.UpdateMovementInput{
		RawAmount:       r.RawAmount,
		DiscountPercent: r.DiscountPercent,
		RateOverride:    r.RateOverride,
		EditedBy:        r.EditedBy,
	}
	if r.PaymentCurrency != nil {
		currency := domain.Currency(*r.PaymentCurrency)
		input.PaymentCurrency = &currency
	}
	return input
}

// ConfirmRequest represents a conciliation batch confirmation.
type ConfirmRequest struct {
	MovementIDs []string `json:"movement_ids"`
	ConfirmedBy string   `json:"confirmed_by"`
}
