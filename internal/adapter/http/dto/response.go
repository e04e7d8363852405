package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/surcofin/cajaflow/internal/domain"
	"github.com/surcofin/cajaflow/internal/usecase"
)

// AccountResponse represents a cash account in API responses.
type AccountResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	LedgerCurrency string    `json:"ledger_currency"`
	CounterpartyID string    `json:"counterparty_id,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.CashAccount) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		LedgerCurrency: string(a.LedgerCurrency),
		CounterpartyID: a.CounterpartyID,
		Active:         a.Active,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.CashAccount) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// AmountResponse carries one amount in all three bookkeeping bases, in
// minor units.
type AmountResponse struct {
	Local           int64 `json:"local"`
	ForeignOfficial int64 `json:"foreign_official"`
	ForeignBlue     int64 `json:"foreign_blue"`
}

func amountFromDomain(a domain.MultiCurrencyAmount) AmountResponse {
	return AmountResponse{
		Local:           a.Local,
		ForeignOfficial: a.ForeignOfficial,
		ForeignBlue:     a.ForeignBlue,
	}
}

// FieldChangeResponse represents one audit-trail record.
type FieldChangeResponse struct {
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

// MovementResponse represents a movement in API responses.
type MovementResponse struct {
	ID              string                `json:"id"`
	AccountID       string                `json:"account_id"`
	Direction       string                `json:"direction"`
	PaymentCurrency string                `json:"payment_currency"`
	LedgerCurrency  string                `json:"ledger_currency"`
	RawAmount       decimal.Decimal       `json:"raw_amount"`
	DiscountPercent decimal.Decimal       `json:"discount_percent"`
	Subtotal        AmountResponse        `json:"subtotal"`
	Total           AmountResponse        `json:"total"`
	RateApplied     decimal.Decimal       `json:"rate_applied"`
	RateFallback    bool                  `json:"rate_fallback"`
	CorrelationID   *string               `json:"correlation_id,omitempty"`
	State           string                `json:"state"`
	History         []FieldChangeResponse `json:"history,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// MovementFromDomain converts a domain movement to a response.
func MovementFromDomain(m *domain.Movement) *MovementResponse {
	resp := &MovementResponse{
		ID:              m.ID,
		AccountID:       m.AccountID,
		Direction:       string(m.Direction),
		PaymentCurrency: string(m.PaymentCurrency),
		LedgerCurrency:  string(m.LedgerCurrency),
		RawAmount:       m.RawAmount,
		DiscountPercent: m.DiscountPercent,
		Subtotal:        amountFromDomain(m.Subtotal),
		Total:           amountFromDomain(m.Total),
		RateApplied:     m.RateApplied,
		RateFallback:    m.RateFallback,
		CorrelationID:   m.CorrelationID,
		State:           string(m.State),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, c := range m.History {
		resp.History = append(resp.History, FieldChangeResponse{
			Field:     c.Field,
			OldValue:  c.OldValue,
			NewValue:  c.NewValue,
			ChangedBy: c.ChangedBy,
			ChangedAt: c.ChangedAt,
		})
	}
	return resp
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []*domain.Movement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// PairResponse represents a compound movement in API responses.
type PairResponse struct {
	CorrelationID string            `json:"correlation_id"`
	Outflow       *MovementResponse `json:"outflow"`
	Inflow        *MovementResponse `json:"inflow"`
}

// PairFromDomain converts a movement pair to a response.
func PairFromDomain(p *usecase.MovementPair) *PairResponse {
	return &PairResponse{
		CorrelationID: p.CorrelationID,
		Outflow:       MovementFromDomain(p.Outflow),
		Inflow:        MovementFromDomain(p.Inflow),
	}
}

// RateSnapshotResponse represents the current market rates.
type RateSnapshotResponse struct {
	Official  decimal.Decimal `json:"official"`
	Blue      decimal.Decimal `json:"blue"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// SnapshotFromDomain converts a rate snapshot to a response.
func SnapshotFromDomain(s domain.RateSnapshot) *RateSnapshotResponse {
	return &RateSnapshotResponse{
		Official:  s.Official,
		Blue:      s.Blue,
		FetchedAt: s.FetchedAt,
	}
}

// RatePreviewResponse represents a resolved rate preview.
type RatePreviewResponse struct {
	Rate     decimal.Decimal `json:"rate"`
	Trivial  bool            `json:"trivial"`
	Fallback bool            `json:"fallback"`
}

// ConfirmFailure is one movement that could not be confirmed.
type ConfirmFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// ConfirmResponse represents the outcome of a conciliation batch.
type ConfirmResponse struct {
	Confirmed []string         `json:"confirmed"`
	Failed    []ConfirmFailure `json:"failed"`
}

// ConfirmFromResult converts a batch result to a response.
func ConfirmFromResult(result *usecase.ConfirmResult) *ConfirmResponse {
	resp := &ConfirmResponse{Confirmed: result.Confirmed, Failed: []ConfirmFailure{}}
	if resp.Confirmed == nil {
		resp.Confirmed = []string{}
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, ConfirmFailure{ID: f.ID, Reason: f.Reason})
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
