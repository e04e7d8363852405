package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/surcofin/cajaflow/internal/domain"
)

// RateUseCase exposes the current snapshot and rate-resolution previews to
// the form layer.
type RateUseCase struct {
	rates RateSource
}

// NewRateUseCase creates a new RateUseCase.
func NewRateUseCase(rates RateSource) *RateUseCase {
	return &RateUseCase{rates: rates}
}

// CurrentSnapshot returns the latest rate snapshot.
func (uc *RateUseCase) CurrentSnapshot(ctx context.Context) (domain.RateSnapshot, error) {
	return uc.rates.Snapshot(ctx)
}

// PreviewRate resolves the rate a conversion would use, without creating
// anything. The forms call it whenever currency selections change, which is
// also where any stale manual override gets dropped.
func (uc *RateUseCase) PreviewRate(ctx context.Context, payment domain.Currency, ledger domain.LedgerCurrency, override *decimal.Decimal) (domain.ResolvedRate, error) {
	snapshot, err := uc.rates.Snapshot(ctx)
	if err != nil {
		snapshot = domain.RateSnapshot{}
	}

	return domain.ResolveRate(payment, ledger, override, snapshot)
}
