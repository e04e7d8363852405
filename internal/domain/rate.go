package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot holds the two market benchmarks, each expressed as local units
// per one foreign unit. It is supplied by an external source and is read-only
// to the engine.
type RateSnapshot struct {
	Official  decimal.Decimal
	Blue      decimal.Decimal
	FetchedAt time.Time
}

// ResolvedRate is the outcome of rate resolution for one conversion.
type ResolvedRate struct {
	Rate decimal.Decimal
	// Trivial means the pair needs no real conversion and the rate is exactly 1.
	Trivial bool
	// Fallback means the selected benchmark was missing or non-positive and 1
	// was substituted. Callers can tell a substituted 1 from a real 1:1 rate.
	Fallback bool
}

var one = decimal.NewFromInt(1)

// ResolveRate resolves the rate for a payment-currency/ledger-currency pair.
//
// Precedence: trivial pairs are always 1 regardless of override or snapshot;
// otherwise a positive manual override wins; otherwise the benchmark selected
// by the decision table. A missing or non-positive benchmark resolves to 1
// with Fallback set — absent market data has historically meant "post at face
// value", never "abort".
func ResolveRate(payment Currency, ledger LedgerCurrency, override *decimal.Decimal, snapshot RateSnapshot) (ResolvedRate, error) {
	rule, err := ConversionRuleFor(payment, ledger)
	if err != nil {
		return ResolvedRate{}, err
	}

	if rule.Kind == ConversionTrivial {
		return ResolvedRate{Rate: one, Trivial: true}, nil
	}

	if override != nil && override.IsPositive() {
		return ResolvedRate{Rate: *override}, nil
	}

	var rate decimal.Decimal
	switch rule.Benchmark {
	case BenchmarkOfficial:
		rate = snapshot.Official
	case BenchmarkBlue:
		rate = snapshot.Blue
	}

	if !rate.IsPositive() {
		return ResolvedRate{Rate: one, Fallback: true}, nil
	}

	return ResolvedRate{Rate: rate}, nil
}

// rateOrOne guards divisions against absent benchmarks.
func rateOrOne(rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return one
	}
	return rate
}
