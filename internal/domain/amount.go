package domain

import (
	"github.com/shopspring/decimal"
)

// MultiCurrencyAmount expresses one economic amount simultaneously in the
// three currency bases, as signed integer minor units. Each field is derived
// from the same unrounded base, never by cross-converting an already-rounded
// sibling field.
type MultiCurrencyAmount struct {
	Local           int64
	ForeignOfficial int64
	ForeignBlue     int64
}

// signed applies a direction sign to every field.
func (a MultiCurrencyAmount) signed(sign int64) MultiCurrencyAmount {
	return MultiCurrencyAmount{
		Local:           a.Local * sign,
		ForeignOfficial: a.ForeignOfficial * sign,
		ForeignBlue:     a.ForeignBlue * sign,
	}
}

// RoundMinorUnits is the single rounding policy of the engine: round half
// away from zero to integer minor units.
func RoundMinorUnits(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// ConvertInput carries everything a conversion needs. Rate must come from
// ResolveRate for the same currency pair.
type ConvertInput struct {
	RawAmount       decimal.Decimal
	Direction       Direction
	PaymentCurrency Currency
	LedgerCurrency  LedgerCurrency
	Rate            ResolvedRate
	Snapshot        RateSnapshot
	DiscountPercent decimal.Decimal
}

// Conversion is the pre-discount and post-discount multi-currency result.
type Conversion struct {
	Subtotal MultiCurrencyAmount
	Total    MultiCurrencyAmount
}

// Convert turns a raw entered amount into subtotal and total amounts in all
// three currency bases.
//
// The computation is two-stage: first the amount is resolved into the ledger
// account's denomination (unrounded), then that base is projected onto the
// three currency fields. The currency the amount was actually entered in
// participates with zero rounding error; the derived currencies absorb the
// rounding. The discount is applied once to the unrounded base so the three
// post-discount fields keep consistent cross-rates. The direction sign is
// applied last, uniformly.
func Convert(in ConvertInput) (Conversion, error) {
	if in.RawAmount.IsNegative() {
		return Conversion{}, ErrInvalidAmount
	}
	if !in.Direction.Valid() {
		return Conversion{}, ErrInvalidDirection
	}

	rule, err := ConversionRuleFor(in.PaymentCurrency, in.LedgerCurrency)
	if err != nil {
		return Conversion{}, err
	}

	base := baseInLedger(rule.Kind, in.RawAmount, in.Rate.Rate)
	factor := discountFactor(in.DiscountPercent)

	subtotal := project(in, base, in.RawAmount)
	total := project(in, base.Mul(factor), in.RawAmount.Mul(factor))

	sign := in.Direction.Sign()

	return Conversion{
		Subtotal: subtotal.signed(sign),
		Total:    total.signed(sign),
	}, nil
}

// baseInLedger resolves the raw amount into the ledger account's denomination,
// unrounded.
func baseInLedger(kind ConversionKind, raw, rate decimal.Decimal) decimal.Decimal {
	switch kind {
	case ConversionLocalToForeign:
		return raw.Div(rateOrOne(rate))
	case ConversionForeignToLocal:
		return raw.Mul(rate)
	default:
		return raw
	}
}

// project maps a base amount in the ledger denomination onto the three
// currency fields. raw is the amount in the payment currency matching base
// (discounted when base is discounted).
func project(in ConvertInput, base, raw decimal.Decimal) MultiCurrencyAmount {
	rounded := RoundMinorUnits(base)

	if in.LedgerCurrency == LedgerLocal {
		a := MultiCurrencyAmount{Local: rounded}
		if in.PaymentCurrency == CurrencyLocal {
			a.Local = RoundMinorUnits(raw)
			a.ForeignOfficial = RoundMinorUnits(decimal.NewFromInt(a.Local).Div(rateOrOne(in.Snapshot.Official)))
			a.ForeignBlue = RoundMinorUnits(decimal.NewFromInt(a.Local).Div(rateOrOne(in.Snapshot.Blue)))
			return a
		}
		// Foreign payment: the entered amount carries over exactly.
		a.ForeignOfficial = RoundMinorUnits(raw)
		a.ForeignBlue = RoundMinorUnits(raw)
		return a
	}

	// Foreign-denominated account: official and blue balances are tracked as
	// equal-denomination mirrors of each other.
	foreign := rounded
	if in.PaymentCurrency == CurrencyForeign {
		foreign = RoundMinorUnits(raw)
	}

	a := MultiCurrencyAmount{ForeignOfficial: foreign, ForeignBlue: foreign}
	if in.PaymentCurrency == CurrencyLocal {
		a.Local = RoundMinorUnits(raw)
	} else {
		a.Local = RoundMinorUnits(decimal.NewFromInt(foreign).Mul(in.Rate.Rate))
	}

	return a
}

var hundred = decimal.NewFromInt(100)

// discountFactor clamps the percentage to 0..100 and returns 1 - pct/100.
func discountFactor(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		pct = decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	return one.Sub(pct.Div(hundred))
}
