package domain

// Currency is the currency a payment is entered in.
type Currency string

const (
	CurrencyLocal   Currency = "ars"
	CurrencyForeign Currency = "usd"
)

// Valid reports whether c is a known payment currency.
func (c Currency) Valid() bool {
	return c == CurrencyLocal || c == CurrencyForeign
}

// LedgerCurrency is the denomination of the cash account an amount is posted
// against. A foreign payment can land on a blue- or official-denominated
// account, and a local payment can land on either foreign account, so this is
// deliberately a separate enum from Currency.
type LedgerCurrency string

const (
	LedgerLocal           LedgerCurrency = "local"
	LedgerForeignOfficial LedgerCurrency = "foreign_official"
	LedgerForeignBlue     LedgerCurrency = "foreign_blue"
)

// Valid reports whether l is a known ledger currency.
func (l LedgerCurrency) Valid() bool {
	switch l {
	case LedgerLocal, LedgerForeignOfficial, LedgerForeignBlue:
		return true
	}
	return false
}

// Foreign reports whether l is one of the foreign-denominated bases.
func (l LedgerCurrency) Foreign() bool {
	return l == LedgerForeignOfficial || l == LedgerForeignBlue
}

// ConversionKind classifies what arithmetic a currency pair requires.
type ConversionKind int

const (
	// ConversionTrivial needs no real rate: the pair is same-denomination
	// (blue/official is a local-currency spread, not a foreign/foreign one).
	ConversionTrivial ConversionKind = iota
	// ConversionLocalToForeign divides the raw amount by the rate.
	ConversionLocalToForeign
	// ConversionForeignToLocal multiplies the raw amount by the rate.
	ConversionForeignToLocal
)

// Benchmark selects which snapshot rate backs a non-trivial conversion.
type Benchmark int

const (
	BenchmarkNone Benchmark = iota
	BenchmarkOfficial
	BenchmarkBlue
)

// ConversionRule is one row of the currency-pair decision table.
type ConversionRule struct {
	Kind      ConversionKind
	Benchmark Benchmark
}

type currencyPair struct {
	payment Currency
	ledger  LedgerCurrency
}

// conversionTable replaces the historical per-pair conditionals with a single
// lookup. The blue rate is the benchmark for every non-official direction.
var conversionTable = map[currencyPair]ConversionRule{
	{CurrencyLocal, LedgerLocal}:             {ConversionTrivial, BenchmarkNone},
	{CurrencyLocal, LedgerForeignOfficial}:   {ConversionLocalToForeign, BenchmarkOfficial},
	{CurrencyLocal, LedgerForeignBlue}:       {ConversionLocalToForeign, BenchmarkBlue},
	{CurrencyForeign, LedgerLocal}:           {ConversionForeignToLocal, BenchmarkBlue},
	{CurrencyForeign, LedgerForeignOfficial}: {ConversionTrivial, BenchmarkNone},
	{CurrencyForeign, LedgerForeignBlue}:     {ConversionTrivial, BenchmarkNone},
}

// ConversionRuleFor returns the decision-table row for a currency pair.
func ConversionRuleFor(payment Currency, ledger LedgerCurrency) (ConversionRule, error) {
	rule, ok := conversionTable[currencyPair{payment, ledger}]
	if !ok {
		return ConversionRule{}, ErrUnsupportedCurrencyPair
	}
	return rule, nil
}
