// Package core implements the financial calculation engine behind the
// dashboard: line-item amounts, document totals, ledger summaries and
// period reports. Everything in this package is a pure function over
// already-fetched records; fetching, persistence and rendering live in
// the surrounding layers.
//
// Monetary values are decimal.Decimal. Full precision is kept through
// every calculation; rounding to two places happens only at the display
// boundary via Display.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-entered decimal string to a positive amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns an error for invalid formats, signs, or non-positive values.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseRate converts a user-entered percentage string to a non-negative
// rate. Unlike ParseAmount, zero is a valid rate.
func ParseRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidTaxRate
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidTaxRate
	}
	return d, nil
}

// Display rounds an amount to two decimal places, half up. Calculations
// never round; only values leaving the engine for presentation do.
func Display(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// percent scales d by rate/100. The shift keeps the operation exact:
// no division is ever performed inside the engine.
func percent(d, rate decimal.Decimal) decimal.Decimal {
	return d.Mul(rate.Shift(-2))
}
