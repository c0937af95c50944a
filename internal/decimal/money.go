// Package decimal wraps shopspring/decimal with the monetary rules shared by
// every regulatory document this engine emits: euro amounts carry exactly two
// fractional digits, rounded half away from zero, and document totals are the
// sum of already-rounded components (round-then-sum), so that printed lines
// always reconcile to the cent.
package decimal

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// Round2 rounds to 2 fractional digits, half away from zero.
// Banker's rounding is not acceptable on FatturaPA/INPS amounts.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format2 renders an amount with exactly 2 fractional digits, as required by
// the textual fields of FatturaPA, INPS and Easyfatt documents.
func Format2(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// FromInt creates a decimal euro amount from whole euros
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// FromFloat creates a decimal from float, rounded to cents
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// FromString parses a decimal from string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Percentage computes amount * (rate/100), rounded to cents. Used for
// withholding tax and social-security contribution shares.
func Percentage(amount, rate decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return amount.Mul(rate).Div(hundred).Round(2)
}

// SumRounded rounds each value to cents, then sums. Totals on regulatory
// documents must reconcile by simple addition of the printed line amounts,
// so summing unrounded values and rounding once is wrong here.
func SumRounded(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v.Round(2))
	}
	return result
}

// IsNonNegative returns true if d >= 0
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}
