// Package money normalises monetary amounts to the ledger's fixed precision.
//
// Amounts travel through the engine as decimal.Decimal so repeated additions
// never accumulate binary floating point drift. Floats are accepted only at
// the edges (user input, configuration) and are rounded on the way in.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits every amount is kept at.
const Precision int32 = 2

// IntegerDigits is the number of digits the store keeps before the decimal
// point. Amount columns are DECIMAL(15,2).
const IntegerDigits int32 = 13

var ErrInvalidAmount = errors.New("invalid amount")

// MaxAmount is the largest magnitude a single amount may have.
var MaxAmount = decimal.New(1, IntegerDigits).Sub(decimal.New(1, -Precision))

// Normalize rounds d to Precision places (half away from zero).
func Normalize(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}

// FromFloat converts a float amount into a normalised decimal.
func FromFloat(f float64) decimal.Decimal {
	return Normalize(decimal.NewFromFloat(f))
}

// Parse reads a user supplied amount. Both "12.34" and "12,34" are accepted.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return Normalize(d), nil
}

// InRange reports whether d, once normalised, fits the store's amount columns.
func InRange(d decimal.Decimal) bool {
	return Normalize(d).Abs().LessThanOrEqual(MaxAmount)
}

// Sum adds amounts exactly and normalises the result once.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Normalize(total)
}

// Abs returns the sign-corrected value used for display.
func Abs(d decimal.Decimal) decimal.Decimal {
	return Normalize(d.Abs())
}

// Format renders d with exactly Precision fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Precision)
}

// IsPositive reports whether d is strictly greater than zero after rounding.
func IsPositive(d decimal.Decimal) bool {
	return Normalize(d).GreaterThan(decimal.Zero)
}
