// Package money handles monetary amounts for the billing core.
//
// Amounts are stored as int64 paise (minor currency units) and all
// intermediate arithmetic runs on shopspring decimals, so repeated
// additions and percentage discounts never accumulate float drift.
package money

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
)

// FromPaise converts a paise amount to a decimal rupee value.
func FromPaise(paise int64) decimal.Decimal {
	return decimal.New(paise, -2)
}

// ToPaise converts a decimal rupee value to paise, rounding half-up
// to the smallest currency unit.
func ToPaise(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// LineTotal returns the paise total for quantity units at the given unit price.
func LineTotal(unitPaise int64, quantity int) int64 {
	return unitPaise * int64(quantity)
}

// ValidDiscount reports whether a discount percentage is within [0, 100].
// Out-of-range values are rejected by callers, never clamped.
func ValidDiscount(percent decimal.Decimal) bool {
	return !percent.IsNegative() && percent.LessThanOrEqual(hundred)
}

// ApplyDiscount returns subtotal - subtotal*percent/100 in paise,
// rounded half-up to the nearest paisa. The caller must have validated
// the percentage with ValidDiscount.
func ApplyDiscount(subtotalPaise int64, percent decimal.Decimal) int64 {
	net := FromPaise(subtotalPaise).Mul(hundred.Sub(percent)).Div(hundred)
	return ToPaise(net)
}

// Format renders a paise amount the way the receipts print it: whole
// rupees without decimals ("130"), fractional amounts trimmed ("117.5").
func Format(paise int64) string {
	return FromPaise(paise).String()
}

// FormatPercent renders a discount percentage with trailing zeros trimmed.
func FormatPercent(percent decimal.Decimal) string {
	return percent.String()
}
