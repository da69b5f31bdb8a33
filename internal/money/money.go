// Package money renders amounts for display. Stored amounts stay float64 and
// unrounded; only their presentation is fixed to two decimals.
package money

import "github.com/shopspring/decimal"

// Format renders v with exactly two decimals, rounding half away from zero.
func Format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Total returns price times quantity without rounding.
func Total(price float64, quantity int) float64 {
	return price * float64(quantity)
}
