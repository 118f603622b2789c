package entity

import "math"

// Monetary amounts are stored in cents (int64) everywhere inside the
// terminal and only converted to 2-decimal values at the API boundary.

// Cents converts a decimal money value to cents.
func Cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// Decimal converts cents back to a decimal money value.
func Decimal(cents int64) float64 {
	return float64(cents) / 100
}
