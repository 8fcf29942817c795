// Package money rounds currency amounts to cents.
package money

import "math"

// epsilon absorbs binary representation error so that 0.005 rounds up.
const epsilon = 1e-9

// Round rounds half up to two decimal places.
func Round(amount float64) float64 {
	return float64(Minor(amount)) / 100
}

// Minor converts an amount to integer cents, rounding half up.
func Minor(amount float64) int64 {
	if amount < 0 {
		return -Minor(-amount)
	}

	return int64(math.Floor(amount*100 + 0.5 + epsilon))
}
