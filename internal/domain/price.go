package domain

import "math"

const (
	// PriceMin and PriceMax are the open bounds every quoted price is
	// clamped into; a binary outcome never trades at exactly 0 or 1.
	PriceMin = 0.01
	PriceMax = 0.99
)

// Round2 rounds a price to two decimals, the display and execution
// precision used throughout the simulation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ClampPrice bounds a price to [PriceMin, PriceMax].
func ClampPrice(v float64) float64 {
	return math.Max(PriceMin, math.Min(PriceMax, v))
}
