// Package calc holds the category calculators that turn an estimated weight
// and the user's answers into nutrition, shipping, pet health and body
// composition figures. Every function is pure: reference rows are passed in.
package calc

import "math"

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptr[T any](v T) *T {
	return &v
}
