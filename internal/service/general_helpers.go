package service

import "math"

// RoundingPrecision yields two decimal places for monetary values.
const RoundingPrecision = 100.0

// round rounds a float64 value to two decimal places. Used for display
// values only (market value, unrealized gain); the reconciler's own
// accumulators are never rounded.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}
