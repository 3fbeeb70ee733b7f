// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	gmath "math"
)

const (
	Pi = gmath.Pi
)

// RoundHalfUp rounds to the nearest integer with halves going towards
// positive infinity, so RoundHalfUp(-2.5) == -2.
func RoundHalfUp(x float64) float64 {
	return gmath.Floor(x + 0.5)
}

// RoundDecimals32 rounds x to places decimal digits. The final division is
// done in single precision which absorbs the round-off of values read from
// float32 lumps: 0.249999953 becomes exactly 0.25.
func RoundDecimals32(x float64, places int) float64 {
	p := gmath.Pow(10, float64(places))
	return float64(float32(RoundHalfUp(x*p)) / float32(p))
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !gmath.IsNaN(x) && !gmath.IsInf(x, 0)
}
