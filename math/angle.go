// SPDX-License-Identifier: GPL-2.0-or-later

package math

import "math"

// AngleMod maps an angle in degrees into [0, 360).
func AngleMod(a float64) float64 {
	return a - math.Floor(a/360)*360
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * Pi / 180
}
